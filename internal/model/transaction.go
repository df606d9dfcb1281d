// Package model defines the typed entities the sync engine builds from
// spreadsheet rows and the local-only entities it preserves across cycles.
package model

// Transaction is the intermediate record parsed from one Main-tab row,
// before classification splits it into a Payment or an Expense.
type Transaction struct {
	ID          string
	Date        string // normalized YYYY-MM-DD, empty when unparsable
	Type        string
	Category    string
	Description string
	LabourName  string
	SiteName    string
	PartyName   string
	User        string
	Amount      float64
}
