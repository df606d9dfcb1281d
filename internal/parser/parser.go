// Package parser converts raw spreadsheet rows into typed records.
//
// Column meaning is positional and fixed per tab. Malformed cells never
// produce errors at this layer: numbers degrade to 0, dates to "", and
// rows missing their primary key are skipped.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/gulshanb/expenseman/internal/model"
)

// Main-tab column indexes.
const (
	mainColDate = iota
	mainColType
	mainColAmount
	mainColCategory
	mainColDescription
	mainColLabourName
	mainColSiteName
	mainColPartyName
	mainColUser
)

// dateLayouts are tried in order when normalizing a date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// MainTransaction parses one Main-tab row into the intermediate Transaction
// record. The second return value is false when the row is empty and should
// be skipped. Row identity is positional: id = index + 1.
func MainTransaction(row []string, index int) (model.Transaction, bool) {
	if isEmptyRow(row) {
		return model.Transaction{}, false
	}

	return model.Transaction{
		ID:          strconv.Itoa(index + 1),
		Date:        NormalizeDate(cell(row, mainColDate)),
		Type:        cell(row, mainColType),
		Amount:      ParseAmount(cell(row, mainColAmount)),
		Category:    cell(row, mainColCategory),
		Description: cell(row, mainColDescription),
		LabourName:  cell(row, mainColLabourName),
		SiteName:    cell(row, mainColSiteName),
		PartyName:   cell(row, mainColPartyName),
		User:        cell(row, mainColUser),
	}, true
}

// LabourEntry parses one Labour-tab row: [name, role, salary, paid, balance].
// The sheet's paid/balance cells are parsed but the reconciler discards them
// in favor of reconstructed history totals. Rows with a blank name are skipped.
func LabourEntry(row []string, index int) (model.Labour, bool) {
	if isEmptyRow(row) {
		return model.Labour{}, false
	}

	name := cell(row, 0)
	if name == "" {
		return model.Labour{}, false
	}

	salary := ParseAmount(cell(row, 2))
	paid := ParseAmount(cell(row, 3))

	return model.Labour{
		ID:      strconv.Itoa(index + 1),
		Name:    name,
		Role:    cell(row, 1),
		Salary:  salary,
		Paid:    paid,
		Balance: salary - paid,
	}, true
}

// PartyEntry parses one Parties-tab row: [name, contact, siteName, totalPaid, balance].
// Rows with a blank name are skipped.
func PartyEntry(row []string, index int) (model.Client, bool) {
	if isEmptyRow(row) {
		return model.Client{}, false
	}

	name := cell(row, 0)
	if name == "" {
		return model.Client{}, false
	}

	return model.Client{
		ID:        strconv.Itoa(index + 1),
		Name:      name,
		Contact:   cell(row, 1),
		SiteName:  cell(row, 2),
		TotalPaid: ParseAmount(cell(row, 3)),
		Balance:   ParseAmount(cell(row, 4)),
	}, true
}

// SiteEntry parses one Sites-tab row:
// [siteName, progress, paymentStatus, startDate, endDate, projectValue].
// Rows with a blank site name are skipped.
func SiteEntry(row []string, index int) (model.Site, bool) {
	if isEmptyRow(row) {
		return model.Site{}, false
	}

	name := cell(row, 0)
	if name == "" {
		return model.Site{}, false
	}

	return model.Site{
		ID:            strconv.Itoa(index + 1),
		SiteName:      name,
		Progress:      ParseAmount(cell(row, 1)),
		PaymentStatus: paymentStatus(cell(row, 2)),
		StartDate:     NormalizeDate(cell(row, 3)),
		EndDate:       NormalizeDate(cell(row, 4)),
		ProjectValue:  ParseAmount(cell(row, 5)),
	}, true
}

// ParseAmount parses a numeric cell, returning 0 for anything unparsable.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Sheets sometimes formats numbers with thousands separators.
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// NormalizeDate reformats a date cell to YYYY-MM-DD, returning "" when the
// cell cannot be parsed with any known layout.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

func paymentStatus(s string) model.PaymentStatus {
	switch model.PaymentStatus(strings.TrimSpace(s)) {
	case model.PaymentStatusPaid:
		return model.PaymentStatusPaid
	case model.PaymentStatusPartial:
		return model.PaymentStatusPartial
	default:
		return model.PaymentStatusPending
	}
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
