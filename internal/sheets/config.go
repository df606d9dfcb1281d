// Package sheets provides the Google Sheets API client the sync engine
// fetches tab data through.
package sheets

import (
	"regexp"

	"github.com/gulshanb/expenseman/internal/common"
)

// Tab names the engine reads. All four must exist in the spreadsheet.
const (
	TabMain    = "Main"
	TabLabour  = "Labour"
	TabParties = "Parties"
	TabSites   = "Sites"
)

// RequiredTabs lists every tab a sync cycle fetches, in fetch order.
var RequiredTabs = []string{TabMain, TabLabour, TabParties, TabSites}

// fetchRange bounds each tab read; ten columns covers the widest tab (Main).
const fetchRange = "A1:J1000"

// Config holds the spreadsheet credentials. Both fields must be set for the
// engine to leave the idle state.
type Config struct {
	// SheetURL is the full spreadsheet URL as copied from the browser,
	// or a bare spreadsheet ID.
	SheetURL string
	// APIKey is a Google API key with the Sheets API enabled.
	APIKey string
}

// Configured reports whether both credentials are present.
func (c Config) Configured() bool {
	return c.SheetURL != "" && c.APIKey != ""
}

var sheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
var bareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

// ExtractSpreadsheetID pulls the spreadsheet ID out of a full sheet URL.
// A string that is already a bare ID is accepted as-is.
func ExtractSpreadsheetID(raw string) (string, error) {
	if m := sheetIDPattern.FindStringSubmatch(raw); m != nil {
		return m[1], nil
	}
	if bareIDPattern.MatchString(raw) && raw != "" {
		return raw, nil
	}
	return "", common.ErrInvalidSheetID
}
