package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainTransaction(t *testing.T) {
	tests := []struct {
		name     string
		row      []string
		wantSkip bool
		wantDate string
		wantAmt  float64
		wantUser string
	}{
		{
			name:     "full row",
			row:      []string{"2024-01-05", "Payment", "5000", "", "Initial deposit", "", "SiteA", "ClientX", "Rohit"},
			wantDate: "2024-01-05",
			wantAmt:  5000,
			wantUser: "Rohit",
		},
		{
			name:     "short row without user column",
			row:      []string{"2024-02-01", "Expense", "1200", "Labour Payment", "Weekly wage", "John", "SiteB"},
			wantDate: "2024-02-01",
			wantAmt:  1200,
			wantUser: "",
		},
		{
			name:     "non-numeric amount degrades to zero",
			row:      []string{"2024-03-01", "Expense", "abc", "Material", "Cement bags"},
			wantDate: "2024-03-01",
			wantAmt:  0,
		},
		{
			name:     "unparsable date degrades to empty",
			row:      []string{"not a date", "Payment", "100", "", "", "", "SiteA"},
			wantDate: "",
			wantAmt:  100,
		},
		{
			name:     "empty row is skipped",
			row:      []string{},
			wantSkip: true,
		},
		{
			name:     "all-blank row is skipped",
			row:      []string{"", "", ""},
			wantSkip: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, ok := MainTransaction(tt.row, 0)
			if tt.wantSkip {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, "1", txn.ID)
			assert.Equal(t, tt.wantDate, txn.Date)
			assert.InDelta(t, tt.wantAmt, txn.Amount, 0.001)
			assert.Equal(t, tt.wantUser, txn.User)
		})
	}
}

func TestLabourEntry(t *testing.T) {
	labour, ok := LabourEntry([]string{"John", "Mason", "4000", "0", "4000"}, 0)
	require.True(t, ok)
	assert.Equal(t, "John", labour.Name)
	assert.Equal(t, "Mason", labour.Role)
	assert.InDelta(t, 4000.0, labour.Salary, 0.001)

	_, ok = LabourEntry([]string{"", "Mason", "4000"}, 1)
	assert.False(t, ok, "blank name should be skipped")

	_, ok = LabourEntry(nil, 2)
	assert.False(t, ok, "absent row should be skipped")
}

func TestPartyEntry(t *testing.T) {
	client, ok := PartyEntry([]string{"ClientX", "9876543210", "SiteA", "5000", "15000"}, 2)
	require.True(t, ok)
	assert.Equal(t, "3", client.ID)
	assert.Equal(t, "ClientX", client.Name)
	assert.InDelta(t, 15000.0, client.Balance, 0.001)

	_, ok = PartyEntry([]string{""}, 0)
	assert.False(t, ok)
}

func TestSiteEntry(t *testing.T) {
	site, ok := SiteEntry([]string{"SiteA", "60", "Partially Paid", "2024-01-01", "2024-06-30", "250000"}, 0)
	require.True(t, ok)
	assert.Equal(t, "SiteA", site.SiteName)
	assert.InDelta(t, 60.0, site.Progress, 0.001)
	assert.Equal(t, "Partially Paid", string(site.PaymentStatus))
	assert.Equal(t, "2024-01-01", site.StartDate)
	assert.InDelta(t, 250000.0, site.ProjectValue, 0.001)

	short, ok := SiteEntry([]string{"SiteB"}, 1)
	require.True(t, ok, "short row still parses with defaults")
	assert.Equal(t, "Pending", string(short.PaymentStatus))
	assert.Zero(t, short.ProjectValue)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"5000", 5000},
		{"1,200.50", 1200.50},
		{" 42 ", 42},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseAmount(tt.in), 0.001, "input %q", tt.in)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-05", "2024-01-05"},
		{"2024/01/05", "2024-01-05"},
		{"01/15/2024", "2024-01-15"},
		{"15-Jan-2024", "2024-01-15"},
		{"Jan 15, 2024", "2024-01-15"},
		{"garbage", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDate(tt.in), "input %q", tt.in)
	}
}
