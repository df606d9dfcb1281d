package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Payments: []Payment{
			{ID: "1", Date: "2024-01-05", Site: "SiteA", Mode: "Cash", Remarks: "deposit", User: "Rohit", Amount: 5000},
			{ID: "2", Date: "2024-01-10", Site: "SiteB", Mode: "Cash", User: "Gulshan", Amount: 3000},
		},
		Expenses: []Expense{
			{ID: "3", Date: "2024-01-12", Category: "Material", Description: "cement", User: "Rohit", Amount: 1200},
		},
		Labours: []Labour{
			{ID: "1", Name: "John", Role: "Mason", Salary: 4000, Paid: 1200, Balance: 2800,
				PaymentHistory: []PaymentHistory{{ID: "h1", Task: "brickwork", Amount: 1200}}},
		},
		Clients: []Client{
			{ID: "1", Name: "ClientX", SiteName: "SiteA", TotalPaid: 5000, Balance: 15000,
				PaymentHistory: []PaymentHistory{{ID: "h2", Amount: 5000}}},
		},
		UserBalances: []UserBalance{
			{User: "Rohit", TotalPayments: 5000, TotalExpenses: 1200, Balance: 3800, TransactionCount: 2},
		},
		Tasks:  []Task{{ID: "t1", Title: "order cement", Status: TaskStatusPending, Priority: TaskPriorityHigh}},
		Habits: []Habit{{ID: "h1", Name: "site visit", Frequency: HabitDaily, Streak: 4}},
	}
}

func TestTotals(t *testing.T) {
	snap := sampleSnapshot()
	assert.InDelta(t, 8000.0, snap.TotalPayments(), 0.001)
	assert.InDelta(t, 1200.0, snap.TotalExpenses(), 0.001)

	assert.Zero(t, Snapshot{}.TotalPayments())
	assert.Zero(t, Snapshot{}.TotalExpenses())
}

func TestCloneIsIndependent(t *testing.T) {
	snap := sampleSnapshot()
	clone := snap.Clone()
	assert.Equal(t, snap, clone)

	clone.Payments[0].Amount = -1
	clone.Labours[0].PaymentHistory[0].Amount = -1
	clone.Labours[0].PaymentHistory[0].Task = "changed"
	clone.Clients[0].PaymentHistory = append(clone.Clients[0].PaymentHistory, PaymentHistory{ID: "extra"})
	clone.Tasks[0].Title = "changed"

	assert.InDelta(t, 5000.0, snap.Payments[0].Amount, 0.001)
	assert.InDelta(t, 1200.0, snap.Labours[0].PaymentHistory[0].Amount, 0.001)
	assert.Equal(t, "brickwork", snap.Labours[0].PaymentHistory[0].Task)
	assert.Len(t, snap.Clients[0].PaymentHistory, 1)
	assert.Equal(t, "order cement", snap.Tasks[0].Title)
}

func TestBusinessContext(t *testing.T) {
	got := sampleSnapshot().BusinessContext()

	assert.Contains(t, got, "PAYMENTS (2 total, 8000.00 received):")
	assert.Contains(t, got, "EXPENSES (1 total, 1200.00 spent):")
	assert.Contains(t, got, "- Rohit: payments 5000.00, expenses 1200.00, balance 3800.00 (2 transactions)")
	assert.Contains(t, got, "- John (Mason): salary 4000.00, paid 1200.00, balance 2800.00")
	assert.Contains(t, got, "- ClientX (SiteA): paid 5000.00, balance 15000.00")
	assert.Contains(t, got, "- [Pending] order cement")
	assert.Contains(t, got, "- site visit (Daily, streak 4)")
}

func TestBusinessContextEmptySnapshot(t *testing.T) {
	got := Snapshot{}.BusinessContext()
	assert.True(t, strings.HasPrefix(got, "PAYMENTS (0 total, 0.00 received):"))
	assert.Contains(t, got, "HABITS (0):")
}
