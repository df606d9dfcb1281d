package model

import (
	"fmt"
	"strings"
)

// ConnectionStatus is the sync engine's externally visible state.
type ConnectionStatus string

const (
	// StatusIdle means no credentials are configured.
	StatusIdle ConnectionStatus = "idle"
	// StatusLoading means a sync cycle is in flight.
	StatusLoading ConnectionStatus = "loading"
	// StatusConnected means the last sync cycle succeeded.
	StatusConnected ConnectionStatus = "connected"
	// StatusError means the last sync cycle failed.
	StatusError ConnectionStatus = "error"
)

// Snapshot is the complete set of published entities as of one sync cycle.
// Sheet-derived collections are rebuilt wholesale every cycle; Tasks and
// Habits are owned by the local store and carried through unchanged.
type Snapshot struct {
	Payments          []Payment
	Expenses          []Expense
	Sites             []Site
	Labours           []Labour
	Clients           []Client
	ExpenseCategories []ExpenseCategory
	UserBalances      []UserBalance
	Tasks             []Task
	Habits            []Habit
}

// Clone returns a copy of the snapshot whose slices are independent of the
// original, so readers can hold it while the engine publishes a new one.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Payments:          append([]Payment(nil), s.Payments...),
		Expenses:          append([]Expense(nil), s.Expenses...),
		Sites:             append([]Site(nil), s.Sites...),
		Labours:           append([]Labour(nil), s.Labours...),
		Clients:           append([]Client(nil), s.Clients...),
		ExpenseCategories: append([]ExpenseCategory(nil), s.ExpenseCategories...),
		UserBalances:      append([]UserBalance(nil), s.UserBalances...),
		Tasks:             append([]Task(nil), s.Tasks...),
		Habits:            append([]Habit(nil), s.Habits...),
	}
	for i := range out.Labours {
		out.Labours[i].PaymentHistory = append([]PaymentHistory(nil), out.Labours[i].PaymentHistory...)
	}
	for i := range out.Clients {
		out.Clients[i].PaymentHistory = append([]PaymentHistory(nil), out.Clients[i].PaymentHistory...)
	}
	return out
}

// TotalPayments sums all payment amounts.
func (s Snapshot) TotalPayments() float64 {
	var total float64
	for _, p := range s.Payments {
		total += p.Amount
	}
	return total
}

// TotalExpenses sums all expense amounts.
func (s Snapshot) TotalExpenses() float64 {
	var total float64
	for _, e := range s.Expenses {
		total += e.Amount
	}
	return total
}

// BusinessContext renders the snapshot as a plain-text summary suitable for
// handing to an external text-generation service as chat context.
func (s Snapshot) BusinessContext() string {
	var b strings.Builder

	fmt.Fprintf(&b, "PAYMENTS (%d total, %.2f received):\n", len(s.Payments), s.TotalPayments())
	for _, p := range s.Payments {
		fmt.Fprintf(&b, "- %s | %s | %.2f | %s | %s\n", p.Date, p.Site, p.Amount, p.Mode, p.Remarks)
	}

	fmt.Fprintf(&b, "\nEXPENSES (%d total, %.2f spent):\n", len(s.Expenses), s.TotalExpenses())
	for _, e := range s.Expenses {
		fmt.Fprintf(&b, "- %s | %s | %.2f | %s\n", e.Date, e.Category, e.Amount, e.Description)
	}

	fmt.Fprintf(&b, "\nUSER BALANCES:\n")
	for _, u := range s.UserBalances {
		fmt.Fprintf(&b, "- %s: payments %.2f, expenses %.2f, balance %.2f (%d transactions)\n",
			u.User, u.TotalPayments, u.TotalExpenses, u.Balance, u.TransactionCount)
	}

	fmt.Fprintf(&b, "\nSITES (%d):\n", len(s.Sites))
	for _, site := range s.Sites {
		fmt.Fprintf(&b, "- %s: %.0f%% done, %s, value %.2f\n", site.SiteName, site.Progress, site.PaymentStatus, site.ProjectValue)
	}

	fmt.Fprintf(&b, "\nLABOUR (%d):\n", len(s.Labours))
	for _, l := range s.Labours {
		fmt.Fprintf(&b, "- %s (%s): salary %.2f, paid %.2f, balance %.2f\n", l.Name, l.Role, l.Salary, l.Paid, l.Balance)
	}

	fmt.Fprintf(&b, "\nCLIENTS (%d):\n", len(s.Clients))
	for _, c := range s.Clients {
		fmt.Fprintf(&b, "- %s (%s): paid %.2f, balance %.2f\n", c.Name, c.SiteName, c.TotalPaid, c.Balance)
	}

	fmt.Fprintf(&b, "\nTASKS (%d):\n", len(s.Tasks))
	for _, t := range s.Tasks {
		fmt.Fprintf(&b, "- [%s] %s (due %s, %s)\n", t.Status, t.Title, t.Deadline, t.Priority)
	}

	fmt.Fprintf(&b, "\nHABITS (%d):\n", len(s.Habits))
	for _, h := range s.Habits {
		fmt.Fprintf(&b, "- %s (%s, streak %d)\n", h.Name, h.Frequency, h.Streak)
	}

	return b.String()
}
