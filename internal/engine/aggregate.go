package engine

import "github.com/gulshanb/expenseman/internal/model"

// DefaultSeedUsers always appear in the user balance list, even with no
// transactions attributed to them.
var DefaultSeedUsers = []string{"Rohit", "Gulshan"}

// aggregateUserBalances computes per-operator totals across all classified
// payments and expenses. Output order is seed order followed by first
// appearance; consumers treat it as a set keyed by user.
func aggregateUserBalances(payments []model.Payment, expenses []model.Expense, seeds []string) []model.UserBalance {
	byUser := make(map[string]*model.UserBalance)
	var order []string

	bucket := func(user string) *model.UserBalance {
		if user == "" {
			user = "Unknown"
		}
		if b, ok := byUser[user]; ok {
			return b
		}
		b := &model.UserBalance{User: user}
		byUser[user] = b
		order = append(order, user)
		return b
	}

	for _, seed := range seeds {
		bucket(seed)
	}

	for _, p := range payments {
		b := bucket(p.User)
		b.TotalPayments += p.Amount
		b.TransactionCount++
	}

	for _, e := range expenses {
		b := bucket(e.User)
		b.TotalExpenses += e.Amount
		b.TransactionCount++
	}

	out := make([]model.UserBalance, 0, len(order))
	for _, user := range order {
		b := byUser[user]
		b.Balance = b.TotalPayments - b.TotalExpenses
		out = append(out, *b)
	}
	return out
}
