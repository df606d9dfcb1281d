// Package classification decides whether a Main-tab transaction is a payment
// or an expense, and which operator it belongs to.
//
// The rules are substring heuristics carried over from how the sheet is
// actually kept, so they live here as pure functions that the rest of the
// pipeline treats as a black box.
package classification

import (
	"strings"

	"github.com/gulshanb/expenseman/internal/model"
)

// Kind tags a classified transaction.
type Kind string

const (
	// KindPayment marks an incoming payment.
	KindPayment Kind = "payment"
	// KindExpense marks any non-payment transaction.
	KindExpense Kind = "expense"
)

// Result is the classification of a single transaction.
type Result struct {
	Kind Kind
	// IsLabourPayment is set for expenses whose category names a labour
	// payment; these additionally feed the labourer's payment history.
	IsLabourPayment bool
}

// Classify tags a transaction. A type containing "payment" (any case) is a
// payment; everything else is an expense, with the labour-payment flag set
// when the category contains "labour payment".
func Classify(txn model.Transaction) Result {
	if strings.Contains(strings.ToLower(txn.Type), "payment") {
		return Result{Kind: KindPayment}
	}
	return Result{
		Kind:            KindExpense,
		IsLabourPayment: strings.Contains(strings.ToLower(txn.Category), "labour payment"),
	}
}

// AttributeUser resolves the operator for a transaction. An explicit user
// cell wins; otherwise the description is scanned for known operator tokens.
// Best-effort only: anything unrecognized lands on "Unknown".
func AttributeUser(user, description string) string {
	if u := strings.TrimSpace(user); u != "" {
		return u
	}

	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "rohit") || strings.Contains(desc, "r."):
		return "Rohit"
	case strings.Contains(desc, "gulshan") || strings.Contains(desc, "g."):
		return "Gulshan"
	default:
		return "Unknown"
	}
}

// AsPayment converts a payment-classified transaction into a Payment entity.
// The sheet carries no payment-mode column, so mode is always "Cash"; the
// site falls back to the party name when the site cell is blank.
func AsPayment(txn model.Transaction) model.Payment {
	site := txn.SiteName
	if site == "" {
		site = txn.PartyName
	}
	return model.Payment{
		ID:      txn.ID,
		Date:    txn.Date,
		Site:    site,
		Amount:  txn.Amount,
		Mode:    "Cash",
		Remarks: txn.Description,
		User:    AttributeUser(txn.User, txn.Description),
	}
}

// AsExpense converts an expense-classified transaction into an Expense entity.
func AsExpense(txn model.Transaction) model.Expense {
	return model.Expense{
		ID:          txn.ID,
		Date:        txn.Date,
		Category:    txn.Category,
		Amount:      txn.Amount,
		Description: txn.Description,
		User:        AttributeUser(txn.User, txn.Description),
	}
}
