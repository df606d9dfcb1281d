package engine

import (
	"github.com/gulshanb/expenseman/internal/classification"
	"github.com/gulshanb/expenseman/internal/model"
)

// historyBuilder accumulates per-name payment history in sheet row order.
// A transaction feeds at most one bucket: the client bucket for payments,
// the labour bucket for labour-payment expenses.
type historyBuilder struct {
	clients map[string][]model.PaymentHistory
	labours map[string][]model.PaymentHistory
}

func newHistoryBuilder() *historyBuilder {
	return &historyBuilder{
		clients: make(map[string][]model.PaymentHistory),
		labours: make(map[string][]model.PaymentHistory),
	}
}

// addClientPayment records a payment against the row's party, if named.
func (b *historyBuilder) addClientPayment(txn model.Transaction) {
	if txn.PartyName == "" {
		return
	}
	b.clients[txn.PartyName] = append(b.clients[txn.PartyName], historyEntry(txn))
}

// addLabourPayment records a labour-payment expense against the row's
// labourer, if named.
func (b *historyBuilder) addLabourPayment(txn model.Transaction) {
	if txn.LabourName == "" {
		return
	}
	b.labours[txn.LabourName] = append(b.labours[txn.LabourName], historyEntry(txn))
}

// clientHistory returns the accumulated history for one client, nil if none.
func (b *historyBuilder) clientHistory(name string) []model.PaymentHistory {
	return b.clients[name]
}

// labourHistory returns the accumulated history for one labourer, nil if none.
func (b *historyBuilder) labourHistory(name string) []model.PaymentHistory {
	return b.labours[name]
}

func historyEntry(txn model.Transaction) model.PaymentHistory {
	return model.PaymentHistory{
		ID:          txn.ID,
		Date:        txn.Date,
		Amount:      txn.Amount,
		Site:        txn.SiteName,
		Description: txn.Description,
		User:        classification.AttributeUser(txn.User, txn.Description),
	}
}

func sumHistory(entries []model.PaymentHistory) float64 {
	var total float64
	for _, e := range entries {
		total += e.Amount
	}
	return total
}
