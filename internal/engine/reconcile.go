package engine

import "github.com/gulshanb/expenseman/internal/model"

// reconcileLabour replaces the sheet's declared paid/balance with totals
// reconstructed from the labourer's payment history. The sheet's own
// Paid and Balance columns are not trusted.
func reconcileLabour(labour model.Labour, hist *historyBuilder) model.Labour {
	history := hist.labourHistory(labour.Name)
	labour.PaymentHistory = history
	labour.Paid = sumHistory(history)
	labour.Balance = labour.Salary - labour.Paid
	return labour
}

// reconcileClient replaces the sheet's declared totalPaid with the sum of
// the client's payment history. Balance intentionally stays the raw sheet
// value; see DESIGN.md for why the asymmetry with labour is preserved.
func reconcileClient(client model.Client, hist *historyBuilder) model.Client {
	history := hist.clientHistory(client.Name)
	client.PaymentHistory = history
	client.TotalPaid = sumHistory(history)
	return client
}
