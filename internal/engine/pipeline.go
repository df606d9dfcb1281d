package engine

import (
	"strconv"

	"github.com/gulshanb/expenseman/internal/classification"
	"github.com/gulshanb/expenseman/internal/model"
	"github.com/gulshanb/expenseman/internal/parser"
	"github.com/gulshanb/expenseman/internal/sheets"
)

// BuildSnapshot runs the full parse, classify, reconcile, aggregate pipeline
// over raw tab data and returns the sheet-derived part of a snapshot. It is
// deterministic: identical input yields an identical snapshot. Tasks and
// Habits are not populated here; the orchestrator merges them in from the
// local store.
func BuildSnapshot(tabs map[string][][]string) model.Snapshot {
	var (
		payments []model.Payment
		expenses []model.Expense
	)
	categories := newCategorySet()
	hist := newHistoryBuilder()

	for i, row := range dataRows(tabs[sheets.TabMain]) {
		txn, ok := parser.MainTransaction(row, i)
		if !ok {
			continue
		}

		categories.add(txn.Category)

		result := classification.Classify(txn)
		switch result.Kind {
		case classification.KindPayment:
			payments = append(payments, classification.AsPayment(txn))
			hist.addClientPayment(txn)
		case classification.KindExpense:
			expenses = append(expenses, classification.AsExpense(txn))
			if result.IsLabourPayment {
				hist.addLabourPayment(txn)
			}
		}
	}

	var labours []model.Labour
	for i, row := range dataRows(tabs[sheets.TabLabour]) {
		labour, ok := parser.LabourEntry(row, i)
		if !ok {
			continue
		}
		labours = append(labours, reconcileLabour(labour, hist))
	}

	var clients []model.Client
	for i, row := range dataRows(tabs[sheets.TabParties]) {
		client, ok := parser.PartyEntry(row, i)
		if !ok {
			continue
		}
		clients = append(clients, reconcileClient(client, hist))
	}

	var sitesList []model.Site
	for i, row := range dataRows(tabs[sheets.TabSites]) {
		site, ok := parser.SiteEntry(row, i)
		if !ok {
			continue
		}
		sitesList = append(sitesList, site)
	}

	return model.Snapshot{
		Payments:          payments,
		Expenses:          expenses,
		Sites:             sitesList,
		Labours:           labours,
		Clients:           clients,
		ExpenseCategories: categories.list(),
		UserBalances:      aggregateUserBalances(payments, expenses, DefaultSeedUsers),
	}
}

// dataRows strips the header row. A tab with no data rows yields nothing.
func dataRows(rows [][]string) [][]string {
	if len(rows) < 2 {
		return nil
	}
	return rows[1:]
}

// categorySet collects distinct non-empty category names in first-seen order.
type categorySet struct {
	seen  map[string]bool
	names []string
}

func newCategorySet() *categorySet {
	return &categorySet{seen: make(map[string]bool)}
}

func (s *categorySet) add(name string) {
	if name == "" || s.seen[name] {
		return
	}
	s.seen[name] = true
	s.names = append(s.names, name)
}

func (s *categorySet) list() []model.ExpenseCategory {
	out := make([]model.ExpenseCategory, 0, len(s.names))
	for i, name := range s.names {
		out = append(out, model.ExpenseCategory{ID: strconv.Itoa(i + 1), Name: name})
	}
	return out
}
