package services

import (
	"time"

	"gofinances/internal/models"

	"github.com/shopspring/decimal"
)

// NoTransactionsLabel replaces a date label when a summary has no transactions behind it
const NoTransactionsLabel = "Não há transações"

// HighlightAggregator derives the entries, expenses and total summaries from a ledger snapshot
type HighlightAggregator struct {
	formatter *TransactionFormatter
}

func NewHighlightAggregator(formatter *TransactionFormatter) *HighlightAggregator {
	return &HighlightAggregator{formatter: formatter}
}

// Aggregate is pure and ignores input order: only sums and latest dates matter.
// The total's label is the reporting interval, built from the latest expense only.
func (a *HighlightAggregator) Aggregate(transactions []models.Transaction) models.HighlightData {
	entriesSum := decimal.Zero
	expensesSum := decimal.Zero
	var lastEntry, lastExpense *time.Time

	for _, transaction := range transactions {
		switch transaction.Type {
		case models.TransactionTypePositive:
			entriesSum = entriesSum.Add(transaction.Amount)
			lastEntry = latest(lastEntry, transaction.Date)
		case models.TransactionTypeNegative:
			expensesSum = expensesSum.Add(transaction.Amount)
			lastExpense = latest(lastExpense, transaction.Date)
		}
	}

	total := entriesSum.Sub(expensesSum)

	return models.HighlightData{
		Entries: models.Highlight{
			Amount:            a.formatter.FormatAmount(entriesSum),
			LastTransaction:   a.lastTransactionLabel(lastEntry),
			LastTransactionAt: lastEntry,
			Value:             entriesSum,
		},
		Expensives: models.Highlight{
			Amount:            a.formatter.FormatAmount(expensesSum),
			LastTransaction:   a.lastTransactionLabel(lastExpense),
			LastTransactionAt: lastExpense,
			Value:             expensesSum,
		},
		Total: models.Highlight{
			Amount:            a.formatter.FormatCurrency(total),
			LastTransaction:   a.intervalLabel(lastExpense),
			LastTransactionAt: lastExpense,
			Value:             total,
		},
	}
}

func (a *HighlightAggregator) lastTransactionLabel(last *time.Time) string {
	if last == nil {
		return NoTransactionsLabel
	}
	return a.formatter.FormatDayMonth(*last)
}

func (a *HighlightAggregator) intervalLabel(lastExpense *time.Time) string {
	if lastExpense == nil {
		return NoTransactionsLabel
	}
	return "01 a " + a.formatter.FormatDayMonth(*lastExpense)
}

func latest(current *time.Time, candidate time.Time) *time.Time {
	if current != nil && !candidate.After(*current) {
		return current
	}
	return &candidate
}
