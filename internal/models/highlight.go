package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Highlight is one derived summary card
type Highlight struct {
	Amount          string `json:"amount"`
	LastTransaction string `json:"lastTransaction"`
	// LastTransactionAt is nil when the summarised subset has no transactions
	LastTransactionAt *time.Time      `json:"lastTransactionAt,omitempty"`
	Value             decimal.Decimal `json:"value"`
}

// HighlightData holds the three summaries derived from a ledger snapshot. It is never persisted.
type HighlightData struct {
	Entries    Highlight `json:"entries"`
	Expensives Highlight `json:"expensives"`
	Total      Highlight `json:"total"`
}

// HasLastTransaction reports whether the summary is backed by at least one transaction
func (h Highlight) HasLastTransaction() bool {
	return h.LastTransactionAt != nil
}
