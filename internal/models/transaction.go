package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tells income apart from expense. The amount never carries the sign.
type TransactionType string

const (
	TransactionTypePositive TransactionType = "positive"
	TransactionTypeNegative TransactionType = "negative"
)

var (
	ErrTransactionIDRequired   = errors.New("transaction id is required")
	ErrTransactionNameRequired = errors.New("transaction name is required")
	ErrInvalidTransactionType  = errors.New("invalid transaction type")
	ErrInvalidAmount           = errors.New("transaction amount must be positive")
	ErrCategoryRequired        = errors.New("transaction category is required")
	ErrTransactionDateRequired = errors.New("transaction date is required")
)

// Transaction is a single ledger record. It is immutable once appended.
type Transaction struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Date     time.Time       `json:"date"`
}

// NewTransaction is validated user input that has not been given an id or a date yet
type NewTransaction struct {
	Name     string
	Amount   decimal.Decimal
	Type     TransactionType
	Category string
}

// Validate checks the record invariants of a stored transaction
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrTransactionIDRequired
	}

	if strings.TrimSpace(t.Name) == "" {
		return ErrTransactionNameRequired
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if strings.TrimSpace(t.Category) == "" {
		return ErrCategoryRequired
	}

	if t.Date.IsZero() {
		return ErrTransactionDateRequired
	}

	return nil
}

// IsIncome returns true for positive transactions
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypePositive
}

// IsExpense returns true for negative transactions
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeNegative
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType TransactionType) bool {
	switch transactionType {
	case TransactionTypePositive, TransactionTypeNegative:
		return true
	default:
		return false
	}
}

// ParseTransactionType accepts the canonical names and the up/down aliases used by the entry form
func ParseTransactionType(value string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(TransactionTypePositive), "up":
		return TransactionTypePositive, nil
	case string(TransactionTypeNegative), "down":
		return TransactionTypeNegative, nil
	default:
		return "", ErrInvalidTransactionType
	}
}
