package repositories

import (
	"context"

	"gofinances/internal/models"
)

// LedgerRepositoryInterface defines the contract for the durable, user scoped transaction list
type LedgerRepositoryInterface interface {
	// Append adds transaction to the end of the user's ledger. A failed append leaves the stored ledger untouched.
	Append(ctx context.Context, userID string, transaction models.Transaction) error
	// LoadAll returns the full ledger in insertion order. It fails on the first malformed record.
	LoadAll(ctx context.Context, userID string) ([]models.Transaction, error)
	// LoadAllPartial skips malformed records and reports them instead of failing.
	LoadAllPartial(ctx context.Context, userID string) ([]models.Transaction, []models.SkippedRecord, error)
	Ping(ctx context.Context) error
}
