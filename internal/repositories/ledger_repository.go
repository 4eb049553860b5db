package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gofinances/internal/models"

	"gorm.io/gorm"
)

// ledgerRepository keeps every user's ledger as one row of the ledger_entries key/value table
type ledgerRepository struct {
	db        *gorm.DB
	namespace string
	locks     *keyedMutex
}

// NewLedgerRepository creates a gorm backed ledger repository
func NewLedgerRepository(db *gorm.DB, namespace string) LedgerRepositoryInterface {
	return &ledgerRepository{
		db:        db,
		namespace: namespace,
		locks:     newKeyedMutex(),
	}
}

func (r *ledgerRepository) key(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", ErrUserIDRequired
	}
	return models.LedgerKey(r.namespace, userID), nil
}

// Append rewrites the user's full list inside one database transaction
func (r *ledgerRepository) Append(ctx context.Context, userID string, transaction models.Transaction) error {
	key, err := r.key(userID)
	if err != nil {
		return err
	}

	unlock := r.locks.Lock(key)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.LedgerEntry
		found := true
		if err := tx.Where(&models.LedgerEntry{Key: key}).Take(&entry).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			found = false
		}

		value, err := appendToLedger(key, entry.Value, transaction)
		if err != nil {
			return err
		}

		if !found {
			return tx.Create(&models.LedgerEntry{Key: key, Value: value}).Error
		}

		result := tx.Model(&models.LedgerEntry{}).
			Where(&models.LedgerEntry{Key: key, Version: entry.Version}).
			Updates(map[string]interface{}{
				"value":      value,
				"version":    entry.Version + 1,
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errVersionConflict
		}
		return nil
	})
	if err != nil {
		return r.wrapError(ctx, "append transaction", err)
	}

	slog.Debug("Transaction appended", "key", key, "transaction_id", transaction.ID)
	return nil
}

// LoadAll returns the user's ledger in insertion order, empty when nothing was stored yet
func (r *ledgerRepository) LoadAll(ctx context.Context, userID string) ([]models.Transaction, error) {
	transactions, _, err := r.load(ctx, userID, false)
	return transactions, err
}

// LoadAllPartial returns every readable record and reports the skipped ones
func (r *ledgerRepository) LoadAllPartial(ctx context.Context, userID string) ([]models.Transaction, []models.SkippedRecord, error) {
	return r.load(ctx, userID, true)
}

func (r *ledgerRepository) load(ctx context.Context, userID string, partial bool) ([]models.Transaction, []models.SkippedRecord, error) {
	key, err := r.key(userID)
	if err != nil {
		return nil, nil, err
	}

	var entry models.LedgerEntry
	if err := r.db.WithContext(ctx).Where(&models.LedgerEntry{Key: key}).Take(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Transaction{}, nil, nil
		}
		return nil, nil, r.wrapError(ctx, "load ledger", err)
	}

	transactions, skipped, err := decodeLedger(key, entry.Value, partial)
	if err != nil {
		return nil, nil, err
	}

	// an abandoned load reports failure instead of a result
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	if len(skipped) > 0 {
		slog.Warn("Skipped malformed ledger records", "key", key, "skipped", len(skipped))
	}

	return transactions, skipped, nil
}

// Ping checks that the database answers
func (r *ledgerRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return storageError("ping database", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storageError("ping database", err)
	}
	return nil
}

// wrapError keeps cancellation and malformed data apart from storage faults
func (r *ledgerRepository) wrapError(ctx context.Context, operation string, err error) error {
	if errors.Is(err, ErrMalformedRecord) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("failed to %s: %w", operation, ctxErr)
	}
	return storageError(operation, err)
}
