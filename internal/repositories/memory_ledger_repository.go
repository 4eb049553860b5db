package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"gofinances/internal/models"
)

// memoryLedgerRepository keeps serialized ledgers in process memory. Used for DB_DRIVER=memory and tests.
type memoryLedgerRepository struct {
	mu        sync.RWMutex
	namespace string
	values    map[string]string
}

// NewMemoryLedgerRepository creates an in-memory ledger repository
func NewMemoryLedgerRepository(namespace string) LedgerRepositoryInterface {
	return &memoryLedgerRepository{
		namespace: namespace,
		values:    make(map[string]string),
	}
}

func (r *memoryLedgerRepository) key(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", ErrUserIDRequired
	}
	return models.LedgerKey(r.namespace, userID), nil
}

func (r *memoryLedgerRepository) Append(ctx context.Context, userID string, transaction models.Transaction) error {
	key, err := r.key(userID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	value, err := appendToLedger(key, r.values[key], transaction)
	if err != nil {
		return err
	}

	r.values[key] = value
	return nil
}

func (r *memoryLedgerRepository) LoadAll(ctx context.Context, userID string) ([]models.Transaction, error) {
	transactions, _, err := r.load(ctx, userID, false)
	return transactions, err
}

func (r *memoryLedgerRepository) LoadAllPartial(ctx context.Context, userID string) ([]models.Transaction, []models.SkippedRecord, error) {
	return r.load(ctx, userID, true)
}

func (r *memoryLedgerRepository) load(ctx context.Context, userID string, partial bool) ([]models.Transaction, []models.SkippedRecord, error) {
	key, err := r.key(userID)
	if err != nil {
		return nil, nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	r.mu.RLock()
	value := r.values[key]
	r.mu.RUnlock()

	return decodeLedger(key, value, partial)
}

func (r *memoryLedgerRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// putRaw stores a value as is. Tests use it to plant corrupt data.
func (r *memoryLedgerRepository) putRaw(userID, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[models.LedgerKey(r.namespace, userID)] = value
}
