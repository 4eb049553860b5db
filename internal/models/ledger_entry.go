package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultLedgerNamespace = "@gofinances"
	ledgerKeySegment       = "transactions_user"
)

var ErrLedgerKeyRequired = errors.New("ledger key is required")

// LedgerEntry is one row of the key/value store. Value holds the serialized transaction list of a single user.
type LedgerEntry struct {
	Key       string    `gorm:"type:varchar(255);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	Version   int       `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for LedgerEntry
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}
	if e.Version == 0 {
		e.Version = 1
	}

	return e.Validate()
}

// Validate validates the ledger entry fields
func (e *LedgerEntry) Validate() error {
	if strings.TrimSpace(e.Key) == "" {
		return ErrLedgerKeyRequired
	}
	return nil
}

// TableName returns the table name for LedgerEntry
func (e *LedgerEntry) TableName() string {
	return "ledger_entries"
}

// LedgerKey builds the storage key of a user's ledger, e.g. "@gofinances:transactions_user:42"
func LedgerKey(namespace, userID string) string {
	if namespace == "" {
		namespace = DefaultLedgerNamespace
	}
	return namespace + ":" + ledgerKeySegment + ":" + userID
}
