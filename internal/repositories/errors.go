package repositories

import (
	"errors"
	"fmt"
)

var (
	ErrStorageUnavailable = errors.New("ledger storage unavailable")
	ErrMalformedRecord    = errors.New("malformed ledger record")
	ErrUserIDRequired     = errors.New("user id is required")
	errVersionConflict    = errors.New("ledger entry changed during append")
)

// MalformedRecordError tells which stored record could not be decoded. Index is -1 when the whole value is unreadable.
type MalformedRecordError struct {
	Key    string
	Index  int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s: %s", ErrMalformedRecord, e.Key, e.Reason)
	}
	return fmt.Sprintf("%s: %s[%d]: %s", ErrMalformedRecord, e.Key, e.Index, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func storageError(operation string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", operation, ErrStorageUnavailable, err)
}
