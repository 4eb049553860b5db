package repositories

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gofinances/internal/models"

	"github.com/shopspring/decimal"
)

// ledgerRecord is the stored shape of a transaction
type ledgerRecord struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   json.RawMessage `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
}

var jsonNull = []byte("null")

func encodeRecord(transaction models.Transaction) (json.RawMessage, error) {
	record := ledgerRecord{
		ID:       transaction.ID,
		Name:     transaction.Name,
		Amount:   json.RawMessage(transaction.Amount.String()),
		Type:     string(transaction.Type),
		Category: transaction.Category,
		Date:     transaction.Date.UTC().Format(time.RFC3339Nano),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction %s: %w", transaction.ID, err)
	}
	return data, nil
}

func decodeRecord(raw json.RawMessage) (models.Transaction, error) {
	var record ledgerRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return models.Transaction{}, fmt.Errorf("invalid record: %w", err)
	}

	amountRaw := bytes.TrimSpace(record.Amount)
	if len(amountRaw) == 0 || bytes.Equal(amountRaw, jsonNull) {
		return models.Transaction{}, errors.New("amount is missing")
	}

	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(amountRaw); err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}

	// older records carry the form's up/down values
	transactionType, err := models.ParseTransactionType(record.Type)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid type %q", record.Type)
	}

	date, err := parseRecordDate(record.Date)
	if err != nil {
		return models.Transaction{}, err
	}

	transaction := models.Transaction{
		ID:       record.ID,
		Name:     record.Name,
		Amount:   amount,
		Type:     transactionType,
		Category: record.Category,
		Date:     date,
	}

	if err := transaction.Validate(); err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

func parseRecordDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, models.ErrTransactionDateRequired
	}

	if date, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return date, nil
	}
	if date, err := time.Parse(time.DateOnly, value); err == nil {
		return date, nil
	}

	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// splitLedger parses the stored value into raw records without decoding them
func splitLedger(key, value string) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "null" {
		return []json.RawMessage{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
		return nil, &MalformedRecordError{Key: key, Index: -1, Reason: "value is not a list of records"}
	}
	return records, nil
}

// decodeLedger decodes a stored value. In partial mode malformed records are skipped and reported.
func decodeLedger(key, value string, partial bool) ([]models.Transaction, []models.SkippedRecord, error) {
	records, err := splitLedger(key, value)
	if err != nil {
		return nil, nil, err
	}

	transactions := make([]models.Transaction, 0, len(records))
	var skipped []models.SkippedRecord

	for i, raw := range records {
		transaction, err := decodeRecord(raw)
		if err != nil {
			if !partial {
				return nil, nil, &MalformedRecordError{Key: key, Index: i, Reason: err.Error()}
			}
			skipped = append(skipped, models.SkippedRecord{Index: i, Reason: err.Error()})
			continue
		}
		transactions = append(transactions, transaction)
	}

	return transactions, skipped, nil
}

// appendToLedger adds one record to a stored value without decoding the existing records
func appendToLedger(key, value string, transaction models.Transaction) (string, error) {
	records, err := splitLedger(key, value)
	if err != nil {
		return "", err
	}

	record, err := encodeRecord(transaction)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(append(records, record))
	if err != nil {
		return "", fmt.Errorf("failed to encode ledger: %w", err)
	}
	return string(data), nil
}
