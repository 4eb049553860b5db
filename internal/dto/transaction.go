package dto

import (
	"bytes"
	"encoding/json"

	"gofinances/internal/models"
)

// AmountInput accepts the amount either as a JSON string ("59,90") or as a JSON number (59.9)
type AmountInput string

func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*a = AmountInput(value)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*a = AmountInput(number.String())
	return nil
}

// Transaction Request DTOs

// CreateTransactionRequest is the registration form payload
type CreateTransactionRequest struct {
	Name     string      `json:"name" validate:"required,max=200"`
	Amount   AmountInput `json:"amount" validate:"required,positive_amount"`
	Type     string      `json:"type" validate:"required,transaction_type"`
	Category string      `json:"category" validate:"required,selected_category"`
}

// Transaction Response DTOs

// TransactionResponse is a formatted transaction decorated with its category's display entry
type TransactionResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Amount       string `json:"amount"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	CategoryName string `json:"categoryName"`
	CategoryIcon string `json:"categoryIcon,omitempty"`
	Date         string `json:"date"`
}

// ListTransactionsResponse represents the response for listing transactions
type ListTransactionsResponse struct {
	Transactions []TransactionResponse  `json:"transactions"`
	Skipped      []models.SkippedRecord `json:"skipped,omitempty"`
}

// HighlightsResponse wraps the derived summaries
type HighlightsResponse struct {
	Highlights models.HighlightData   `json:"highlights"`
	Skipped    []models.SkippedRecord `json:"skipped,omitempty"`
}

// SeedResponse reports the demo transactions appended by the dev seed endpoint
type SeedResponse struct {
	Created      int                   `json:"created"`
	Transactions []TransactionResponse `json:"transactions"`
}

// NewTransactionResponse decorates a display transaction with its category
func NewTransactionResponse(display models.DisplayTransaction, category models.Category) TransactionResponse {
	return TransactionResponse{
		ID:           display.ID,
		Name:         display.Name,
		Amount:       display.Amount,
		Type:         string(display.Type),
		Category:     display.Category,
		CategoryName: category.Name,
		CategoryIcon: category.Icon,
		Date:         display.Date,
	}
}
