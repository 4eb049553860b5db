package handlers

import (
	"net/http"

	"gofinances/internal/dto"
	"gofinances/internal/errors"
	"gofinances/internal/models"
	"gofinances/internal/services"
	"gofinances/internal/validation"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	ledger     services.LedgerServiceInterface
	categories services.CategoryServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	ledger services.LedgerServiceInterface,
	categories services.CategoryServiceInterface,
) *TransactionHandler {
	return &TransactionHandler{
		ledger:     ledger,
		categories: categories,
	}
}

// ListTransactions returns the user's formatted ledger in insertion order
//
// Method: GET /api/v1/transactions
// Query parameters:
//   - partial: skip unreadable stored records instead of failing (default false)
//
// Success Response: 200 OK with dto.ListTransactionsResponse
// Error Responses:
//   - 400 VALIDATION_005: invalid partial flag
//   - 401 AUTH_001: missing authentication
//   - 500 LEDGER_002: a stored record could not be read
//   - 503 LEDGER_001: storage unavailable
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	partial, err := getBoolQueryParam(c, "partial")
	if err != nil {
		return SendError(c, errors.ValidationInvalidQuery, errors.WithDetails(err.Error()))
	}

	ctx := c.Request().Context()

	var transactions []models.Transaction
	var skipped []models.SkippedRecord
	if partial {
		transactions, skipped, err = h.ledger.LoadAllPartial(ctx, user.ID)
	} else {
		transactions, err = h.ledger.LoadAll(ctx, user.ID)
	}
	if err != nil {
		return SendLedgerError(c, err)
	}

	response := dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(transactions)),
		Skipped:      skipped,
	}
	for _, transaction := range transactions {
		response.Transactions = append(response.Transactions, h.toResponse(h.ledger.Format(transaction)))
	}

	return c.JSON(http.StatusOK, response)
}

// CreateTransaction validates the registration form and appends it to the user's ledger
//
// Method: POST /api/v1/transactions
// Request body: dto.CreateTransactionRequest
//
// Success Response: 201 Created with dto.TransactionResponse
// Error Responses:
//   - 400 VALIDATION_001: invalid fields, one detail per field
//   - 400 VALIDATION_003: body is not valid JSON
//   - 401 AUTH_001: missing authentication
//   - 503 LEDGER_001: storage unavailable, nothing was written
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	input, err := validation.ValidateNewTransaction(req)
	if err != nil {
		return SendLedgerError(c, err)
	}

	transaction, err := h.ledger.Append(c.Request().Context(), user.ID, input)
	if err != nil {
		return SendLedgerError(c, err)
	}

	return c.JSON(http.StatusCreated, h.toResponse(h.ledger.Format(*transaction)))
}

func (h *TransactionHandler) toResponse(display models.DisplayTransaction) dto.TransactionResponse {
	return dto.NewTransactionResponse(display, h.categories.Resolve(display.Category))
}
