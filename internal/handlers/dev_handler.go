package handlers

import (
	"net/http"

	"gofinances/internal/dto"
	"gofinances/internal/errors"
	"gofinances/internal/models"
	"gofinances/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	defaultSeedCount = 20
	maxSeedCount     = 500
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	ledger       services.LedgerServiceInterface
	categories   services.CategoryServiceInterface
	generator    services.SeedGeneratorInterface
	tokenService services.TokenServiceInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(
	ledger services.LedgerServiceInterface,
	categories services.CategoryServiceInterface,
	generator services.SeedGeneratorInterface,
	tokenService services.TokenServiceInterface,
) *DevHandler {
	return &DevHandler{
		ledger:       ledger,
		categories:   categories,
		generator:    generator,
		tokenService: tokenService,
	}
}

// SeedTransactions appends generated demo transactions to the caller's ledger
//
// Method: POST /api/v1/dev/seed
// Authentication: Required
// Environment: Development only
//
// Query parameters:
//   - count: Number of transactions to generate (default: 20, max: 500)
//
// Success Response: 201 Created with dto.SeedResponse
// Error Responses:
//   - 400 VALIDATION_004: count out of range
//   - 503 LEDGER_001: storage unavailable, earlier rows of the batch stay appended
func (h *DevHandler) SeedTransactions(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	count := getIntQueryParam(c, "count", defaultSeedCount)
	if count < 1 || count > maxSeedCount {
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails("count must be between 1 and 500"))
	}

	ctx := c.Request().Context()
	response := dto.SeedResponse{Transactions: make([]dto.TransactionResponse, 0, count)}

	for _, input := range h.generator.Generate(count) {
		transaction, err := h.ledger.Append(ctx, user.ID, input)
		if err != nil {
			return SendLedgerError(c, err)
		}
		display := h.ledger.Format(*transaction)
		response.Transactions = append(response.Transactions,
			dto.NewTransactionResponse(display, h.categories.Resolve(display.Category)))
	}
	response.Created = len(response.Transactions)

	return c.JSON(http.StatusCreated, response)
}

// IssueToken signs an access token for any user id so the API can be used without an identity provider
//
// Method: POST /dev/token
// Authentication: None
// Environment: Development only
//
// Request body: dto.DevTokenRequest
// Success Response: 200 OK with dto.TokenResponse
func (h *DevHandler) IssueToken(c echo.Context) error {
	var req dto.DevTokenRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	user := &models.User{ID: req.UserID, Name: req.Name, Photo: req.Photo}
	token, expiresAt, err := h.tokenService.GenerateAccessToken(user)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
