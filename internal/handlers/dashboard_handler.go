package handlers

import (
	"net/http"

	"gofinances/internal/dto"
	"gofinances/internal/errors"
	"gofinances/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the listing screen: highlight cards plus the formatted ledger
type DashboardHandler struct {
	ledger     services.LedgerServiceInterface
	categories services.CategoryServiceInterface
}

func NewDashboardHandler(
	ledger services.LedgerServiceInterface,
	categories services.CategoryServiceInterface,
) *DashboardHandler {
	return &DashboardHandler{
		ledger:     ledger,
		categories: categories,
	}
}

// GetDashboard returns user, highlights and transactions from one ledger load
//
// Method: GET /api/v1/dashboard[?partial=true]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	partial, err := getBoolQueryParam(c, "partial")
	if err != nil {
		return SendError(c, errors.ValidationInvalidQuery, errors.WithDetails(err.Error()))
	}

	dashboard, err := h.ledger.Dashboard(c.Request().Context(), user, partial)
	if err != nil {
		return SendLedgerError(c, err)
	}

	response := dto.DashboardResponse{
		User: dto.UserProfileResponse{
			ID:    dashboard.User.ID,
			Name:  dashboard.User.Name,
			Photo: dashboard.User.Photo,
		},
		Highlights:   dashboard.Highlights,
		Transactions: make([]dto.TransactionResponse, 0, len(dashboard.Transactions)),
		Skipped:      dashboard.Skipped,
	}
	for _, display := range dashboard.Transactions {
		response.Transactions = append(response.Transactions,
			dto.NewTransactionResponse(display, h.categories.Resolve(display.Category)))
	}

	return c.JSON(http.StatusOK, response)
}

// GetHighlights returns the entries, expenses and total cards
//
// Method: GET /api/v1/highlights[?partial=true]
func (h *DashboardHandler) GetHighlights(c echo.Context) error {
	user, err := getUserFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	partial, err := getBoolQueryParam(c, "partial")
	if err != nil {
		return SendError(c, errors.ValidationInvalidQuery, errors.WithDetails(err.Error()))
	}

	ctx := c.Request().Context()
	response := dto.HighlightsResponse{}

	if partial {
		transactions, skipped, err := h.ledger.LoadAllPartial(ctx, user.ID)
		if err != nil {
			return SendLedgerError(c, err)
		}
		response.Highlights = h.ledger.Aggregate(transactions)
		response.Skipped = skipped
	} else {
		transactions, err := h.ledger.LoadAll(ctx, user.ID)
		if err != nil {
			return SendLedgerError(c, err)
		}
		response.Highlights = h.ledger.Aggregate(transactions)
	}

	return c.JSON(http.StatusOK, response)
}
