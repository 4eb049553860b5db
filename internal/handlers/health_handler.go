package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gofinances/internal/errors"
	"gofinances/internal/services"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	ledger services.LedgerServiceInterface
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(ledger services.LedgerServiceInterface) *HealthCheckHandler {
	return &HealthCheckHandler{ledger: ledger}
}

// HealthCheck pings the ledger storage
//
// Method: GET /health
// Success Response: 200 OK {status, time}
// Error Responses:
//   - 503 SYSTEM_003: storage unreachable or circuit breaker open
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.ledger.Ping(ctx); err != nil {
		slog.Warn("health check failed", "error", err.Error())
		errorResponse := errors.NewErrorResponse(
			errors.SystemServiceUnavailable,
			getTraceIDFromContext(c),
			errors.WithDetails("Ledger storage unavailable"),
		)
		return c.JSON(http.StatusServiceUnavailable, errorResponse)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Helper to get trace ID from context
func getTraceIDFromContext(c echo.Context) string {
	traceID := c.Response().Header().Get("X-Trace-ID")
	if traceID == "" {
		traceID = getTraceID(c)
	}
	if traceID == "" {
		traceID = "unknown"
	}
	return traceID
}
