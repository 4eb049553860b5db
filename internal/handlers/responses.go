package handlers

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"gofinances/internal/errors"
	"gofinances/internal/repositories"
	"gofinances/internal/validation"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// Handlers answer errors through the helpers below, never with echo.NewHTTPError or c.JSON:
//
// 1. SendError - client errors with a known code (4xx)
//    SendError(c, errors.ValidationInvalidQuery, errors.WithDetails("..."))
//
// 2. SendLedgerError - anything returned by the ledger service or the validation package.
//    Validation failures become 400, storage outages 503 and unreadable records 500.
//
// 3. SendSystemError - unexpected failures. Internal details are logged, not returned.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internalErr := errors.WrapSystemError(err, traceID)
	slog.Error("internal error",
		"trace_id", traceID,
		"path", c.Request().URL.Path,
		"error", internalErr.Error(),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// SendValidationError answers 400 with one detail per rejected field
func SendValidationError(c echo.Context, validationErr *validation.ValidationError) error {
	errorResponse := errors.NewValidationError(validationErr.Fields, getTraceID(c))
	return c.JSON(http.StatusBadRequest, errorResponse)
}

// SendLedgerError maps ledger and validation failures onto the API error envelope
func SendLedgerError(c echo.Context, err error) error {
	var validationErr *validation.ValidationError
	var malformedErr *repositories.MalformedRecordError

	switch {
	case stderrors.As(err, &validationErr):
		return SendValidationError(c, validationErr)
	case stderrors.Is(err, repositories.ErrUserIDRequired):
		return SendError(c, errors.AuthInvalidClaims)
	case stderrors.Is(err, repositories.ErrStorageUnavailable):
		traceID := getTraceID(c)
		errorResponse, internalErr := errors.WrapStorageError(err, traceID)
		slog.Warn("ledger storage unavailable",
			"trace_id", traceID,
			"path", c.Request().URL.Path,
			"error", internalErr.Error(),
		)
		return c.JSON(http.StatusServiceUnavailable, errorResponse)
	case stderrors.As(err, &malformedErr):
		slog.Error("malformed ledger record",
			"trace_id", getTraceID(c),
			"key", malformedErr.Key,
			"index", malformedErr.Index,
			"reason", malformedErr.Reason,
		)
		return SendError(c, errors.LedgerMalformedRecord,
			errors.WithDetails("retry with ?partial=true to skip unreadable records"))
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("request cancelled"))
	default:
		return SendSystemError(c, err)
	}
}
