package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gofinances/internal/models"
	"gofinances/internal/repositories"

	"github.com/google/uuid"
)

const ledgerBreakerName = "ledger"

type ledgerService struct {
	repo       repositories.LedgerRepositoryInterface
	formatter  *TransactionFormatter
	aggregator *HighlightAggregator
	breaker    CircuitBreakerInterface
	metrics    MetricsRecorderInterface
	audit      *AuditLogger
	now        func() time.Time
	newID      func() string
}

// NewLedgerService wires the ledger store behind a circuit breaker
func NewLedgerService(
	repo repositories.LedgerRepositoryInterface,
	formatter *TransactionFormatter,
	breaker CircuitBreakerInterface,
	metrics MetricsRecorderInterface,
) LedgerServiceInterface {
	return &ledgerService{
		repo:       repo,
		formatter:  formatter,
		aggregator: NewHighlightAggregator(formatter),
		breaker:    breaker,
		metrics:    metrics,
		audit:      NewAuditLogger(slog.Default()),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// BreakerStateGauge publishes every breaker transition as the circuit_breaker_state gauge
func BreakerStateGauge(metrics MetricsRecorderInterface, service string) func(from, to CircuitBreakerState) {
	audit := NewAuditLogger(slog.Default())
	return func(from, to CircuitBreakerState) {
		audit.LogBreakerStateChange(service, from, to)
		metrics.RecordGauge(MetricCircuitState, float64(to), map[string]string{"service": service})
	}
}

func (s *ledgerService) Append(ctx context.Context, userID string, input models.NewTransaction) (*models.Transaction, error) {
	startTime := time.Now()

	transaction := models.Transaction{
		ID:       s.newID(),
		Name:     input.Name,
		Amount:   input.Amount,
		Type:     input.Type,
		Category: input.Category,
		Date:     s.now().UTC(),
	}

	err := s.guard("append transaction", func() error {
		return s.repo.Append(ctx, userID, transaction)
	})

	duration := time.Since(startTime)
	s.metrics.RecordProcessingTime(MetricLedgerAppend, duration)
	if err != nil {
		s.metrics.IncrementCounter(MetricLedgerAppend, map[string]string{"status": "failed"})
		s.audit.LogAppendFailed(ctx, userID, transaction.ID, err)
		return nil, err
	}

	s.metrics.IncrementCounter(MetricLedgerAppend, map[string]string{"status": "success"})
	s.audit.LogTransactionAppended(ctx, userID, transaction, duration)

	return &transaction, nil
}

func (s *ledgerService) LoadAll(ctx context.Context, userID string) ([]models.Transaction, error) {
	startTime := time.Now()

	var transactions []models.Transaction
	err := s.guard("load ledger", func() error {
		var err error
		transactions, err = s.repo.LoadAll(ctx, userID)
		return err
	})

	s.recordLoad("strict", startTime, len(transactions), 0, err)
	if err != nil {
		s.audit.LogLoadFailed(ctx, userID, false, err)
		return nil, err
	}

	return transactions, nil
}

func (s *ledgerService) LoadAllPartial(ctx context.Context, userID string) ([]models.Transaction, []models.SkippedRecord, error) {
	startTime := time.Now()

	var transactions []models.Transaction
	var skipped []models.SkippedRecord
	err := s.guard("load ledger", func() error {
		var err error
		transactions, skipped, err = s.repo.LoadAllPartial(ctx, userID)
		return err
	})

	s.recordLoad("partial", startTime, len(transactions), len(skipped), err)
	if err != nil {
		s.audit.LogLoadFailed(ctx, userID, true, err)
		return nil, nil, err
	}

	s.audit.LogRecordsSkipped(ctx, userID, skipped)

	return transactions, skipped, nil
}

func (s *ledgerService) Format(transaction models.Transaction) models.DisplayTransaction {
	return s.formatter.Format(transaction)
}

func (s *ledgerService) Aggregate(transactions []models.Transaction) models.HighlightData {
	s.metrics.IncrementCounter(MetricHighlights, nil)
	return s.aggregator.Aggregate(transactions)
}

func (s *ledgerService) Dashboard(ctx context.Context, user models.User, partial bool) (*models.Dashboard, error) {
	var transactions []models.Transaction
	var skipped []models.SkippedRecord
	var err error

	if partial {
		transactions, skipped, err = s.LoadAllPartial(ctx, user.ID)
	} else {
		transactions, err = s.LoadAll(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}

	display := make([]models.DisplayTransaction, 0, len(transactions))
	for _, transaction := range transactions {
		display = append(display, s.formatter.Format(transaction))
	}

	return &models.Dashboard{
		User:         user,
		Highlights:   s.Aggregate(transactions),
		Transactions: display,
		Skipped:      skipped,
	}, nil
}

func (s *ledgerService) Ping(ctx context.Context) error {
	return s.guard("ping ledger storage", func() error {
		return s.repo.Ping(ctx)
	})
}

// guard fails fast while the breaker is open. Only storage failures count against it.
func (s *ledgerService) guard(operation string, call func() error) error {
	if s.breaker.IsOpen() {
		s.metrics.IncrementCounter(MetricCircuitBreakerOpen, map[string]string{"service": ledgerBreakerName})
		return fmt.Errorf("failed to %s: %w: %w", operation, repositories.ErrStorageUnavailable, ErrCircuitBreakerOpen)
	}

	err := call()
	switch {
	case err == nil, errors.Is(err, repositories.ErrMalformedRecord):
		s.breaker.RecordSuccess()
	case errors.Is(err, repositories.ErrStorageUnavailable):
		s.breaker.RecordFailure()
	}

	return err
}

func (s *ledgerService) recordLoad(mode string, startTime time.Time, loaded, skipped int, err error) {
	s.metrics.RecordProcessingTime(MetricLedgerLoad, time.Since(startTime))

	status := "success"
	if err != nil {
		status = "failed"
	}
	s.metrics.IncrementCounter(MetricLedgerLoad, map[string]string{"mode": mode, "status": status})

	if err != nil {
		return
	}
	s.metrics.RecordGauge(MetricLedgerLoaded, float64(loaded), nil)
	if skipped > 0 {
		s.metrics.RecordGauge(MetricLedgerSkipped, float64(skipped), nil)
	}
}
