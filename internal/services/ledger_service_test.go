package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gofinances/internal/models"
	"gofinances/internal/repositories"
	"gofinances/internal/repositories/repository_mocks"
	"gofinances/internal/services"
	"gofinances/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	repo    *repository_mocks.MockLedgerRepositoryInterface
	metrics *service_mocks.MockMetricsRecorderInterface
	breaker *service_mocks.MockCircuitBreakerInterface
	service services.LedgerServiceInterface
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.repo = repository_mocks.NewMockLedgerRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.breaker = service_mocks.NewMockCircuitBreakerInterface(s.ctrl)

	s.service = services.NewLedgerService(
		s.repo,
		services.NewTransactionFormatter("R$", time.UTC),
		s.breaker,
		s.metrics,
	)
}

func (s *LedgerServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *LedgerServiceTestSuite) allowMetrics() {
	s.metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordGauge(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
}

func (s *LedgerServiceTestSuite) transaction(name, amount string, txType models.TransactionType, date time.Time) models.Transaction {
	return models.Transaction{
		ID:       name + "-id",
		Name:     name,
		Amount:   decimal.RequireFromString(amount),
		Type:     txType,
		Category: models.CategoryFood,
		Date:     date,
	}
}

func (s *LedgerServiceTestSuite) TestAppend_StampsIDAndDate() {
	s.allowMetrics()
	input := models.NewTransaction{
		Name:     "Hamburgueria Pizzy",
		Amount:   decimal.RequireFromString("59.90"),
		Type:     models.TransactionTypeNegative,
		Category: models.CategoryFood,
	}

	var stored models.Transaction
	s.breaker.EXPECT().IsOpen().Return(false)
	s.repo.EXPECT().Append(s.ctx, "user-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, transaction models.Transaction) error {
			stored = transaction
			return nil
		})
	s.breaker.EXPECT().RecordSuccess()

	before := time.Now().UTC()
	result, err := s.service.Append(s.ctx, "user-1", input)

	s.Require().NoError(err)
	s.NotEmpty(result.ID)
	s.Equal(stored, *result)
	s.Equal(input.Name, result.Name)
	s.True(input.Amount.Equal(result.Amount))
	s.Equal(time.UTC, result.Date.Location())
	s.False(result.Date.Before(before))
}

func (s *LedgerServiceTestSuite) TestAppend_UniqueIDs() {
	s.allowMetrics()
	s.breaker.EXPECT().IsOpen().Return(false).Times(2)
	s.breaker.EXPECT().RecordSuccess().Times(2)
	s.repo.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	input := models.NewTransaction{Name: "Café", Amount: decimal.NewFromInt(5), Type: models.TransactionTypeNegative, Category: models.CategoryFood}
	first, err := s.service.Append(s.ctx, "user-1", input)
	s.Require().NoError(err)
	second, err := s.service.Append(s.ctx, "user-1", input)
	s.Require().NoError(err)

	s.NotEqual(first.ID, second.ID)
}

func (s *LedgerServiceTestSuite) TestAppend_StorageFailureCountsAgainstBreaker() {
	storageErr := fmt.Errorf("failed to append transaction: %w: disk full", repositories.ErrStorageUnavailable)

	s.breaker.EXPECT().IsOpen().Return(false)
	s.repo.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Return(storageErr)
	s.breaker.EXPECT().RecordFailure()
	s.metrics.EXPECT().RecordProcessingTime(services.MetricLedgerAppend, gomock.Any())
	s.metrics.EXPECT().IncrementCounter(services.MetricLedgerAppend, map[string]string{"status": "failed"})

	result, err := s.service.Append(s.ctx, "user-1", models.NewTransaction{Name: "x", Amount: decimal.NewFromInt(1), Type: models.TransactionTypePositive, Category: models.CategorySalary})

	s.Nil(result)
	s.ErrorIs(err, repositories.ErrStorageUnavailable)
}

func (s *LedgerServiceTestSuite) TestAppend_CancelledContextIsNotAFailure() {
	s.allowMetrics()
	s.breaker.EXPECT().IsOpen().Return(false)
	s.repo.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Return(context.Canceled)

	_, err := s.service.Append(s.ctx, "user-1", models.NewTransaction{Name: "x", Amount: decimal.NewFromInt(1), Type: models.TransactionTypePositive, Category: models.CategorySalary})

	s.ErrorIs(err, context.Canceled)
}

func (s *LedgerServiceTestSuite) TestAppend_OpenBreakerFailsFast() {
	s.breaker.EXPECT().IsOpen().Return(true)
	s.metrics.EXPECT().IncrementCounter(services.MetricCircuitBreakerOpen, map[string]string{"service": "ledger"})
	s.metrics.EXPECT().RecordProcessingTime(services.MetricLedgerAppend, gomock.Any())
	s.metrics.EXPECT().IncrementCounter(services.MetricLedgerAppend, map[string]string{"status": "failed"})

	_, err := s.service.Append(s.ctx, "user-1", models.NewTransaction{Name: "x", Amount: decimal.NewFromInt(1), Type: models.TransactionTypePositive, Category: models.CategorySalary})

	s.ErrorIs(err, repositories.ErrStorageUnavailable)
	s.ErrorIs(err, services.ErrCircuitBreakerOpen)
}

func (s *LedgerServiceTestSuite) TestLoadAll_ReturnsStoredOrder() {
	s.allowMetrics()
	now := time.Now().UTC()
	stored := []models.Transaction{
		s.transaction("b", "10", models.TransactionTypePositive, now),
		s.transaction("a", "5", models.TransactionTypeNegative, now.Add(-time.Hour)),
	}

	s.breaker.EXPECT().IsOpen().Return(false)
	s.repo.EXPECT().LoadAll(s.ctx, "user-1").Return(stored, nil)
	s.breaker.EXPECT().RecordSuccess()

	transactions, err := s.service.LoadAll(s.ctx, "user-1")

	s.Require().NoError(err)
	s.Equal(stored, transactions)
}

func (s *LedgerServiceTestSuite) TestLoadAll_MalformedIsNotAStorageFailure() {
	s.allowMetrics()
	malformed := &repositories.MalformedRecordError{Key: "k", Index: 1, Reason: "bad amount"}

	s.breaker.EXPECT().IsOpen().Return(false)
	s.repo.EXPECT().LoadAll(gomock.Any(), gomock.Any()).Return(nil, malformed)
	s.breaker.EXPECT().RecordSuccess()

	transactions, err := s.service.LoadAll(s.ctx, "user-1")

	s.Nil(transactions)
	s.ErrorIs(err, repositories.ErrMalformedRecord)

	var recordErr *repositories.MalformedRecordError
	s.Require().True(errors.As(err, &recordErr))
	s.Equal(1, recordErr.Index)
}

func (s *LedgerServiceTestSuite) TestLoadAllPartial_ReportsSkipped() {
	now := time.Now().UTC()
	stored := []models.Transaction{s.transaction("a", "5", models.TransactionTypeNegative, now)}
	skipped := []models.SkippedRecord{{Index: 0, Reason: "missing amount"}}

	s.breaker.EXPECT().IsOpen().Return(false)
	s.repo.EXPECT().LoadAllPartial(s.ctx, "user-1").Return(stored, skipped, nil)
	s.breaker.EXPECT().RecordSuccess()
	s.metrics.EXPECT().RecordProcessingTime(services.MetricLedgerLoad, gomock.Any())
	s.metrics.EXPECT().IncrementCounter(services.MetricLedgerLoad, map[string]string{"mode": "partial", "status": "success"})
	s.metrics.EXPECT().RecordGauge(services.MetricLedgerLoaded, float64(1), gomock.Any())
	s.metrics.EXPECT().RecordGauge(services.MetricLedgerSkipped, float64(1), gomock.Any())

	transactions, gotSkipped, err := s.service.LoadAllPartial(s.ctx, "user-1")

	s.Require().NoError(err)
	s.Equal(stored, transactions)
	s.Equal(skipped, gotSkipped)
}

func (s *LedgerServiceTestSuite) TestDashboard_LoadsOnce() {
	s.allowMetrics()
	date := time.Date(2021, time.April, 13, 10, 0, 0, 0, time.UTC)
	stored := []models.Transaction{
		s.transaction("salary", "100", models.TransactionTypePositive, date.AddDate(0, 0, -3)),
		s.transaction("lunch", "30", models.TransactionTypeNegative, date),
	}
	user := models.User{ID: "user-1", Name: "Ana"}

	s.breaker.EXPECT().IsOpen().Return(false)
	s.repo.EXPECT().LoadAll(s.ctx, "user-1").Return(stored, nil).Times(1)
	s.breaker.EXPECT().RecordSuccess()

	dashboard, err := s.service.Dashboard(s.ctx, user, false)

	s.Require().NoError(err)
	s.Equal(user, dashboard.User)
	s.Require().Len(dashboard.Transactions, 2)
	s.Equal("R$ 100,00", dashboard.Transactions[0].Amount)
	s.Equal("13/04/21", dashboard.Transactions[1].Date)
	s.Equal("R$ 70,00", dashboard.Highlights.Total.Amount)
	s.Equal("01 a 13 de abril", dashboard.Highlights.Total.LastTransaction)
	s.Empty(dashboard.Skipped)
}

func (s *LedgerServiceTestSuite) TestDashboard_PartialUsesPartialLoad() {
	s.allowMetrics()
	skipped := []models.SkippedRecord{{Index: 2, Reason: "invalid type"}}

	s.breaker.EXPECT().IsOpen().Return(false)
	s.repo.EXPECT().LoadAllPartial(s.ctx, "user-1").Return([]models.Transaction{}, skipped, nil)
	s.breaker.EXPECT().RecordSuccess()

	dashboard, err := s.service.Dashboard(s.ctx, models.User{ID: "user-1"}, true)

	s.Require().NoError(err)
	s.Empty(dashboard.Transactions)
	s.Equal(skipped, dashboard.Skipped)
	s.Equal(services.NoTransactionsLabel, dashboard.Highlights.Entries.LastTransaction)
}

func (s *LedgerServiceTestSuite) TestDashboard_PropagatesError() {
	s.allowMetrics()
	s.breaker.EXPECT().IsOpen().Return(true)

	dashboard, err := s.service.Dashboard(s.ctx, models.User{ID: "user-1"}, false)

	s.Nil(dashboard)
	s.ErrorIs(err, repositories.ErrStorageUnavailable)
}

func (s *LedgerServiceTestSuite) TestPing() {
	s.breaker.EXPECT().IsOpen().Return(false)
	s.repo.EXPECT().Ping(s.ctx).Return(nil)
	s.breaker.EXPECT().RecordSuccess()

	s.NoError(s.service.Ping(s.ctx))
}

func (s *LedgerServiceTestSuite) TestBreakerStateGauge() {
	s.metrics.EXPECT().RecordGauge(services.MetricCircuitState, float64(services.StateOpen), map[string]string{"service": "ledger"})

	services.BreakerStateGauge(s.metrics, "ledger")(services.StateClosed, services.StateOpen)
}

// A real breaker opens after repeated storage failures and then stops calling the store
func (s *LedgerServiceTestSuite) TestRealBreakerStopsCallingStore() {
	s.allowMetrics()
	breaker := services.NewCircuitBreaker(services.CircuitBreakerConfig{MaxFailures: 2, ResetTimeout: time.Hour})
	service := services.NewLedgerService(s.repo, services.NewTransactionFormatter("R$", time.UTC), breaker, s.metrics)

	storageErr := fmt.Errorf("%w: connection refused", repositories.ErrStorageUnavailable)
	s.repo.EXPECT().LoadAll(gomock.Any(), gomock.Any()).Return(nil, storageErr).Times(2)

	for i := 0; i < 2; i++ {
		_, err := service.LoadAll(s.ctx, "user-1")
		s.ErrorIs(err, repositories.ErrStorageUnavailable)
	}

	_, err := service.LoadAll(s.ctx, "user-1")
	s.ErrorIs(err, services.ErrCircuitBreakerOpen)
	s.Equal(services.StateOpen, breaker.GetState())
}
