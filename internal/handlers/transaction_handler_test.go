package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gofinances/internal/dto"
	"gofinances/internal/errors"
	"gofinances/internal/models"
	"gofinances/internal/repositories"
	"gofinances/internal/services"
	"gofinances/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	echo       *echo.Echo
	ctrl       *gomock.Controller
	mockLedger *service_mocks.MockLedgerServiceInterface
	formatter  *services.TransactionFormatter
	handler    *TransactionHandler
	user       models.User
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.ctrl = gomock.NewController(s.T())
	s.mockLedger = service_mocks.NewMockLedgerServiceInterface(s.ctrl)
	s.formatter = services.NewTransactionFormatter("R$", time.UTC)
	s.handler = NewTransactionHandler(s.mockLedger, services.NewCategoryService())
	s.user = models.User{ID: gofakeit.UUID(), Name: gofakeit.Name()}
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TransactionHandlerTestSuite) newContext(method, target, body string, authenticated bool) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set(TraceIDContextKey, "trace-test")
	if authenticated {
		c.Set(UserIDContextKey, s.user.ID)
		c.Set(UserContextKey, s.user)
	}
	return c, rec
}

func (s *TransactionHandlerTestSuite) allowFormat() {
	s.mockLedger.EXPECT().Format(gomock.Any()).DoAndReturn(s.formatter.Format).AnyTimes()
}

func (s *TransactionHandlerTestSuite) decodeError(rec *httptest.ResponseRecorder) errors.ErrorResponse {
	var response errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID:       "1",
			Name:     "Desenvolvimento de site",
			Amount:   decimal.NewFromInt(12000),
			Type:     models.TransactionTypePositive,
			Category: models.CategorySalary,
			Date:     time.Date(2021, time.April, 13, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:       "2",
			Name:     "Hamburgueria Pizzy",
			Amount:   decimal.NewFromInt(59),
			Type:     models.TransactionTypeNegative,
			Category: models.CategoryFood,
			Date:     time.Date(2021, time.April, 10, 20, 0, 0, 0, time.UTC),
		},
	}
}

func (s *TransactionHandlerTestSuite) TestListTransactions_Success() {
	s.allowFormat()
	s.mockLedger.EXPECT().LoadAll(gomock.Any(), s.user.ID).Return(sampleTransactions(), nil)

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions", "", true)
	s.Require().NoError(s.handler.ListTransactions(c))

	s.Equal(http.StatusOK, rec.Code)
	var response dto.ListTransactionsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Require().Len(response.Transactions, 2)

	first := response.Transactions[0]
	s.Equal("1", first.ID)
	s.Equal("R$ 12.000,00", first.Amount)
	s.Equal("13/04/21", first.Date)
	s.Equal("positive", first.Type)
	s.Equal("Salário", first.CategoryName)
	s.Equal("dollar-sign", first.CategoryIcon)

	second := response.Transactions[1]
	s.Equal("R$ 59,00", second.Amount)
	s.Equal("Alimentação", second.CategoryName)
	s.Empty(response.Skipped)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_EmptyLedgerIsAnEmptyArray() {
	s.mockLedger.EXPECT().LoadAll(gomock.Any(), s.user.ID).Return(nil, nil)

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions", "", true)
	s.Require().NoError(s.handler.ListTransactions(c))

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"transactions":[]}`, rec.Body.String())
}

func (s *TransactionHandlerTestSuite) TestListTransactions_Partial() {
	s.allowFormat()
	skipped := []models.SkippedRecord{{Index: 1, Reason: "invalid amount"}}
	s.mockLedger.EXPECT().LoadAllPartial(gomock.Any(), s.user.ID).Return(sampleTransactions()[:1], skipped, nil)

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions?partial=true", "", true)
	s.Require().NoError(s.handler.ListTransactions(c))

	s.Equal(http.StatusOK, rec.Code)
	var response dto.ListTransactionsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response.Transactions, 1)
	s.Equal(skipped, response.Skipped)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_InvalidPartialFlag() {
	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions?partial=maybe", "", true)
	s.Require().NoError(s.handler.ListTransactions(c))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationInvalidQuery), s.decodeError(rec).Error.Code)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_Unauthenticated() {
	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions", "", false)
	s.Require().NoError(s.handler.ListTransactions(c))

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthMissingToken), s.decodeError(rec).Error.Code)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_StorageErrors() {
	testCases := []struct {
		name      string
		err       error
		status    int
		code      errors.ErrorCode
		retryable bool
	}{
		{
			name:      "storage unavailable",
			err:       fmt.Errorf("failed to load: %w: disk gone", repositories.ErrStorageUnavailable),
			status:    http.StatusServiceUnavailable,
			code:      errors.LedgerStorageUnavailable,
			retryable: true,
		},
		{
			name:   "malformed record",
			err:    &repositories.MalformedRecordError{Key: "@gofinances:transactions_user:1", Index: 3, Reason: "bad date"},
			status: http.StatusInternalServerError,
			code:   errors.LedgerMalformedRecord,
		},
		{
			name:      "cancelled",
			err:       context.Canceled,
			status:    http.StatusServiceUnavailable,
			code:      errors.SystemServiceUnavailable,
			retryable: true,
		},
		{
			name:   "unexpected",
			err:    fmt.Errorf("boom"),
			status: http.StatusInternalServerError,
			code:   errors.SystemInternalError,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockLedger.EXPECT().LoadAll(gomock.Any(), s.user.ID).Return(nil, tc.err)

			c, rec := s.newContext(http.MethodGet, "/api/v1/transactions", "", true)
			s.Require().NoError(s.handler.ListTransactions(c))

			s.Equal(tc.status, rec.Code)
			response := s.decodeError(rec)
			s.Equal(string(tc.code), response.Error.Code)
			s.Equal(tc.retryable, response.Error.Retryable)
			s.Equal("trace-test", response.Error.TraceID)
			s.NotContains(rec.Body.String(), "disk gone")
		})
	}
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	s.allowFormat()
	stored := sampleTransactions()[0]
	s.mockLedger.EXPECT().
		Append(gomock.Any(), s.user.ID, models.NewTransaction{
			Name:     "Desenvolvimento de site",
			Amount:   decimal.RequireFromString("12000"),
			Type:     models.TransactionTypePositive,
			Category: models.CategorySalary,
		}).
		Return(&stored, nil)

	body := `{"name":"  Desenvolvimento de site ","amount":"12000","type":"up","category":"salary"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body, true)
	s.Require().NoError(s.handler.CreateTransaction(c))

	s.Equal(http.StatusCreated, rec.Code)
	var response dto.TransactionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(stored.ID, response.ID)
	s.Equal("R$ 12.000,00", response.Amount)
	s.Equal("Salário", response.CategoryName)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_NumericAmount() {
	s.allowFormat()
	stored := sampleTransactions()[1]
	s.mockLedger.EXPECT().
		Append(gomock.Any(), s.user.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, input models.NewTransaction) (*models.Transaction, error) {
			s.True(decimal.RequireFromString("59.9").Equal(input.Amount))
			return &stored, nil
		})

	body := `{"name":"Pizza","amount":59.90,"type":"negative","category":"food"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body, true)
	s.Require().NoError(s.handler.CreateTransaction(c))

	s.Equal(http.StatusCreated, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_ValidationErrors() {
	testCases := []struct {
		name   string
		body   string
		detail string
	}{
		{"missing name", `{"amount":"10","type":"up","category":"food"}`, "name: is required"},
		{"blank name", `{"name":"   ","amount":"10","type":"up","category":"food"}`, "name: is required"},
		{"missing amount", `{"name":"x","type":"up","category":"food"}`, "amount: is required"},
		{"zero amount", `{"name":"x","amount":"0","type":"up","category":"food"}`, "amount: must be a number greater than 0"},
		{"text amount", `{"name":"x","amount":"abc","type":"up","category":"food"}`, "amount: must be a number greater than 0"},
		{"unknown type", `{"name":"x","amount":"10","type":"sideways","category":"food"}`, "type: must be a valid transaction type"},
		{"placeholder category", `{"name":"x","amount":"10","type":"up","category":"category"}`, "category: must be a selected category"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", tc.body, true)
			s.Require().NoError(s.handler.CreateTransaction(c))

			s.Equal(http.StatusBadRequest, rec.Code)
			response := s.decodeError(rec)
			s.Equal(string(errors.ValidationGeneral), response.Error.Code)
			s.Require().Len(response.Error.Details, 1)
			s.Contains(response.Error.Details[0], tc.detail)
		})
	}
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_ReportsEveryInvalidField() {
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", `{}`, true)
	s.Require().NoError(s.handler.CreateTransaction(c))

	s.Equal(http.StatusBadRequest, rec.Code)
	response := s.decodeError(rec)
	s.Equal([]string{
		"amount: is required",
		"category: is required",
		"name: is required",
		"type: is required",
	}, response.Error.Details)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_MalformedBody() {
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", `{"name":`, true)
	s.Require().NoError(s.handler.CreateTransaction(c))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationInvalidFormat), s.decodeError(rec).Error.Code)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_StorageUnavailable() {
	s.mockLedger.EXPECT().
		Append(gomock.Any(), s.user.ID, gomock.Any()).
		Return(nil, fmt.Errorf("failed to append: %w: %w", repositories.ErrStorageUnavailable, services.ErrCircuitBreakerOpen))

	body := `{"name":"Aluguel","amount":"1200","type":"down","category":"purchases"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body, true)
	s.Require().NoError(s.handler.CreateTransaction(c))

	s.Equal(http.StatusServiceUnavailable, rec.Code)
	response := s.decodeError(rec)
	s.Equal(string(errors.LedgerStorageUnavailable), response.Error.Code)
	s.True(response.Error.Retryable)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_Unauthenticated() {
	body := `{"name":"Aluguel","amount":"1200","type":"down","category":"purchases"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body, false)
	s.Require().NoError(s.handler.CreateTransaction(c))

	s.Equal(http.StatusUnauthorized, rec.Code)
}
