package services

import (
	"context"
	"time"

	"gofinances/internal/models"
)

// LedgerServiceInterface is the public surface of the transaction ledger
type LedgerServiceInterface interface {
	// Append stamps id and date on already validated input and stores it
	Append(ctx context.Context, userID string, input models.NewTransaction) (*models.Transaction, error)
	LoadAll(ctx context.Context, userID string) ([]models.Transaction, error)
	LoadAllPartial(ctx context.Context, userID string) ([]models.Transaction, []models.SkippedRecord, error)
	Format(transaction models.Transaction) models.DisplayTransaction
	Aggregate(transactions []models.Transaction) models.HighlightData
	// Dashboard loads the ledger once and derives both the display list and the highlights
	Dashboard(ctx context.Context, user models.User, partial bool) (*models.Dashboard, error)
	Ping(ctx context.Context) error
}

// CategoryServiceInterface resolves category keys for display
type CategoryServiceInterface interface {
	List() []models.Category
	Resolve(key string) models.Category
	Exists(key string) bool
}

// SeedGeneratorInterface produces plausible demo input
type SeedGeneratorInterface interface {
	Generate(count int) []models.NewTransaction
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() CircuitBreakerState
	Reset()
	GetFailureCount() int
}
