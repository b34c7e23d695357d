// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/moneypenny/penny/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Type       model.TransactionType
	CategoryID int
	Limit      int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Summary and aggregate operations
	GetSummary(ctx context.Context, userID int, start, end *time.Time) (model.Summary, error)
	GetCategoryBreakdown(ctx context.Context, userID int, start, end *time.Time, txType model.TransactionType) ([]model.CategorySpend, error)
	GetMonthlyTrends(ctx context.Context, userID, months int) ([]model.MonthlyTrend, error)

	// Category operations
	GetCategories(ctx context.Context, userID int, categoryType model.CategoryType) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string, userID int) (*model.Category, error)
	AddCategory(ctx context.Context, category model.Category) (int, error)

	// Transaction operations
	AddTransaction(ctx context.Context, txn model.Transaction) (int64, error)
	GetTransactions(ctx context.Context, userID int, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id int64, userID int) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn model.Transaction) error
	DeleteTransaction(ctx context.Context, id int64, userID int) error

	// Budget operations
	GetBudgets(ctx context.Context, userID int) ([]model.Budget, error)
	SetBudget(ctx context.Context, categoryID, userID int, monthlyLimit float64) error
	GetBudgetStatus(ctx context.Context, userID int, month string) ([]model.BudgetStatus, error)

	// Settings operations
	GetSetting(ctx context.Context, key string, userID int) (string, error)
	SetSetting(ctx context.Context, key, value string, userID int) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Categorizer maps free-text descriptions to confidence-scored categories.
type Categorizer interface {
	Predict(description string) model.ClassificationResult
	TopPredictions(description string, n int) []model.ClassificationResult
	Retrain(extra []model.TrainingExample) error
}

// Generator is a remote generative-text collaborator. Failures must be
// treated as "unavailable", never as fatal.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
