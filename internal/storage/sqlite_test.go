package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneypenny/penny/internal/model"
	"github.com/moneypenny/penny/internal/service"
)

const testUserID = 1

// createTestStorage opens a migrated, seeded store in a temp dir.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SeedCategories(ctx, testUserID))

	return store
}

func mustCategory(t *testing.T, store *SQLiteStorage, name string) *model.Category {
	t.Helper()
	cat, err := store.GetCategoryByName(context.Background(), name, testUserID)
	require.NoError(t, err)
	require.NotNil(t, cat, "expected seeded category %q", name)
	return cat
}

func TestSeedCategories(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	expense, err := store.GetCategories(ctx, testUserID, model.CategoryTypeExpense)
	require.NoError(t, err)
	income, err := store.GetCategories(ctx, testUserID, model.CategoryTypeIncome)
	require.NoError(t, err)

	assert.Len(t, expense, 9)
	assert.Len(t, income, 5)

	food := mustCategory(t, store, "Food & Dining")
	assert.Equal(t, "🍔", food.Icon)
	assert.Equal(t, model.CategoryTypeExpense, food.Type)

	salary := mustCategory(t, store, "Salary")
	assert.Equal(t, model.CategoryTypeIncome, salary.Type)

	// Seeding again must not duplicate.
	require.NoError(t, store.SeedCategories(ctx, testUserID))
	again, err := store.GetCategories(ctx, testUserID, "")
	require.NoError(t, err)
	assert.Len(t, again, 14)
}

func TestGetCategoryByNameMissing(t *testing.T) {
	store := createTestStorage(t)

	cat, err := store.GetCategoryByName(context.Background(), "No Such Category", testUserID)
	require.NoError(t, err)
	assert.Nil(t, cat)
}

func TestTransactionRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	food := mustCategory(t, store, "Food & Dining")

	id, err := store.AddTransaction(ctx, model.Transaction{
		Amount:      250,
		Description: "groceries",
		CategoryID:  food.ID,
		Type:        model.TypeExpense,
		UserID:      testUserID,
	})
	require.NoError(t, err)
	require.Positive(t, id)

	txn, err := store.GetTransactionByID(ctx, id, testUserID)
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, 250.0, txn.Amount)
	assert.Equal(t, "groceries", txn.Description)
	assert.Equal(t, "Food & Dining", txn.CategoryName)
	assert.Equal(t, "🍔", txn.CategoryIcon)
	assert.Equal(t, model.TypeExpense, txn.Type)
	// Date defaults to today when unset.
	assert.Equal(t, time.Now().Format("2006-01-02"), txn.Date.Format("2006-01-02"))
}

func TestTransactionValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	food := mustCategory(t, store, "Food & Dining")

	tests := []struct {
		name string
		txn  model.Transaction
	}{
		{
			name: "zero amount",
			txn:  model.Transaction{Amount: 0, Description: "x", CategoryID: food.ID, Type: model.TypeExpense, UserID: testUserID},
		},
		{
			name: "negative amount",
			txn:  model.Transaction{Amount: -5, Description: "x", CategoryID: food.ID, Type: model.TypeExpense, UserID: testUserID},
		},
		{
			name: "bad type",
			txn:  model.Transaction{Amount: 5, Description: "x", CategoryID: food.ID, Type: "transfer", UserID: testUserID},
		},
		{
			name: "missing category",
			txn:  model.Transaction{Amount: 5, Description: "x", Type: model.TypeExpense, UserID: testUserID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.AddTransaction(ctx, tt.txn)
			assert.Error(t, err)
		})
	}
}

func TestGetTransactionsFilter(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	food := mustCategory(t, store, "Food & Dining")
	salary := mustCategory(t, store, "Salary")

	for i := 0; i < 3; i++ {
		_, err := store.AddTransaction(ctx, model.Transaction{
			Amount:      100 + float64(i),
			Description: "lunch",
			CategoryID:  food.ID,
			Type:        model.TypeExpense,
			UserID:      testUserID,
		})
		require.NoError(t, err)
	}
	_, err := store.AddTransaction(ctx, model.Transaction{
		Amount:      5000,
		Description: "salary",
		CategoryID:  salary.ID,
		Type:        model.TypeIncome,
		UserID:      testUserID,
	})
	require.NoError(t, err)

	expenses, err := store.GetTransactions(ctx, testUserID, service.TransactionFilter{Type: model.TypeExpense})
	require.NoError(t, err)
	assert.Len(t, expenses, 3)

	limited, err := store.GetTransactions(ctx, testUserID, service.TransactionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	all, err := store.GetTransactions(ctx, testUserID, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestSummary(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	food := mustCategory(t, store, "Food & Dining")
	salary := mustCategory(t, store, "Salary")

	_, err := store.AddTransaction(ctx, model.Transaction{
		Amount: 300, Description: "dinner", CategoryID: food.ID,
		Type: model.TypeExpense, UserID: testUserID,
	})
	require.NoError(t, err)
	_, err = store.AddTransaction(ctx, model.Transaction{
		Amount: 1000, Description: "salary", CategoryID: salary.ID,
		Type: model.TypeIncome, UserID: testUserID,
	})
	require.NoError(t, err)

	summary, err := store.GetSummary(ctx, testUserID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, summary.Income)
	assert.Equal(t, 300.0, summary.Expense)
	assert.Equal(t, 700.0, summary.Balance)
}

func TestCategoryBreakdownOrdering(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	food := mustCategory(t, store, "Food & Dining")
	transport := mustCategory(t, store, "Transport")

	_, err := store.AddTransaction(ctx, model.Transaction{
		Amount: 100, Description: "cab", CategoryID: transport.ID,
		Type: model.TypeExpense, UserID: testUserID,
	})
	require.NoError(t, err)
	_, err = store.AddTransaction(ctx, model.Transaction{
		Amount: 400, Description: "groceries", CategoryID: food.ID,
		Type: model.TypeExpense, UserID: testUserID,
	})
	require.NoError(t, err)

	breakdown, err := store.GetCategoryBreakdown(ctx, testUserID, nil, nil, model.TypeExpense)
	require.NoError(t, err)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Food & Dining", breakdown[0].Name)
	assert.Equal(t, 400.0, breakdown[0].Total)
	assert.Equal(t, "Transport", breakdown[1].Name)
}

func TestBudgetStatus(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	food := mustCategory(t, store, "Food & Dining")

	require.NoError(t, store.SetBudget(ctx, food.ID, testUserID, 1000))

	_, err := store.AddTransaction(ctx, model.Transaction{
		Amount: 850, Description: "restaurant week", CategoryID: food.ID,
		Type: model.TypeExpense, UserID: testUserID,
	})
	require.NoError(t, err)

	statuses, err := store.GetBudgetStatus(ctx, testUserID, "")
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	status := statuses[0]
	assert.Equal(t, "Food & Dining", status.Name)
	assert.Equal(t, 1000.0, status.MonthlyLimit)
	assert.Equal(t, 850.0, status.Spent)
	assert.Equal(t, 150.0, status.Remaining)
	assert.InDelta(t, 85.0, status.Percentage, 0.001)

	// Upsert replaces the limit for the same category.
	require.NoError(t, store.SetBudget(ctx, food.ID, testUserID, 2000))
	budgets, err := store.GetBudgets(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, 2000.0, budgets[0].MonthlyLimit)
}

func TestSettings(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	value, err := store.GetSetting(ctx, "llm_api_key", testUserID)
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, store.SetSetting(ctx, "llm_api_key", "secret", testUserID))
	require.NoError(t, store.SetSetting(ctx, "llm_api_key", "rotated", testUserID))

	value, err = store.GetSetting(ctx, "llm_api_key", testUserID)
	require.NoError(t, err)
	assert.Equal(t, "rotated", value)

	// Settings are per-user.
	other, err := store.GetSetting(ctx, "llm_api_key", 2)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeleteTransaction(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	food := mustCategory(t, store, "Food & Dining")

	id, err := store.AddTransaction(ctx, model.Transaction{
		Amount: 50, Description: "snack", CategoryID: food.ID,
		Type: model.TypeExpense, UserID: testUserID,
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteTransaction(ctx, id, testUserID))
	assert.Error(t, store.DeleteTransaction(ctx, id, testUserID))

	txn, err := store.GetTransactionByID(ctx, id, testUserID)
	require.NoError(t, err)
	assert.Nil(t, txn)
}
