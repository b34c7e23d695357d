package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneypenny/penny/internal/model"
	"github.com/moneypenny/penny/internal/storage"
)

func setBudgetFor(t *testing.T, store *storage.SQLiteStorage, categoryName string, limit float64) {
	t.Helper()
	ctx := context.Background()

	cat, err := store.GetCategoryByName(ctx, categoryName, testUserID)
	require.NoError(t, err)
	require.NotNil(t, cat)
	require.NoError(t, store.SetBudget(ctx, cat.ID, testUserID, limit))
}

func findAlert(alerts []model.Alert, category string) *model.Alert {
	for i := range alerts {
		if alerts[i].Category == category {
			return &alerts[i]
		}
	}
	return nil
}

func TestDetectOverspendingBudgetExceeded(t *testing.T) {
	engine, store := createTestEngine(t)

	setBudgetFor(t, store, "Food & Dining", 500)
	addMonthlyExpense(t, store, 0, 600)

	alerts, err := engine.DetectOverspending(context.Background(), testUserID)
	require.NoError(t, err)

	alert := findAlert(alerts, "Food & Dining")
	require.NotNil(t, alert)
	assert.Equal(t, model.AlertBudgetExceeded, alert.Kind)
	assert.Equal(t, model.SeverityHigh, alert.Severity)
	assert.InDelta(t, 120.0, alert.Percentage, 0.001)
}

func TestDetectOverspendingBudgetWarning(t *testing.T) {
	engine, store := createTestEngine(t)

	setBudgetFor(t, store, "Food & Dining", 1000)
	addMonthlyExpense(t, store, 0, 800)

	alerts, err := engine.DetectOverspending(context.Background(), testUserID)
	require.NoError(t, err)

	alert := findAlert(alerts, "Food & Dining")
	require.NotNil(t, alert)
	assert.Equal(t, model.AlertBudgetWarning, alert.Kind)
	assert.Equal(t, model.SeverityMedium, alert.Severity)
}

func TestDetectOverspendingBelowThresholds(t *testing.T) {
	engine, store := createTestEngine(t)

	setBudgetFor(t, store, "Food & Dining", 1000)
	addMonthlyExpense(t, store, 0, 790)

	alerts, err := engine.DetectOverspending(context.Background(), testUserID)
	require.NoError(t, err)

	alert := findAlert(alerts, "Food & Dining")
	if alert != nil {
		// Budget rules must not fire below 80%.
		assert.Equal(t, model.AlertHighSpending, alert.Kind)
	}
}

func TestDetectOverspendingDedupPerCategory(t *testing.T) {
	engine, store := createTestEngine(t)

	// Exceeded budget AND high spending on the same category: exactly
	// one alert should come out.
	setBudgetFor(t, store, "Food & Dining", 100)
	addMonthlyExpense(t, store, 1, 200)
	addMonthlyExpense(t, store, 0, 900)

	alerts, err := engine.DetectOverspending(context.Background(), testUserID)
	require.NoError(t, err)

	count := 0
	for _, alert := range alerts {
		if alert.Category == "Food & Dining" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, model.AlertBudgetExceeded, alerts[0].Kind)
}

func TestDetectOverspendingNoActivity(t *testing.T) {
	engine, _ := createTestEngine(t)

	alerts, err := engine.DetectOverspending(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestRecommendationsNoBudgets(t *testing.T) {
	engine, store := createTestEngine(t)

	addMonthlyExpense(t, store, 0, 100)

	recs, err := engine.Recommendations(context.Background(), testUserID)
	require.NoError(t, err)

	var found bool
	for _, rec := range recs {
		if rec.Title == "Set up budgets" {
			found = true
			assert.Equal(t, model.SeverityMedium, rec.Priority)
		}
	}
	assert.True(t, found, "expected a budget setup recommendation")
}

func TestRecommendationsKeepRuleOrder(t *testing.T) {
	engine, store := createTestEngine(t)

	// Half a year of rising spending, one category, no budgets: fires
	// the dominant-category rule, the budget-setup rule, and the
	// rising-trend rule, in that generation order.
	for monthsAgo, amount := range map[int]float64{5: 100, 4: 100, 3: 100, 2: 300, 1: 300, 0: 300} {
		addMonthlyExpense(t, store, monthsAgo, amount)
	}

	recs, err := engine.Recommendations(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "Food & Dining dominates your spending", recs[0].Title)
	assert.Equal(t, "Set up budgets", recs[1].Title)
	assert.Equal(t, "Spending is trending up", recs[2].Title)
	// The high-priority trend advice stays last: rule order wins over
	// priority ranking.
	assert.Equal(t, model.SeverityHigh, recs[2].Priority)
}

func TestDetectOverspendingHighSpendingAlert(t *testing.T) {
	engine, store := createTestEngine(t)

	// No budgets configured; the current month dwarfs the recent
	// average, so only the heuristic pass can fire.
	addMonthlyExpense(t, store, 1, 200)
	addMonthlyExpense(t, store, 0, 900)

	alerts, err := engine.DetectOverspending(context.Background(), testUserID)
	require.NoError(t, err)

	alert := findAlert(alerts, "Food & Dining")
	require.NotNil(t, alert)
	assert.Equal(t, model.AlertHighSpending, alert.Kind)
	assert.Equal(t, model.SeverityLow, alert.Severity)
	assert.Zero(t, alert.Percentage)
}
