package analysis

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneypenny/penny/internal/model"
	"github.com/moneypenny/penny/internal/storage"
)

const testUserID = 1

func createTestEngine(t *testing.T) (*Engine, *storage.SQLiteStorage) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SeedCategories(ctx, testUserID))

	return NewEngine(store), store
}

// addMonthlyExpense records one expense per entry, walking back from
// (monthsAgo) months before now.
func addMonthlyExpense(t *testing.T, store *storage.SQLiteStorage, monthsAgo int, amount float64) {
	t.Helper()
	ctx := context.Background()

	cat, err := store.GetCategoryByName(ctx, "Food & Dining", testUserID)
	require.NoError(t, err)
	require.NotNil(t, cat)

	date := time.Now().AddDate(0, -monthsAgo, 0)
	// Pin to mid-month so AddDate never rolls into a neighboring month.
	date = time.Date(date.Year(), date.Month(), 15, 0, 0, 0, 0, time.UTC)

	_, err = store.AddTransaction(ctx, model.Transaction{
		Amount:      amount,
		Description: "monthly spend",
		CategoryID:  cat.ID,
		Type:        model.TypeExpense,
		UserID:      testUserID,
		Date:        date,
	})
	require.NoError(t, err)
}

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		want   float64
	}{
		{
			name:   "three points uses mid-ramp weights",
			series: []float64{100, 200, 300},
			// weights 2, 2.5, 3 normalized: (200+500+900)/7.5
			want: 213.3333,
		},
		{
			name:   "two points favor the newer one",
			series: []float64{100, 200},
			// weights 2, 2.5 normalized: (200+500)/4.5
			want: 155.5555,
		},
		{
			name:   "six points uses full ramp",
			series: []float64{100, 100, 100, 100, 100, 100},
			want:   100,
		},
		{
			name:   "single point",
			series: []float64{42},
			want:   42,
		},
		{
			name:   "empty",
			series: nil,
			want:   0,
		},
		{
			name: "more than six points drops the oldest",
			// The leading 9999 must not influence the result.
			series: []float64{9999, 100, 100, 100, 100, 100, 100},
			want:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, weightedAverage(tt.series), 0.001)
		})
	}
}

func TestDetectTrend(t *testing.T) {
	tests := []struct {
		name     string
		expenses []float64
		want     model.TrendDirection
	}{
		{
			name:     "exactly 10 percent up is stable",
			expenses: []float64{100, 100, 100, 110, 110, 110},
			want:     model.TrendStable,
		},
		{
			name:     "just over 10 percent up is increasing",
			expenses: []float64{100, 100, 100, 111, 111, 111},
			want:     model.TrendIncreasing,
		},
		{
			name:     "exactly 10 percent down is stable",
			expenses: []float64{100, 100, 100, 90, 90, 90},
			want:     model.TrendStable,
		},
		{
			name:     "just under 90 percent is decreasing",
			expenses: []float64{100, 100, 100, 89, 89, 89},
			want:     model.TrendDecreasing,
		},
		{
			name:     "six months rising",
			expenses: []float64{100, 110, 120, 200, 220, 240},
			want:     model.TrendIncreasing,
		},
		{
			name:     "four rising points overlap into stable",
			expenses: []float64{100, 100, 120, 130},
			want:     model.TrendStable,
		},
		{
			name:     "three points always read stable",
			expenses: []float64{100, 200, 400},
			want:     model.TrendStable,
		},
		{
			name:     "two points are insufficient",
			expenses: []float64{100, 300},
			want:     model.TrendInsufficientData,
		},
		{
			name:     "one point is insufficient",
			expenses: []float64{100},
			want:     model.TrendInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectTrend(tt.expenses))
		})
	}
}

func TestConfidenceFor(t *testing.T) {
	assert.Equal(t, model.ConfidenceLow, confidenceFor(2))
	assert.Equal(t, model.ConfidenceMedium, confidenceFor(3))
	assert.Equal(t, model.ConfidenceMedium, confidenceFor(4))
	assert.Equal(t, model.ConfidenceHigh, confidenceFor(5))
	assert.Equal(t, model.ConfidenceHigh, confidenceFor(6))
}

func TestForecastInsufficientData(t *testing.T) {
	engine, store := createTestEngine(t)

	addMonthlyExpense(t, store, 0, 500)

	forecast, err := engine.Forecast(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, model.TrendInsufficientData, forecast.Trend)
	assert.Equal(t, model.ConfidenceLow, forecast.Confidence)
	assert.Zero(t, forecast.PredictedExpense)
	assert.NotEmpty(t, forecast.Message)
}

func TestForecastWeightsRecentMonths(t *testing.T) {
	engine, store := createTestEngine(t)

	addMonthlyExpense(t, store, 2, 100)
	addMonthlyExpense(t, store, 1, 200)
	addMonthlyExpense(t, store, 0, 300)

	forecast, err := engine.Forecast(context.Background(), testUserID)
	require.NoError(t, err)

	assert.InDelta(t, 213.3333, forecast.PredictedExpense, 0.001)
	assert.Equal(t, model.ConfidenceMedium, forecast.Confidence)
	// Three points: both trend windows cover the whole series.
	assert.Equal(t, model.TrendStable, forecast.Trend)
	assert.InDelta(t, -213.3333, forecast.PredictedSavings, 0.001)
}

func TestForecastRisingHalfYear(t *testing.T) {
	engine, store := createTestEngine(t)

	for monthsAgo, amount := range map[int]float64{5: 100, 4: 100, 3: 100, 2: 300, 1: 300, 0: 300} {
		addMonthlyExpense(t, store, monthsAgo, amount)
	}

	forecast, err := engine.Forecast(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, model.TrendIncreasing, forecast.Trend)
	assert.Equal(t, model.ConfidenceHigh, forecast.Confidence)
	assert.Greater(t, forecast.PredictedExpense, 200.0)
}

func TestPercentChange(t *testing.T) {
	assert.InDelta(t, 50.0, percentChange(100, 150), 0.001)
	assert.InDelta(t, -25.0, percentChange(100, 75), 0.001)
	assert.Zero(t, percentChange(0, 500))
}
