// Package analysis derives forecasts, overspending alerts, spending
// insights, and rule-based recommendations from stored transaction
// history. Everything here is deterministic arithmetic over the
// storage layer; no generative model is involved.
package analysis

import (
	"context"
	"fmt"

	"github.com/moneypenny/penny/internal/model"
	"github.com/moneypenny/penny/internal/service"
)

// Engine answers analytical queries against a storage backend.
type Engine struct {
	storage service.Storage
}

// NewEngine creates an analysis engine over the given storage.
func NewEngine(storage service.Storage) *Engine {
	return &Engine{storage: storage}
}

// weightRamp is the full weight sequence for six months of history,
// oldest first. Shorter histories use a centered slice of the ramp
// (three points map to 2, 2.5, 3) so the most recent month always
// carries the largest weight of its slice.
var weightRamp = []float64{1, 1.5, 2, 2.5, 3, 3.5}

// trendWindow is how many points each trend comparison window holds.
const trendWindow = 3

// trendMonths is how many months of history feed the forecast.
const trendMonths = 6

// Forecast predicts next month's income, expense, and savings from a
// recency-weighted average of up to six months of history.
func (e *Engine) Forecast(ctx context.Context, userID int) (model.Forecast, error) {
	trends, err := e.storage.GetMonthlyTrends(ctx, userID, trendMonths)
	if err != nil {
		return model.Forecast{}, fmt.Errorf("failed to load monthly trends: %w", err)
	}

	if len(trends) < 2 {
		return model.Forecast{
			Trend:      model.TrendInsufficientData,
			Confidence: model.ConfidenceLow,
			Message:    "Not enough history to forecast yet. Keep logging transactions for at least two months.",
		}, nil
	}

	expenses := make([]float64, len(trends))
	incomes := make([]float64, len(trends))
	for i, t := range trends {
		expenses[i] = t.Expense
		incomes[i] = t.Income
	}

	predictedExpense := weightedAverage(expenses)
	predictedIncome := weightedAverage(incomes)
	trend := detectTrend(expenses)

	forecast := model.Forecast{
		PredictedExpense: predictedExpense,
		PredictedIncome:  predictedIncome,
		PredictedSavings: predictedIncome - predictedExpense,
		Trend:            trend,
		Confidence:       confidenceFor(len(trends)),
		Message:          forecastMessage(trend, predictedExpense),
	}
	return forecast, nil
}

// weightedAverage computes the recency-weighted mean of the series.
// Shorter series trim the ramp evenly from both ends, so three points
// are weighted 2, 2.5, 3; longer series keep only the newest six.
func weightedAverage(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}

	weights := weightRamp
	if len(series) < len(weights) {
		start := (len(weights) - len(series) + 1) / 2
		weights = weights[start : start+len(series)]
	} else if len(series) > len(weights) {
		series = series[len(series)-len(weights):]
	}

	var sum, weightSum float64
	for i, v := range series {
		sum += v * weights[i]
		weightSum += weights[i]
	}
	return sum / weightSum
}

// detectTrend compares the mean of the newest three months against the
// mean of the oldest three. The windows overlap when fewer than six
// points exist; with exactly three they coincide, which reads as
// stable. Movement within ±10% counts as stable either way.
func detectTrend(expenses []float64) model.TrendDirection {
	if len(expenses) < trendWindow {
		return model.TrendInsufficientData
	}

	older := mean(expenses[:trendWindow])
	recent := mean(expenses[len(expenses)-trendWindow:])

	switch {
	case recent > older*1.1:
		return model.TrendIncreasing
	case recent < older*0.9:
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}

func mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

func confidenceFor(points int) model.ConfidenceLevel {
	switch {
	case points >= 5:
		return model.ConfidenceHigh
	case points >= 3:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

func forecastMessage(trend model.TrendDirection, predictedExpense float64) string {
	switch trend {
	case model.TrendIncreasing:
		return fmt.Sprintf("Your spending is trending up. Expect around ₹%.2f in expenses next month; consider trimming non-essentials.", predictedExpense)
	case model.TrendDecreasing:
		return fmt.Sprintf("Your spending is trending down, nice work. Expect around ₹%.2f in expenses next month.", predictedExpense)
	case model.TrendStable:
		return fmt.Sprintf("Your spending is steady. Expect around ₹%.2f in expenses next month.", predictedExpense)
	default:
		return "Log a few more months of transactions for a sharper trend read."
	}
}
