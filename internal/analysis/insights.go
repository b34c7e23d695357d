package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/moneypenny/penny/internal/model"
)

// SpendingInsights compares the current month against the previous
// month and surfaces the standout categories.
func (e *Engine) SpendingInsights(ctx context.Context, userID int) (model.SpendingInsights, error) {
	now := time.Now()
	curStart := monthStart(now)
	prevStart := curStart.AddDate(0, -1, 0)
	prevEnd := curStart.Add(-time.Second)

	current, err := e.storage.GetSummary(ctx, userID, &curStart, nil)
	if err != nil {
		return model.SpendingInsights{}, fmt.Errorf("failed to load current month summary: %w", err)
	}

	previous, err := e.storage.GetSummary(ctx, userID, &prevStart, &prevEnd)
	if err != nil {
		return model.SpendingInsights{}, fmt.Errorf("failed to load previous month summary: %w", err)
	}

	breakdown, err := e.storage.GetCategoryBreakdown(ctx, userID, &curStart, nil, model.TypeExpense)
	if err != nil {
		return model.SpendingInsights{}, fmt.Errorf("failed to load category breakdown: %w", err)
	}

	insights := model.SpendingInsights{
		CurrentMonth:   current,
		PreviousMonth:  previous,
		ExpenseChange:  percentChange(previous.Expense, current.Expense),
		IncomeChange:   percentChange(previous.Income, current.Income),
		DailyAverage:   current.Expense / float64(now.Day()),
		CategoriesUsed: len(breakdown),
	}

	if len(breakdown) > 0 {
		biggest := breakdown[0]
		insights.BiggestCategory = &biggest

		sorted := make([]model.CategorySpend, len(breakdown))
		copy(sorted, breakdown)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
		frequent := sorted[0]
		insights.MostFrequentCategory = &frequent
	}

	return insights, nil
}

// percentChange returns the relative change from old to new in percent.
// A zero baseline yields 0 rather than a division blowup.
func percentChange(old, new float64) float64 {
	if old == 0 {
		return 0
	}
	return (new - old) / old * 100
}
