package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/moneypenny/penny/internal/model"
)

const (
	lowSavingsRatio    = 0.10
	goodSavingsRatio   = 0.20
	dominantCatShare   = 0.40
	emergencyFundMonth = 6
)

// Recommendations evaluates the advice rules against the current
// month's activity. Rules are independent and append in a fixed order;
// the result preserves that order rather than re-ranking by priority.
func (e *Engine) Recommendations(ctx context.Context, userID int) ([]model.Recommendation, error) {
	start := monthStart(time.Now())
	summary, err := e.storage.GetSummary(ctx, userID, &start, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly summary: %w", err)
	}

	var recs []model.Recommendation

	// Savings ratio rules apply only when there is income to save from.
	if summary.Income > 0 {
		ratio := (summary.Income - summary.Expense) / summary.Income
		switch {
		case ratio < lowSavingsRatio:
			recs = append(recs, model.Recommendation{
				Icon:     "💰",
				Title:    "Boost your savings rate",
				Priority: model.SeverityHigh,
				Description: fmt.Sprintf("You're saving %.0f%% of your income this month. Aim for at least 10%% by cutting one discretionary category.",
					ratio*100),
			})
		case ratio >= goodSavingsRatio:
			recs = append(recs, model.Recommendation{
				Icon:     "🌟",
				Title:    "Great savings rate",
				Priority: model.SeverityLow,
				Description: fmt.Sprintf("You're saving %.0f%% of your income this month. Keep it up!",
					ratio*100),
			})
		}
	}

	if rec := e.dominantCategoryRule(ctx, userID, start, summary.Expense); rec != nil {
		recs = append(recs, *rec)
	}

	budgets, err := e.storage.GetBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	if len(budgets) == 0 {
		recs = append(recs, model.Recommendation{
			Icon:        "🎯",
			Title:       "Set up budgets",
			Priority:    model.SeverityMedium,
			Description: "You have no budgets yet. Setting monthly limits per category makes overspending visible before it happens.",
		})
	}

	forecast, err := e.Forecast(ctx, userID)
	if err != nil {
		return nil, err
	}
	if forecast.Trend == model.TrendIncreasing {
		recs = append(recs, model.Recommendation{
			Icon:     "📈",
			Title:    "Spending is trending up",
			Priority: model.SeverityHigh,
			Description: fmt.Sprintf("Your expenses have grown over recent months and are projected around ₹%.2f next month. Review your recurring costs.",
				forecast.PredictedExpense),
		})
	}

	allTime, err := e.storage.GetSummary(ctx, userID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load overall summary: %w", err)
	}
	if allTime.Balance > 0 {
		recs = append(recs, model.Recommendation{
			Icon:     "🏦",
			Title:    "Build an emergency fund",
			Priority: model.SeverityLow,
			Description: fmt.Sprintf("You have a positive balance of ₹%.2f. Consider parking %d months of expenses in an emergency fund.",
				allTime.Balance, emergencyFundMonth),
		})
	}

	return recs, nil
}

// dominantCategoryRule flags a single category absorbing an outsized
// share of the month's expenses. Returns nil when no category crosses
// the threshold or the breakdown cannot be loaded.
func (e *Engine) dominantCategoryRule(ctx context.Context, userID int, start time.Time, totalExpense float64) *model.Recommendation {
	if totalExpense <= 0 {
		return nil
	}

	breakdown, err := e.storage.GetCategoryBreakdown(ctx, userID, &start, nil, model.TypeExpense)
	if err != nil || len(breakdown) == 0 {
		return nil
	}

	top := breakdown[0]
	share := top.Total / totalExpense
	if share <= dominantCatShare {
		return nil
	}

	return &model.Recommendation{
		Icon:     top.Icon,
		Title:    fmt.Sprintf("%s dominates your spending", top.Name),
		Priority: model.SeverityMedium,
		Description: fmt.Sprintf("%.0f%% of this month's expenses (₹%.2f) went to %s. Check whether that matches your priorities.",
			share*100, top.Total, top.Name),
	}
}
