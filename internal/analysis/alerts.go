package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/moneypenny/penny/internal/model"
)

const (
	budgetExceededPct  = 100
	budgetWarningPct   = 80
	highSpendShare     = 0.5
	highSpendLookbackM = 3
)

// DetectOverspending runs the alert rules for the current month. Budget
// rules fire first, then the high-spending heuristic; each category
// yields at most one alert.
func (e *Engine) DetectOverspending(ctx context.Context, userID int) ([]model.Alert, error) {
	var alerts []model.Alert
	seen := make(map[string]struct{})

	statuses, err := e.storage.GetBudgetStatus(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load budget status: %w", err)
	}

	for _, status := range statuses {
		switch {
		case status.Percentage >= budgetExceededPct:
			alerts = append(alerts, model.Alert{
				Category:   status.Name,
				Icon:       status.Icon,
				Kind:       model.AlertBudgetExceeded,
				Severity:   model.SeverityHigh,
				Percentage: status.Percentage,
				Message: fmt.Sprintf("%s %s budget exceeded: spent ₹%.2f of ₹%.2f (%.0f%%)",
					status.Icon, status.Name, status.Spent, status.MonthlyLimit, status.Percentage),
			})
			seen[status.Name] = struct{}{}
		case status.Percentage >= budgetWarningPct:
			alerts = append(alerts, model.Alert{
				Category:   status.Name,
				Icon:       status.Icon,
				Kind:       model.AlertBudgetWarning,
				Severity:   model.SeverityMedium,
				Percentage: status.Percentage,
				Message: fmt.Sprintf("%s %s budget at %.0f%%: ₹%.2f left of ₹%.2f",
					status.Icon, status.Name, status.Percentage, status.Remaining, status.MonthlyLimit),
			})
			seen[status.Name] = struct{}{}
		}
	}

	highSpend, err := e.detectHighSpending(ctx, userID, seen)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, highSpend...)

	return alerts, nil
}

// detectHighSpending flags categories whose current-month total exceeds
// half the average monthly expense of the recent past. Categories that
// already produced a budget alert are skipped.
func (e *Engine) detectHighSpending(ctx context.Context, userID int, seen map[string]struct{}) ([]model.Alert, error) {
	trends, err := e.storage.GetMonthlyTrends(ctx, userID, highSpendLookbackM)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly trends: %w", err)
	}
	if len(trends) == 0 {
		return nil, nil
	}

	var total float64
	for _, t := range trends {
		total += t.Expense
	}
	avgMonthly := total / float64(len(trends))
	if avgMonthly <= 0 {
		return nil, nil
	}

	start := monthStart(time.Now())
	breakdown, err := e.storage.GetCategoryBreakdown(ctx, userID, &start, nil, model.TypeExpense)
	if err != nil {
		return nil, fmt.Errorf("failed to load category breakdown: %w", err)
	}

	var alerts []model.Alert
	for _, cat := range breakdown {
		if _, dup := seen[cat.Name]; dup {
			continue
		}
		if cat.Total <= avgMonthly*highSpendShare {
			continue
		}
		// Heuristic alerts carry no budget percentage.
		alerts = append(alerts, model.Alert{
			Category: cat.Name,
			Icon:     cat.Icon,
			Kind:     model.AlertHighSpending,
			Severity: model.SeverityLow,
			Message: fmt.Sprintf("%s %s spending is unusually high this month: ₹%.2f",
				cat.Icon, cat.Name, cat.Total),
		})
		seen[cat.Name] = struct{}{}
	}

	return alerts, nil
}

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
