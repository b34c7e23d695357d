package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/moneypenny/penny/internal/model"
)

// QuickInsights produces a one-line health check of the current month,
// suitable for showing at the top of a chat session.
func (a *Assistant) QuickInsights(ctx context.Context, userID int) (string, error) {
	month := currentMonthStart()
	summary, err := a.storage.GetSummary(ctx, userID, &month, nil)
	if err != nil {
		return "", fmt.Errorf("failed to load monthly summary: %w", err)
	}

	var notes []string

	if summary.Balance < 0 {
		notes = append(notes, fmt.Sprintf("⚠️ You're ₹%.2f in the red this month", -summary.Balance))
	} else if summary.Income > 0 && summary.Expense >= summary.Income*0.8 {
		notes = append(notes, fmt.Sprintf("⚠️ You've spent %.0f%% of this month's income", summary.Expense/summary.Income*100))
	}

	breakdown, err := a.storage.GetCategoryBreakdown(ctx, userID, &month, nil, model.TypeExpense)
	if err != nil {
		return "", fmt.Errorf("failed to load category breakdown: %w", err)
	}
	if len(breakdown) > 0 && summary.Expense > 0 {
		top := breakdown[0]
		notes = append(notes, fmt.Sprintf("%s %s is your top category at ₹%.2f", top.Icon, top.Name, top.Total))
	}

	if len(notes) == 0 {
		return "✅ All looks good this month.", nil
	}
	return strings.Join(notes, " | "), nil
}
