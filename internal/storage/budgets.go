package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moneypenny/penny/internal/model"
)

// SetBudget upserts the monthly limit for a category.
func (s *SQLiteStorage) SetBudget(ctx context.Context, categoryID, userID int, monthlyLimit float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}
	if categoryID <= 0 {
		return fmt.Errorf("categoryID must be positive, got %d", categoryID)
	}
	if monthlyLimit <= 0 {
		return fmt.Errorf("monthly limit must be positive, got %.2f", monthlyLimit)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (category_id, user_id, monthly_limit)
		VALUES (?, ?, ?)
		ON CONFLICT(category_id, user_id) DO UPDATE SET monthly_limit = excluded.monthly_limit`,
		categoryID, userID, monthlyLimit)
	if err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}

	slog.Info("budget set", "category_id", categoryID, "user_id", userID, "limit", monthlyLimit)
	return nil
}

// GetBudgets returns all configured budgets for a user.
func (s *SQLiteStorage) GetBudgets(ctx context.Context, userID int) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.category_id, b.user_id, b.monthly_limit, c.name, COALESCE(c.icon, '')
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = ?
		ORDER BY c.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.ID, &b.CategoryID, &b.UserID, &b.MonthlyLimit,
			&b.CategoryName, &b.CategoryIcon); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

// GetBudgetStatus returns spent-vs-limit for every budgeted category in
// a month ("2006-01" key; empty means the current month).
func (s *SQLiteStorage) GetBudgetStatus(ctx context.Context, userID int, month string) ([]model.BudgetStatus, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, COALESCE(c.icon, ''), b.monthly_limit,
			COALESCE((
				SELECT SUM(t.amount) FROM transactions t
				WHERE t.category_id = b.category_id
				  AND t.user_id = b.user_id
				  AND t.transaction_type = 'expense'
				  AND strftime('%Y-%m', t.date) = ?
			), 0) AS spent
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = ?
		ORDER BY c.id`, month, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget status: %w", err)
	}
	defer rows.Close()

	var statuses []model.BudgetStatus
	for rows.Next() {
		var st model.BudgetStatus
		if err := rows.Scan(&st.CategoryID, &st.Name, &st.Icon, &st.MonthlyLimit, &st.Spent); err != nil {
			return nil, fmt.Errorf("failed to scan budget status: %w", err)
		}

		st.Remaining = st.MonthlyLimit - st.Spent
		if st.MonthlyLimit > 0 {
			st.Percentage = st.Spent / st.MonthlyLimit * 100
		}
		statuses = append(statuses, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget status: %w", err)
	}

	return statuses, nil
}
