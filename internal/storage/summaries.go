package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moneypenny/penny/internal/model"
)

// GetSummary returns income, expense, and balance totals for a period.
// Nil bounds leave that side of the window open.
func (s *SQLiteStorage) GetSummary(ctx context.Context, userID int, start, end *time.Time) (model.Summary, error) {
	var summary model.Summary

	if err := validateContext(ctx); err != nil {
		return summary, err
	}
	if err := validateUserID(userID); err != nil {
		return summary, err
	}

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = ?`
	args := []any{userID}

	if start != nil {
		query += ` AND date >= ?`
		args = append(args, start.Format("2006-01-02"))
	}
	if end != nil {
		query += ` AND date <= ?`
		args = append(args, end.Format("2006-01-02"))
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&summary.Income, &summary.Expense); err != nil {
		return summary, fmt.Errorf("failed to query summary: %w", err)
	}

	summary.Balance = summary.Income - summary.Expense
	return summary, nil
}

// GetCategoryBreakdown returns per-category totals for a period, ordered
// by total descending. Only categories with at least one matching
// transaction appear.
func (s *SQLiteStorage) GetCategoryBreakdown(ctx context.Context, userID int, start, end *time.Time, txType model.TransactionType) ([]model.CategorySpend, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	if txType == "" {
		txType = model.TypeExpense
	}

	query := `
		SELECT c.id, c.name, COALESCE(c.icon, ''), SUM(t.amount), COUNT(*)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ? AND t.transaction_type = ?`
	args := []any{userID, txType}

	if start != nil {
		query += ` AND t.date >= ?`
		args = append(args, start.Format("2006-01-02"))
	}
	if end != nil {
		query += ` AND t.date <= ?`
		args = append(args, end.Format("2006-01-02"))
	}

	query += `
		GROUP BY c.id, c.name, c.icon
		ORDER BY SUM(t.amount) DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []model.CategorySpend
	for rows.Next() {
		var item model.CategorySpend
		if err := rows.Scan(&item.CategoryID, &item.Name, &item.Icon, &item.Total, &item.Count); err != nil {
			return nil, fmt.Errorf("failed to scan breakdown item: %w", err)
		}
		breakdown = append(breakdown, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating breakdown: %w", err)
	}

	slog.Debug("retrieved category breakdown", "user_id", userID, "categories", len(breakdown))
	return breakdown, nil
}

// GetMonthlyTrends returns per-month income/expense totals for the
// trailing N months, oldest first.
func (s *SQLiteStorage) GetMonthlyTrends(ctx context.Context, userID, months int) ([]model.MonthlyTrend, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if months <= 0 {
		months = 12
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m', date) AS month,
			COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = ?
		GROUP BY month
		ORDER BY month DESC
		LIMIT ?`, userID, months)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly trends: %w", err)
	}
	defer rows.Close()

	var trends []model.MonthlyTrend
	for rows.Next() {
		var t model.MonthlyTrend
		if err := rows.Scan(&t.Month, &t.Income, &t.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan monthly trend: %w", err)
		}
		trends = append(trends, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trends: %w", err)
	}

	// Callers expect chronological order
	for i, j := 0, len(trends)-1; i < j; i, j = i+1, j-1 {
		trends[i], trends[j] = trends[j], trends[i]
	}

	return trends, nil
}
