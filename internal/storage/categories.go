package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/moneypenny/penny/internal/model"
)

// defaultCategories are seeded for a user the first time their category
// table is empty. Order matters: listing order is user-visible and drives
// first-match category lookups.
var defaultCategories = []model.Category{
	{Name: "Food & Dining", Type: model.CategoryTypeExpense, Icon: "🍔", Color: "#FF6B6B"},
	{Name: "Transport", Type: model.CategoryTypeExpense, Icon: "🚗", Color: "#4ECDC4"},
	{Name: "Entertainment", Type: model.CategoryTypeExpense, Icon: "🎬", Color: "#45B7D1"},
	{Name: "Utilities", Type: model.CategoryTypeExpense, Icon: "💡", Color: "#96CEB4"},
	{Name: "Shopping", Type: model.CategoryTypeExpense, Icon: "🛍️", Color: "#FFEAA7"},
	{Name: "Healthcare", Type: model.CategoryTypeExpense, Icon: "🏥", Color: "#DDA0DD"},
	{Name: "Education", Type: model.CategoryTypeExpense, Icon: "📚", Color: "#98D8C8"},
	{Name: "Savings", Type: model.CategoryTypeExpense, Icon: "💰", Color: "#F7DC6F"},
	{Name: "Other", Type: model.CategoryTypeExpense, Icon: "📦", Color: "#BDC3C7"},
	{Name: "Salary", Type: model.CategoryTypeIncome, Icon: "💵", Color: "#2ECC71"},
	{Name: "Freelance", Type: model.CategoryTypeIncome, Icon: "💻", Color: "#3498DB"},
	{Name: "Investment", Type: model.CategoryTypeIncome, Icon: "📈", Color: "#9B59B6"},
	{Name: "Gift", Type: model.CategoryTypeIncome, Icon: "🎁", Color: "#E74C3C"},
	{Name: "Other Income", Type: model.CategoryTypeIncome, Icon: "💸", Color: "#1ABC9C"},
}

// SeedCategories inserts the default category set for a user whose
// category table is still empty.
func (s *SQLiteStorage) SeedCategories(ctx context.Context, userID int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE user_id = ?`, userID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, cat := range defaultCategories {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO categories (name, type, icon, color, user_id) VALUES (?, ?, ?, ?, ?)`,
			cat.Name, cat.Type, cat.Icon, cat.Color, userID); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}

	slog.Info("seeded default categories", "user_id", userID, "count", len(defaultCategories))
	return nil
}

// GetCategories returns a user's categories, optionally filtered by type.
// Pass an empty type to return all. Order is stable (insertion order).
func (s *SQLiteStorage) GetCategories(ctx context.Context, userID int, categoryType model.CategoryType) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, type, icon, color, user_id, created_at
		FROM categories
		WHERE user_id = ?`
	args := []any{userID}

	if categoryType != "" {
		query += ` AND type = ?`
		args = append(args, categoryType)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "user_id", userID, "count", len(categories))
	return categories, nil
}

// GetCategoryByName returns a category by its exact name, or nil if absent.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string, userID int) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, icon, color, user_id, created_at
		FROM categories
		WHERE name = ? AND user_id = ?`, name, userID)

	cat, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, err
	}

	return &cat, nil
}

// AddCategory creates a new category and returns its ID.
func (s *SQLiteStorage) AddCategory(ctx context.Context, category model.Category) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(category.Name, "name"); err != nil {
		return 0, err
	}
	if err := validateUserID(category.UserID); err != nil {
		return 0, err
	}

	if category.Icon == "" {
		category.Icon = "📦"
	}
	if category.Color == "" {
		category.Color = "#BDC3C7"
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, type, icon, color, user_id) VALUES (?, ?, ?, ?, ?)`,
		category.Name, category.Type, category.Icon, category.Color, category.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get category ID: %w", err)
	}

	slog.Info("created category", "name", category.Name, "id", id)
	return int(id), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (model.Category, error) {
	var cat model.Category
	var icon, color sql.NullString
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Type, &icon, &color, &cat.UserID, &cat.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return cat, err
		}
		return cat, fmt.Errorf("failed to scan category: %w", err)
	}
	cat.Icon = icon.String
	cat.Color = color.String
	return cat, nil
}
