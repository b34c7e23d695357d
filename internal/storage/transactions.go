package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/moneypenny/penny/internal/common"
	"github.com/moneypenny/penny/internal/model"
	"github.com/moneypenny/penny/internal/service"
)

// AddTransaction persists a transaction and returns its ID.
func (s *SQLiteStorage) AddTransaction(ctx context.Context, txn model.Transaction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransaction(txn); err != nil {
		return 0, err
	}

	date := txn.Date
	if date.IsZero() {
		date = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (amount, description, category_id, transaction_type, date, user_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		txn.Amount, txn.Description, txn.CategoryID, txn.Type, date.Format("2006-01-02"), txn.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction ID: %w", err)
	}

	slog.Debug("added transaction",
		"id", id,
		"type", txn.Type,
		"amount", txn.Amount,
		"category_id", txn.CategoryID)
	return id, nil
}

// GetTransactions returns a user's transactions, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, userID int, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT t.id, t.amount, t.description, t.category_id, t.transaction_type,
		       t.date, t.user_id, t.created_at, c.name, COALESCE(c.icon, '')
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ?`
	args := []any{userID}

	if filter.StartDate != nil {
		query += ` AND t.date >= ?`
		args = append(args, filter.StartDate.Format("2006-01-02"))
	}
	if filter.EndDate != nil {
		query += ` AND t.date <= ?`
		args = append(args, filter.EndDate.Format("2006-01-02"))
	}
	if filter.Type != "" {
		query += ` AND t.transaction_type = ?`
		args = append(args, filter.Type)
	}
	if filter.CategoryID > 0 {
		query += ` AND t.category_id = ?`
		args = append(args, filter.CategoryID)
	}

	query += ` ORDER BY t.date DESC, t.id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// GetTransactionByID returns one transaction, or nil if absent.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id int64, userID int) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.amount, t.description, t.category_id, t.transaction_type,
		       t.date, t.user_id, t.created_at, c.name, COALESCE(c.icon, '')
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.id = ? AND t.user_id = ?`, id, userID)

	txn, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// UpdateTransaction rewrites the mutable fields of an existing transaction.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = ?, description = ?, category_id = ?, transaction_type = ?, date = ?
		WHERE id = ? AND user_id = ?`,
		txn.Amount, txn.Description, txn.CategoryID, txn.Type,
		txn.Date.Format("2006-01-02"), txn.ID, txn.UserID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %d: %w", txn.ID, common.ErrNotFound)
	}

	return nil
}

// DeleteTransaction removes a transaction owned by the user.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64, userID int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}

	slog.Debug("deleted transaction", "id", id, "user_id", userID)
	return nil
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var txn model.Transaction
	var description sql.NullString
	var date string
	if err := row.Scan(&txn.ID, &txn.Amount, &description, &txn.CategoryID, &txn.Type,
		&date, &txn.UserID, &txn.CreatedAt, &txn.CategoryName, &txn.CategoryIcon); err != nil {
		if err == sql.ErrNoRows {
			return txn, err
		}
		return txn, fmt.Errorf("failed to scan transaction: %w", err)
	}
	txn.Description = description.String

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		// Older rows may carry a full timestamp
		parsed, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return txn, fmt.Errorf("failed to parse transaction date %q: %w", date, err)
		}
	}
	txn.Date = parsed

	return txn, nil
}
