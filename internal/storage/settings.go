package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// GetSetting returns a per-user setting value, or "" when unset.
func (s *SQLiteStorage) GetSetting(ctx context.Context, key string, userID int) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(key, "key"); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ? AND user_id = ?`, key, userID).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting %q: %w", key, err)
	}

	return value, nil
}

// SetSetting upserts a per-user setting value.
func (s *SQLiteStorage) SetSetting(ctx context.Context, key, value string, userID int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, user_id)
		VALUES (?, ?, ?)
		ON CONFLICT(key, user_id) DO UPDATE SET value = excluded.value`,
		key, value, userID)
	if err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}

	return nil
}
