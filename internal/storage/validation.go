package storage

import (
	"context"
	"fmt"

	"github.com/moneypenny/penny/internal/model"
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	return nil
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	return nil
}

func validateUserID(userID int) error {
	if userID <= 0 {
		return fmt.Errorf("userID must be positive, got %d", userID)
	}
	return nil
}

func validateTransaction(txn model.Transaction) error {
	if txn.Amount <= 0 {
		return fmt.Errorf("transaction amount must be positive, got %.2f", txn.Amount)
	}
	if txn.Type != model.TypeExpense && txn.Type != model.TypeIncome {
		return fmt.Errorf("invalid transaction type: %q", txn.Type)
	}
	if txn.CategoryID <= 0 {
		return fmt.Errorf("transaction category is required")
	}
	return validateUserID(txn.UserID)
}
