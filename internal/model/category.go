package model

import "time"

// CategoryType indicates whether a category is for income or expense transactions.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category owned by a user.
type Category struct {
	CreatedAt time.Time
	Name      string
	Icon      string
	Color     string
	Type      CategoryType
	ID        int
	UserID    int
}
