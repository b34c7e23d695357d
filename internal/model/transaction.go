// Package model defines the core domain models used throughout the application.
package model

import "time"

// TransactionType indicates whether a transaction is an expense or income.
type TransactionType string

const (
	// TypeExpense represents money leaving the account.
	TypeExpense TransactionType = "expense"
	// TypeIncome represents money entering the account.
	TypeIncome TransactionType = "income"
)

// Transaction represents a single recorded financial transaction.
type Transaction struct {
	Date         time.Time
	CreatedAt    time.Time
	Description  string
	CategoryName string // Joined from categories for display
	CategoryIcon string
	Type         TransactionType
	ID           int64
	CategoryID   int
	UserID       int
	Amount       float64
}
