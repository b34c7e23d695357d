package model

// Budget is a monthly spending limit for one category.
type Budget struct {
	CategoryName string // Joined from categories for display
	CategoryIcon string
	ID           int
	CategoryID   int
	UserID       int
	MonthlyLimit float64
}

// BudgetStatus is a budget joined with the month's actual spending.
type BudgetStatus struct {
	Name         string
	Icon         string
	CategoryID   int
	MonthlyLimit float64
	Spent        float64
	Remaining    float64
	Percentage   float64
}
