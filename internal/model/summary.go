package model

// Summary aggregates income and expense over a date range.
type Summary struct {
	Income  float64
	Expense float64
	Balance float64
}

// MonthlyTrend is one month's totals. Month uses the "2006-01" layout.
type MonthlyTrend struct {
	Month   string
	Income  float64
	Expense float64
}

// CategorySpend is a per-category aggregate over a date range.
type CategorySpend struct {
	Name       string
	Icon       string
	CategoryID int
	Count      int
	Total      float64
}
