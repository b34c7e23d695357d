package model

// TrendDirection classifies how spending is moving month over month.
type TrendDirection string

// Trend constants.
const (
	TrendIncreasing       TrendDirection = "increasing"
	TrendDecreasing       TrendDirection = "decreasing"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// ConfidenceLevel grades how much history backs a forecast.
type ConfidenceLevel string

// Confidence constants.
const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Forecast is the weighted-trend prediction for the next month.
type Forecast struct {
	Confidence       ConfidenceLevel
	Trend            TrendDirection
	Message          string
	PredictedExpense float64
	PredictedIncome  float64
	PredictedSavings float64
}

// AlertKind identifies which overspending rule fired.
type AlertKind string

// Alert kinds.
const (
	AlertBudgetExceeded AlertKind = "budget_exceeded"
	AlertBudgetWarning  AlertKind = "budget_warning"
	AlertHighSpending   AlertKind = "high_spending"
)

// Severity grades alerts and recommendations.
type Severity string

// Severity levels.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Alert flags a category whose spending crossed a threshold.
// At most one alert is generated per category per query.
type Alert struct {
	Category   string
	Icon       string
	Kind       AlertKind
	Severity   Severity
	Message    string
	Percentage float64
}

// Recommendation is one piece of rule-based financial advice.
type Recommendation struct {
	Icon        string
	Title       string
	Description string
	Priority    Severity
}

// SpendingInsights compares the current month against the previous one.
type SpendingInsights struct {
	MostFrequentCategory *CategorySpend
	BiggestCategory      *CategorySpend
	CurrentMonth         Summary
	PreviousMonth        Summary
	ExpenseChange        float64
	IncomeChange         float64
	DailyAverage         float64
	CategoriesUsed       int
}
