package model

// Intent is the closed-set symbolic action a message is classified into.
type Intent string

// Intent constants, in dispatcher priority order.
const (
	IntentGreeting           Intent = "greeting"
	IntentHelp               Intent = "help"
	IntentThanks             Intent = "thanks"
	IntentAddExpense         Intent = "add_expense"
	IntentAddIncome          Intent = "add_income"
	IntentCheckBalance       Intent = "check_balance"
	IntentCheckSpending      Intent = "check_spending"
	IntentRecentTransactions Intent = "recent_transactions"
	IntentSetBudget          Intent = "set_budget"
	IntentUnrecognized       Intent = "unrecognized"
)

// ParsedCommand holds the entities extracted from a single message.
// Amount is only meaningful when HasAmount is true, and must be > 0 for
// the command to be actionable.
type ParsedCommand struct {
	Description  string
	CategoryHint string
	Intent       Intent
	Amount       float64
	HasAmount    bool
}

// Actionable reports whether the command carries enough information to
// mutate state.
func (c ParsedCommand) Actionable() bool {
	switch c.Intent {
	case IntentAddExpense, IntentAddIncome, IntentSetBudget:
		return c.HasAmount && c.Amount > 0
	default:
		return true
	}
}

// ClassificationResult is a confidence-scored category guess.
// Confidence 0.95 signals a deterministic keyword override; 0.0 signals
// no usable text or an unavailable model.
type ClassificationResult struct {
	Category   string
	Confidence float64
}

// TrainingExample is one labeled text used to fit the fallback classifier.
type TrainingExample struct {
	Text     string
	Category string
}

// Action identifies what a reply did, for UI callers.
type Action string

// Reply actions.
const (
	ActionExpenseAdded       Action = "expense_added"
	ActionIncomeAdded        Action = "income_added"
	ActionBalanceChecked     Action = "balance_checked"
	ActionSpendingChecked    Action = "spending_checked"
	ActionTransactionsListed Action = "transactions_listed"
	ActionBudgetSet          Action = "budget_set"
	ActionNeedCategory       Action = "need_category"
	ActionCategoryNotFound   Action = "category_not_found"
	ActionGreeting           Action = "greeting"
	ActionHelp               Action = "help"
	ActionThanks             Action = "thanks"
	ActionChat               Action = "chat"
	ActionFallback           Action = "fallback"
	ActionError              Action = "error"
)

// Reply is the assistant's answer to one message.
type Reply struct {
	Data     any
	Response string
	Action   Action
}
