package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moneypenny/penny/internal/model"
)

func TestExtractExpense(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		amount   float64
		desc     string
	}{
		{"spent on", "spent 500 on groceries", 500, "groceries"},
		{"paid with currency", "paid ₹120.50 for coffee", 120.50, "coffee"},
		{"add expense", "add expense of 300 for fuel", 300, "fuel"},
		{"amount first", "500 on lunch with friends", 500, "lunch with friends"},
		{"no description", "spent 250", 250, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Extract(tt.text, model.IntentAddExpense)
			assert.True(t, cmd.HasAmount)
			assert.Equal(t, tt.amount, cmd.Amount)
			assert.Equal(t, tt.desc, cmd.Description)
			assert.Equal(t, model.IntentAddExpense, cmd.Intent)
		})
	}
}

func TestExtractIncome(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		amount float64
		desc   string
	}{
		{"received from", "received 20000 from salary", 20000, "salary"},
		{"salary of", "salary of 45000", 45000, "Income"},
		{"got as", "got 1500 as freelance payment", 1500, "freelance payment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Extract(tt.text, model.IntentAddIncome)
			assert.True(t, cmd.HasAmount)
			assert.Equal(t, tt.amount, cmd.Amount)
			assert.Equal(t, tt.desc, cmd.Description)
		})
	}
}

func TestExtractBudget(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		amount   float64
		category string
	}{
		{"category first", "budget food to 5000", 5000, "food"},
		{"category first with at", "budget transport at 2000", 2000, "transport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Extract(tt.text, model.IntentSetBudget)
			assert.True(t, cmd.HasAmount)
			assert.Equal(t, tt.amount, cmd.Amount)
			assert.Equal(t, tt.category, cmd.CategoryHint)
		})
	}
}

func TestExtractBudgetAmountFirst(t *testing.T) {
	cmd := Extract("set a budget of 5000 for food", model.IntentSetBudget)
	assert.True(t, cmd.HasAmount)
	assert.Equal(t, 5000.0, cmd.Amount)
	assert.Equal(t, "food", cmd.CategoryHint)
}

func TestSmartParse(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantIntent model.Intent
		wantAmount float64
		wantDesc   string
	}{
		{
			name:       "bare amount with noun is expense",
			text:       "450 pizza",
			wantIntent: model.IntentAddExpense,
			wantAmount: 450,
			wantDesc:   "pizza",
		},
		{
			name:       "income keyword flips to income",
			text:       "salary 30000",
			wantIntent: model.IntentAddIncome,
			wantAmount: 30000,
			wantDesc:   "salary",
		},
		{
			name:       "bare number only defaults description",
			text:       "750",
			wantIntent: model.IntentAddExpense,
			wantAmount: 750,
			wantDesc:   "Expense",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Extract(tt.text, model.IntentUnrecognized)
			assert.Equal(t, tt.wantIntent, cmd.Intent)
			assert.True(t, cmd.HasAmount)
			assert.Equal(t, tt.wantAmount, cmd.Amount)
			assert.Equal(t, tt.wantDesc, cmd.Description)
		})
	}
}

func TestSmartParseNoAmount(t *testing.T) {
	cmd := Extract("tell me a joke", model.IntentUnrecognized)
	assert.Equal(t, model.IntentUnrecognized, cmd.Intent)
	assert.False(t, cmd.HasAmount)
	assert.False(t, cmd.Actionable() && cmd.HasAmount)
}

func TestExtractNonActionableIntents(t *testing.T) {
	cmd := Extract("what's my balance", model.IntentCheckBalance)
	assert.Equal(t, model.IntentCheckBalance, cmd.Intent)
	assert.False(t, cmd.HasAmount)
	assert.True(t, cmd.Actionable())
}
