package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moneypenny/penny/internal/model"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Intent
	}{
		{"bare greeting", "hi", model.IntentGreeting},
		{"greeting with punctuation", "Hello!", model.IntentGreeting},
		{"time of day greeting", "good morning", model.IntentGreeting},
		{"greeting embedded in sentence is not greeting", "hi can you log 500 for food", model.IntentAddExpense},

		{"help", "what can you do", model.IntentHelp},
		{"help keyword", "help", model.IntentHelp},

		{"thanks", "thanks!", model.IntentThanks},
		{"thank you", "thank you so much", model.IntentThanks},
		{"ty inside word does not match", "pizza party 300", model.IntentUnrecognized},

		{"spent on", "spent 500 on groceries", model.IntentAddExpense},
		{"i paid", "I paid ₹120 for coffee", model.IntentAddExpense},
		{"bought", "bought 2500 shoes", model.IntentAddExpense},
		{"add expense", "add expense of 300 for fuel", model.IntentAddExpense},
		{"amount first", "500 on lunch", model.IntentAddExpense},

		{"received from", "received 20000 from salary", model.IntentAddIncome},
		{"got amount", "got 1500 as freelance payment", model.IntentAddIncome},
		{"salary of", "salary of 45000", model.IntentAddIncome},

		{"balance", "what's my balance", model.IntentCheckBalance},
		{"how much left", "how much money do I have", model.IntentCheckBalance},
		{"summary", "show my summary", model.IntentCheckBalance},

		{"spending question", "how much did I spend", model.IntentCheckSpending},
		{"my expenses", "my expenses", model.IntentCheckSpending},

		{"recent transactions", "show my recent transactions", model.IntentRecentTransactions},
		{"what did i buy", "what did I buy recently", model.IntentRecentTransactions},

		{"budget category first", "budget food to 5000", model.IntentSetBudget},

		{"gibberish", "xyzzy plugh", model.IntentUnrecognized},
		{"empty", "", model.IntentUnrecognized},
		{"whitespace", "   ", model.IntentUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.text))
		})
	}
}

func TestClassifyIntentPriorityOrder(t *testing.T) {
	// "spent" phrasing wins over the spending-question group because the
	// expense group is checked first.
	assert.Equal(t, model.IntentAddExpense, ClassifyIntent("spent 100 on snacks"))

	// Spending review outranks recent transactions for ambiguous
	// "recent expenses" phrasing.
	assert.Equal(t, model.IntentCheckSpending, ClassifyIntent("show my recent expenses"))
}
