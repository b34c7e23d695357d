package nlp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/moneypenny/penny/internal/model"
)

var (
	bareAmountRe  = regexp.MustCompile(currencyToken + `?\s*` + amountToken + `\s*` + currencyToken + `?`)
	amountStripRe = regexp.MustCompile(currencyToken + `?\s*\d+(?:\.\d{1,2})?\s*` + currencyToken + `?`)
	verbStripRe   = regexp.MustCompile(`(?:spent|paid|for|on|at|expense|income)\s*`)

	incomeKeywords = []string{"received", "earned", "got", "income", "salary", "paid"}
)

// Extract pulls amount, description, and category hint out of a message
// for the given intent. For IntentUnrecognized it runs the unconstrained
// smart parse, which may upgrade the intent to add_expense or add_income.
func Extract(text string, intent model.Intent) model.ParsedCommand {
	normalized := Normalize(text)
	cmd := model.ParsedCommand{Intent: intent}

	switch intent {
	case model.IntentAddExpense:
		if amount, desc, ok := extractAmountAndText(normalized, expensePatterns); ok {
			cmd.Amount = amount
			cmd.HasAmount = true
			cmd.Description = cleanDescription(desc)
		}
	case model.IntentAddIncome:
		if amount, desc, ok := extractAmountAndText(normalized, incomePatterns); ok {
			cmd.Amount = amount
			cmd.HasAmount = true
			cmd.Description = cleanDescription(desc)
			if cmd.Description == "" {
				cmd.Description = "Income"
			}
		}
	case model.IntentSetBudget:
		if amount, category, ok := extractBudget(normalized); ok {
			cmd.Amount = amount
			cmd.HasAmount = true
			cmd.CategoryHint = strings.TrimSpace(category)
		}
	case model.IntentUnrecognized:
		return smartParse(normalized)
	}

	return cmd
}

// extractAmountAndText runs the intent's capture patterns in order and
// returns the first amount plus trailing text.
func extractAmountAndText(text string, patterns []*regexp.Regexp) (float64, string, bool) {
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		amount, err := strconv.ParseFloat(match[1], 64)
		if err != nil || amount <= 0 {
			continue
		}

		var desc string
		if len(match) > 2 {
			desc = match[2]
		}
		return amount, desc, true
	}
	return 0, "", false
}

// extractBudget handles both argument orders: "set budget of 5000 for
// food" (amount first) and "budget food to 5000" (category first).
func extractBudget(text string) (float64, string, bool) {
	for _, pattern := range budgetPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		if amount, err := strconv.ParseFloat(match[1], 64); err == nil {
			if amount > 0 {
				return amount, matchGroup(match, 2), true
			}
			continue
		}

		// Category came first; amount is in the second group
		amount, err := strconv.ParseFloat(matchGroup(match, 2), 64)
		if err != nil || amount <= 0 {
			continue
		}
		return amount, match[1], true
	}
	return 0, "", false
}

// smartParse is the last-resort pass for unrecognized messages: find the
// first bare number, strip it and the verb tokens, and decide
// expense-vs-income by keyword. Absence of income keywords means expense.
func smartParse(text string) model.ParsedCommand {
	cmd := model.ParsedCommand{Intent: model.IntentUnrecognized}

	match := bareAmountRe.FindStringSubmatch(text)
	if match == nil {
		return cmd
	}

	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil || amount <= 0 {
		return cmd
	}

	description := amountStripRe.ReplaceAllString(text, "")
	description = strings.TrimSpace(verbStripRe.ReplaceAllString(description, ""))

	cmd.Amount = amount
	cmd.HasAmount = true
	cmd.Description = description

	if containsAny(text, incomeKeywords) {
		cmd.Intent = model.IntentAddIncome
		if cmd.Description == "" {
			cmd.Description = "Income"
		}
	} else {
		cmd.Intent = model.IntentAddExpense
		if cmd.Description == "" {
			cmd.Description = "Expense"
		}
	}

	return cmd
}

// cleanDescription trims the trailing capture and strips leading
// connective words left over from the matched phrase.
func cleanDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	for {
		trimmed := false
		for _, connective := range []string{"for ", "on ", "at "} {
			if strings.HasPrefix(desc, connective) {
				desc = strings.TrimSpace(strings.TrimPrefix(desc, connective))
				trimmed = true
			}
		}
		if !trimmed {
			break
		}
	}
	return desc
}

func matchGroup(match []string, i int) string {
	if i < len(match) {
		return match[i]
	}
	return ""
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
