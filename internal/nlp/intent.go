// Package nlp turns free-text messages into intents and extracted entities.
//
// Matching is intentionally simple: case-insensitive substring regexes over
// the raw message, no tokenizer. Intent groups are tested in a fixed
// priority order and the first group with any matching pattern wins; that
// ordering is the tie-break policy, not an accident.
package nlp

import (
	"regexp"
	"strings"

	"github.com/moneypenny/penny/internal/model"
)

// Amount grammar shared by all patterns: an optional currency token
// (symbol or short code) before or after the digits, up to 2 decimals.
const (
	currencyToken = `(?:₹|rs\.?|inr|\$|usd|€|eur)`
	amountToken   = `(\d+(?:\.\d{1,2})?)`
)

type intentGroup struct {
	intent   model.Intent
	patterns []*regexp.Regexp
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

var (
	expensePatterns = compileAll(
		`(?:i\s+)?(?:spent|paid|bought|purchased|expensed?)\s+`+currencyToken+`?\s*`+amountToken+`\s*`+currencyToken+`?\s*(?:on|for|at)?\s*(.+)?`,
		`(?:add|record|log)\s+(?:an?\s+)?expense\s+(?:of\s+)?`+currencyToken+`?\s*`+amountToken+`\s*`+currencyToken+`?\s*(?:for|on)?\s*(.+)?`,
		amountToken+`\s*`+currencyToken+`?\s+(?:spent\s+)?(?:on|for|at)\s+(.+)`,
	)

	incomePatterns = compileAll(
		`(?:i\s+)?(?:received|got|earned|income)\s+`+currencyToken+`?\s*`+amountToken+`\s*`+currencyToken+`?\s*(?:from|as|for)?\s*(.+)?`,
		`(?:add|record|log)\s+(?:an?\s+)?income\s+(?:of\s+)?`+currencyToken+`?\s*`+amountToken+`\s*`+currencyToken+`?\s*(?:from|as)?\s*(.+)?`,
		`salary\s+(?:of\s+)?`+currencyToken+`?\s*`+amountToken,
	)

	// Amount-first, then category-first argument order.
	budgetPatterns = compileAll(
		`set\s+(?:a\s+)?budget\s+(?:of\s+)?`+currencyToken+`?\s*`+amountToken+`\s*(?:for\s+)?(.+)?`,
		`budget\s+(.+?)\s+(?:to|at)\s+`+currencyToken+`?\s*`+amountToken,
	)

	// intentGroups is ordered by priority; first matching group wins.
	intentGroups = []intentGroup{
		{model.IntentGreeting, compileAll(
			`^(?:hi|hello|hey|hola|greetings)[\s!]*$`,
			`^good\s+(?:morning|afternoon|evening)[\s!]*$`,
		)},
		{model.IntentHelp, compileAll(
			`(?:what\s+can\s+you\s+do|help|commands?|how\s+to\s+use)`,
		)},
		{model.IntentThanks, compileAll(
			`\b(?:thanks?|thank\s+you|thx|ty)\b`,
		)},
		{model.IntentAddExpense, expensePatterns},
		{model.IntentAddIncome, incomePatterns},
		{model.IntentCheckBalance, compileAll(
			`(?:what'?s?\s+)?(?:my\s+)?(?:current\s+)?balance`,
			`how\s+much\s+(?:do\s+i\s+have|money|left)`,
			`(?:show\s+)?(?:my\s+)?(?:account\s+)?summary`,
		)},
		{model.IntentCheckSpending, compileAll(
			`how\s+much\s+(?:did\s+i\s+)?(?:spent?|spend)`,
			`(?:my\s+)?(?:total\s+)?(?:spending|expenses)`,
			`(?:show\s+)?spending\s+(?:on|for|in)\s+(.+)`,
		)},
		{model.IntentRecentTransactions, compileAll(
			`(?:show\s+)?(?:my\s+)?(?:recent|last|latest)\s+(?:transactions?|expenses?)`,
			`what\s+did\s+i\s+(?:spend|buy)\s+(?:recently|today|yesterday)`,
		)},
		{model.IntentSetBudget, budgetPatterns},
	}
)

// Normalize lowercases and trims a message for matching.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// ClassifyIntent maps a message to one intent from the fixed taxonomy.
func ClassifyIntent(text string) model.Intent {
	normalized := Normalize(text)
	if normalized == "" {
		return model.IntentUnrecognized
	}

	for _, group := range intentGroups {
		for _, pattern := range group.patterns {
			if pattern.MatchString(normalized) {
				return group.intent
			}
		}
	}

	return model.IntentUnrecognized
}
