package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/moneypenny/penny/internal/model"
	"github.com/moneypenny/penny/internal/service"
)

// resolveCategory finds a stored category of the wanted type for the
// predicted name, falling back to "Other" and then to the first
// category of that type.
func (a *Assistant) resolveCategory(ctx context.Context, name string, categoryType model.CategoryType, userID int) (*model.Category, error) {
	if name != "" {
		cat, err := a.storage.GetCategoryByName(ctx, name, userID)
		if err != nil {
			return nil, err
		}
		if cat != nil && cat.Type == categoryType {
			return cat, nil
		}
	}

	if other, err := a.storage.GetCategoryByName(ctx, "Other", userID); err == nil && other != nil && other.Type == categoryType {
		return other, nil
	}

	categories, err := a.storage.GetCategories(ctx, userID, categoryType)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("no %s categories exist for user %d", categoryType, userID)
	}
	return &categories[0], nil
}

func (a *Assistant) addExpense(ctx context.Context, cmd model.ParsedCommand, userID int) (model.Reply, error) {
	prediction := a.categorizer.Predict(cmd.Description)
	name := cmd.CategoryHint
	if name == "" {
		name = prediction.Category
	}

	category, err := a.resolveCategory(ctx, name, model.CategoryTypeExpense, userID)
	if err != nil {
		return errorReply(err)
	}

	txn := model.Transaction{
		Amount:      cmd.Amount,
		Description: cmd.Description,
		CategoryID:  category.ID,
		Type:        model.TypeExpense,
		UserID:      userID,
		Date:        time.Now(),
	}
	id, err := a.storage.AddTransaction(ctx, txn)
	if err != nil {
		return errorReply(err)
	}
	txn.ID = id
	txn.CategoryName = category.Name
	txn.CategoryIcon = category.Icon

	a.logger.Info("expense recorded",
		"amount", cmd.Amount,
		"category", category.Name,
		"confidence", prediction.Confidence,
		"user_id", userID)

	return model.Reply{
		Action: model.ActionExpenseAdded,
		Data:   txn,
		Response: fmt.Sprintf("✅ Recorded expense of ₹%.2f for %s under %s %s on %s.",
			cmd.Amount, displayDescription(cmd.Description, "Expense"), category.Icon, category.Name,
			txn.Date.Format("Jan 2, 2006")),
	}, nil
}

func (a *Assistant) addIncome(ctx context.Context, cmd model.ParsedCommand, userID int) (model.Reply, error) {
	name := cmd.CategoryHint
	if name == "" {
		name = a.incomeCategory(cmd.Description)
	}

	category, err := a.resolveCategory(ctx, name, model.CategoryTypeIncome, userID)
	if err != nil {
		return errorReply(err)
	}

	txn := model.Transaction{
		Amount:      cmd.Amount,
		Description: cmd.Description,
		CategoryID:  category.ID,
		Type:        model.TypeIncome,
		UserID:      userID,
		Date:        time.Now(),
	}
	id, err := a.storage.AddTransaction(ctx, txn)
	if err != nil {
		return errorReply(err)
	}
	txn.ID = id
	txn.CategoryName = category.Name
	txn.CategoryIcon = category.Icon

	a.logger.Info("income recorded",
		"amount", cmd.Amount,
		"category", category.Name,
		"user_id", userID)

	return model.Reply{
		Action: model.ActionIncomeAdded,
		Data:   txn,
		Response: fmt.Sprintf("💵 Recorded income of ₹%.2f from %s under %s %s on %s.",
			cmd.Amount, displayDescription(cmd.Description, "Income"), category.Icon, category.Name,
			txn.Date.Format("Jan 2, 2006")),
	}, nil
}

// incomeCategory picks an income category name from the description:
// "salary" anywhere prefers the Salary category, otherwise the
// statistical prediction stands.
func (a *Assistant) incomeCategory(description string) string {
	if strings.Contains(strings.ToLower(description), "salary") {
		return "Salary"
	}
	return a.categorizer.Predict(description).Category
}

func (a *Assistant) checkBalance(ctx context.Context, userID int) (model.Reply, error) {
	month := currentMonthStart()
	monthly, err := a.storage.GetSummary(ctx, userID, &month, nil)
	if err != nil {
		return errorReply(err)
	}

	allTime, err := a.storage.GetSummary(ctx, userID, nil, nil)
	if err != nil {
		return errorReply(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 This month: income ₹%.2f, expenses ₹%.2f, net ₹%.2f.\n",
		monthly.Income, monthly.Expense, monthly.Balance)
	fmt.Fprintf(&b, "💼 Overall balance: ₹%.2f.", allTime.Balance)

	return model.Reply{
		Action:   model.ActionBalanceChecked,
		Data:     allTime,
		Response: b.String(),
	}, nil
}

func (a *Assistant) checkSpending(ctx context.Context, userID int) (model.Reply, error) {
	month := currentMonthStart()
	breakdown, err := a.storage.GetCategoryBreakdown(ctx, userID, &month, nil, model.TypeExpense)
	if err != nil {
		return errorReply(err)
	}

	if len(breakdown) == 0 {
		return model.Reply{
			Action:   model.ActionSpendingChecked,
			Response: "No expenses recorded this month yet.",
		}, nil
	}

	var total float64
	for _, cat := range breakdown {
		total += cat.Total
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💸 You've spent ₹%.2f this month. Top categories:\n", total)
	for i, cat := range breakdown {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "%s %s: ₹%.2f (%.0f%%)\n", cat.Icon, cat.Name, cat.Total, cat.Total/total*100)
	}

	return model.Reply{
		Action:   model.ActionSpendingChecked,
		Data:     breakdown,
		Response: strings.TrimRight(b.String(), "\n"),
	}, nil
}

func (a *Assistant) recentTransactions(ctx context.Context, userID int) (model.Reply, error) {
	txns, err := a.storage.GetTransactions(ctx, userID, service.TransactionFilter{Limit: 5})
	if err != nil {
		return errorReply(err)
	}

	if len(txns) == 0 {
		return model.Reply{
			Action:   model.ActionTransactionsListed,
			Response: "No transactions yet. Tell me about one, like \"spent 200 on coffee\".",
		}, nil
	}

	var b strings.Builder
	b.WriteString("🧾 Your recent transactions:\n")
	for _, txn := range txns {
		sign := "-"
		if txn.Type == model.TypeIncome {
			sign = "+"
		}
		fmt.Fprintf(&b, "%s %s %s₹%.2f (%s, %s)\n",
			txn.CategoryIcon, txn.Description, sign, txn.Amount, txn.CategoryName, txn.Date.Format("Jan 2"))
	}

	return model.Reply{
		Action:   model.ActionTransactionsListed,
		Data:     txns,
		Response: strings.TrimRight(b.String(), "\n"),
	}, nil
}

func (a *Assistant) setBudget(ctx context.Context, cmd model.ParsedCommand, userID int) (model.Reply, error) {
	hint := strings.TrimSpace(strings.ToLower(cmd.CategoryHint))
	if hint == "" {
		return model.Reply{
			Action:   model.ActionNeedCategory,
			Response: fmt.Sprintf("Which category should the ₹%.2f budget apply to?", cmd.Amount),
		}, nil
	}

	categories, err := a.storage.GetCategories(ctx, userID, model.CategoryTypeExpense)
	if err != nil {
		return errorReply(err)
	}

	// First match in listing order wins; matching is bidirectional
	// substring so "food" finds "Food & Dining".
	var matched *model.Category
	for i := range categories {
		name := strings.ToLower(categories[i].Name)
		if strings.Contains(name, hint) || strings.Contains(hint, name) {
			matched = &categories[i]
			break
		}
	}
	if matched == nil {
		return model.Reply{
			Action:   model.ActionCategoryNotFound,
			Response: fmt.Sprintf("I don't know a category called %q. Try one of your existing categories.", cmd.CategoryHint),
		}, nil
	}

	if err := a.storage.SetBudget(ctx, matched.ID, userID, cmd.Amount); err != nil {
		return errorReply(err)
	}

	a.logger.Info("budget set",
		"category", matched.Name,
		"limit", cmd.Amount,
		"user_id", userID)

	return model.Reply{
		Action: model.ActionBudgetSet,
		Data:   matched,
		Response: fmt.Sprintf("🎯 Budget set: %s %s capped at ₹%.2f per month.",
			matched.Icon, matched.Name, cmd.Amount),
	}, nil
}

// displayDescription title-cases the extracted description for the
// confirmation, substituting a placeholder when it is empty.
func displayDescription(desc, placeholder string) string {
	if strings.TrimSpace(desc) == "" {
		return strings.ToLower(placeholder)
	}
	return titleCase(desc)
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
