package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moneypenny/penny/internal/common"
	"github.com/moneypenny/penny/internal/llm"
	"github.com/moneypenny/penny/internal/model"
	"github.com/moneypenny/penny/internal/service"
)

// remoteRetry bounds transient generate failures. Kept tight so a dead
// remote still falls back to the deterministic path quickly.
var remoteRetry = service.RetryOptions{
	MaxAttempts:  2,
	InitialDelay: 300 * time.Millisecond,
	MaxDelay:     2 * time.Second,
}

// processRemote asks the generative model to answer the message and,
// when the message implies a transaction, to embed a structured command
// that gets executed through the same handlers as the deterministic
// path. Any error here makes the caller fall back silently.
func (a *Assistant) processRemote(ctx context.Context, cfg llm.Config, text string, userID int) (model.Reply, error) {
	client, err := a.newClient(cfg)
	if err != nil {
		return model.Reply{}, err
	}

	prompt, err := a.buildPrompt(ctx, text, userID)
	if err != nil {
		return model.Reply{}, err
	}

	callCtx, cancel := withTimeout(ctx, cfg.Timeout)
	defer cancel()

	var raw string
	err = common.WithRetry(callCtx, func() error {
		var genErr error
		raw, genErr = client.Generate(callCtx, prompt)
		return genErr
	}, remoteRetry)
	if err != nil {
		return model.Reply{}, err
	}

	cmd, err := llm.ExtractCommand(raw)
	if err != nil {
		return model.Reply{}, err
	}

	switch cmd.Action {
	case "add_expense":
		if cmd.Amount <= 0 {
			return model.Reply{}, fmt.Errorf("remote command has no amount")
		}
		return a.addExpense(ctx, model.ParsedCommand{
			Intent:       model.IntentAddExpense,
			Amount:       cmd.Amount,
			HasAmount:    true,
			Description:  cmd.Description,
			CategoryHint: cmd.Category,
		}, userID)
	case "add_income":
		if cmd.Amount <= 0 {
			return model.Reply{}, fmt.Errorf("remote command has no amount")
		}
		return a.addIncome(ctx, model.ParsedCommand{
			Intent:       model.IntentAddIncome,
			Amount:       cmd.Amount,
			HasAmount:    true,
			Description:  cmd.Description,
			CategoryHint: cmd.Category,
		}, userID)
	case "none":
		response := proseAround(raw)
		if response == "" {
			response = fallbackResponse
		}
		return model.Reply{Action: model.ActionChat, Response: response}, nil
	default:
		return model.Reply{}, fmt.Errorf("unknown remote action %q", cmd.Action)
	}
}

// buildPrompt embeds the user's current financial context so the model
// can answer questions directly and pick sensible categories.
func (a *Assistant) buildPrompt(ctx context.Context, text string, userID int) (string, error) {
	month := currentMonthStart()
	summary, err := a.storage.GetSummary(ctx, userID, &month, nil)
	if err != nil {
		return "", err
	}
	allTime, err := a.storage.GetSummary(ctx, userID, nil, nil)
	if err != nil {
		return "", err
	}
	categories, err := a.storage.GetCategories(ctx, userID, "")
	if err != nil {
		return "", err
	}

	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = fmt.Sprintf("%s (%s)", cat.Name, cat.Type)
	}

	var b strings.Builder
	b.WriteString("You are a friendly personal finance assistant. Currency is ₹.\n\n")
	fmt.Fprintf(&b, "User's context: this month income ₹%.2f, expenses ₹%.2f; overall balance ₹%.2f.\n", summary.Income, summary.Expense, allTime.Balance)
	fmt.Fprintf(&b, "Known categories: %s.\n\n", strings.Join(names, ", "))
	b.WriteString("Reply briefly and helpfully. You MUST include exactly one JSON object in your reply:\n")
	b.WriteString(`{"action": "add_expense" | "add_income" | "none", "amount": <number>, "description": "<text>", "category": "<one of the known categories or empty>"}` + "\n")
	b.WriteString("Use add_expense or add_income only when the message states a transaction with an amount; otherwise use action \"none\" and answer in prose outside the JSON.\n\n")
	fmt.Fprintf(&b, "User's message: %s\n", text)

	return b.String(), nil
}

// proseAround strips the first JSON object out of the model's reply and
// returns the surrounding prose.
func proseAround(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return strings.TrimSpace(raw)
	}
	prose := raw[:start] + raw[end+1:]
	prose = strings.ReplaceAll(prose, "```json", "")
	prose = strings.ReplaceAll(prose, "```", "")
	return strings.TrimSpace(prose)
}
