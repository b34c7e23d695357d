// Package assistant is the conversational core: it routes a free-text
// message through a remote generative strategy when one is configured,
// and otherwise through the deterministic intent pipeline, then
// executes the resulting command against storage.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moneypenny/penny/internal/llm"
	"github.com/moneypenny/penny/internal/model"
	"github.com/moneypenny/penny/internal/nlp"
	"github.com/moneypenny/penny/internal/service"
)

// Settings keys read per message so users can switch providers without
// restarting a session.
const (
	settingAPIKey   = "llm_api_key"
	settingProvider = "llm_provider"
)

// Assistant answers user messages. Safe for concurrent use.
type Assistant struct {
	storage     service.Storage
	categorizer service.Categorizer
	llmConfig   llm.Config
	newClient   func(llm.Config) (llm.Client, error)
	logger      *slog.Logger
}

// New builds an assistant. The llm config acts as the baseline; the
// per-user llm_api_key and llm_provider settings override it each
// message.
func New(storage service.Storage, categorizer service.Categorizer, llmConfig llm.Config) *Assistant {
	return &Assistant{
		storage:     storage,
		categorizer: categorizer,
		llmConfig:   llmConfig,
		newClient:   llm.NewClient,
		logger:      slog.Default(),
	}
}

// ProcessMessage answers one message for one user. The remote strategy
// is attempted first when an API key is available; any remote failure
// falls back silently to the deterministic pipeline.
func (a *Assistant) ProcessMessage(ctx context.Context, text string, userID int) (model.Reply, error) {
	if cfg, ok := a.remoteConfig(ctx, userID); ok {
		reply, err := a.processRemote(ctx, cfg, text, userID)
		if err == nil {
			return reply, nil
		}
		a.logger.Debug("remote assistant unavailable, using deterministic pipeline", "error", err)
	}

	return a.processDeterministic(ctx, text, userID)
}

// remoteConfig merges the baseline llm config with the user's stored
// settings and reports whether the remote path is usable.
func (a *Assistant) remoteConfig(ctx context.Context, userID int) (llm.Config, bool) {
	cfg := a.llmConfig

	if key, err := a.storage.GetSetting(ctx, settingAPIKey, userID); err == nil && key != "" {
		cfg.APIKey = key
	}
	if provider, err := a.storage.GetSetting(ctx, settingProvider, userID); err == nil && provider != "" {
		cfg.Provider = provider
	}

	if cfg.APIKey == "" || cfg.Provider == "" {
		return llm.Config{}, false
	}
	return cfg, true
}

// processDeterministic runs the regex intent pipeline and dispatches.
func (a *Assistant) processDeterministic(ctx context.Context, text string, userID int) (model.Reply, error) {
	intent := nlp.ClassifyIntent(text)
	cmd := nlp.Extract(text, intent)

	switch cmd.Intent {
	case model.IntentGreeting:
		return model.Reply{Action: model.ActionGreeting, Response: greetingResponse()}, nil
	case model.IntentHelp:
		return model.Reply{Action: model.ActionHelp, Response: helpResponse}, nil
	case model.IntentThanks:
		return model.Reply{Action: model.ActionThanks, Response: thanksResponse()}, nil
	case model.IntentAddExpense:
		if !cmd.Actionable() {
			return model.Reply{Action: model.ActionFallback, Response: fallbackResponse}, nil
		}
		return a.addExpense(ctx, cmd, userID)
	case model.IntentAddIncome:
		if !cmd.Actionable() {
			return model.Reply{Action: model.ActionFallback, Response: fallbackResponse}, nil
		}
		return a.addIncome(ctx, cmd, userID)
	case model.IntentCheckBalance:
		return a.checkBalance(ctx, userID)
	case model.IntentCheckSpending:
		return a.checkSpending(ctx, userID)
	case model.IntentRecentTransactions:
		return a.recentTransactions(ctx, userID)
	case model.IntentSetBudget:
		if !cmd.Actionable() {
			return model.Reply{Action: model.ActionFallback, Response: fallbackResponse}, nil
		}
		return a.setBudget(ctx, cmd, userID)
	default:
		return model.Reply{Action: model.ActionFallback, Response: fallbackResponse}, nil
	}
}

// withTimeout bounds remote calls; local dispatch runs on the caller's
// context unchanged.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 15 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

func errorReply(err error) (model.Reply, error) {
	return model.Reply{
		Action:   model.ActionError,
		Response: "Something went wrong on my end. Please try that again.",
	}, fmt.Errorf("assistant dispatch failed: %w", err)
}
