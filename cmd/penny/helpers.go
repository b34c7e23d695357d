package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/moneypenny/penny/internal/assistant"
	"github.com/moneypenny/penny/internal/categorizer"
	"github.com/moneypenny/penny/internal/config"
	"github.com/moneypenny/penny/internal/llm"
	"github.com/moneypenny/penny/internal/service"
	"github.com/moneypenny/penny/internal/storage"
)

// initStorage opens the database, runs migrations, and seeds the
// default categories for the active user.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := store.SeedCategories(ctx, currentUserID()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	return store, nil
}

// buildAssistant wires storage, the categorizer, and the llm baseline
// config into an assistant. The categorizer refits on the stored
// transaction history, so each session starts from the same model a
// retrain would produce.
func buildAssistant(ctx context.Context, store *storage.SQLiteStorage) *assistant.Assistant {
	clf := categorizer.New()
	txns, err := store.GetTransactions(ctx, currentUserID(), service.TransactionFilter{})
	if err != nil {
		slog.Warn("could not load history for the categorizer", "error", err)
	} else if extra := categorizer.HistoryExamples(txns); len(extra) > 0 {
		if err := clf.Retrain(extra); err != nil {
			slog.Warn("could not refit categorizer on history", "error", err)
		}
	}

	cfg := llm.Config{
		Provider: viper.GetString("llm.provider"),
		APIKey:   viper.GetString("llm.api_key"),
		Model:    viper.GetString("llm.model"),
		Timeout:  viper.GetDuration("llm.timeout"),
	}
	return assistant.New(store, clf, cfg)
}

func currentUserID() int {
	id := viper.GetInt("user.id")
	if id <= 0 {
		return 1
	}
	return id
}
