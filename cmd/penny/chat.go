package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moneypenny/penny/internal/tui"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Warn("failed to close storage", "error", closeErr)
				}
			}()

			pennyAssistant := buildAssistant(ctx, store)
			userID := currentUserID()

			greeting, err := pennyAssistant.QuickInsights(ctx, userID)
			if err != nil {
				slog.Debug("quick insights unavailable", "error", err)
				greeting = "Hi! Tell me about an expense or ask about your money."
			}

			return tui.Run(ctx, tui.Config{
				Assistant: pennyAssistant,
				UserID:    userID,
				Greeting:  greeting,
			})
		},
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [message]",
		Short: "Send a single message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Warn("failed to close storage", "error", closeErr)
				}
			}()

			pennyAssistant := buildAssistant(ctx, store)

			reply, err := pennyAssistant.ProcessMessage(ctx, strings.Join(args, " "), currentUserID())
			if err != nil {
				return err
			}

			fmt.Println(reply.Response)
			return nil
		},
	}
}
