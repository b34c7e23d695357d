package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/moneypenny/penny/internal/categorizer"
	"github.com/moneypenny/penny/internal/cli"
	"github.com/moneypenny/penny/internal/model"
	"github.com/moneypenny/penny/internal/service"
)

func retrainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retrain",
		Short: "Retrain the categorizer on your transaction history",
		Long: `Every session refits the category classifier on the built-in corpus
plus your stored transactions. This command runs that training step
eagerly and reports what it learned from, so data problems surface
now instead of at chat startup.`,
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

			txns, err := store.GetTransactions(ctx, currentUserID(), service.TransactionFilter{})
			if err != nil {
				return err
			}

			bar := progressbar.NewOptions(len(txns),
				progressbar.OptionSetDescription("collecting examples"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			var extra []model.TrainingExample
			for _, txn := range txns {
				if example, ok := categorizer.HistoryExample(txn); ok {
					extra = append(extra, example)
				}
				_ = bar.Add(1)
			}

			clf := categorizer.New()
			if err := clf.Retrain(extra); err != nil {
				return fmt.Errorf("retraining failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Retrained on %d stored transactions plus the built-in corpus. Every session now starts from this model.", len(extra))))
			return nil
		},
	}
}
