package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/moneypenny/penny/internal/cli"
	"github.com/moneypenny/penny/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List transaction categories",
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

			categories, err := store.GetCategories(ctx, currentUserID(), "")
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Categories"))
			printGroup(categories, model.CategoryTypeExpense, "Expense")
			printGroup(categories, model.CategoryTypeIncome, "Income")
			return nil
		},
	}
	return cmd
}

func printGroup(categories []model.Category, categoryType model.CategoryType, heading string) {
	fmt.Println(cli.SubtitleStyle.Render(heading))
	for _, cat := range categories {
		if cat.Type != categoryType {
			continue
		}
		fmt.Printf("  %s %s\n", cat.Icon, cat.Name)
	}
}
