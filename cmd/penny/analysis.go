package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/moneypenny/penny/internal/analysis"
	"github.com/moneypenny/penny/internal/cli"
	"github.com/moneypenny/penny/internal/model"
)

// withEngine handles the shared open-storage/close-storage dance for
// the analysis subcommands.
func withEngine(cmd *cobra.Command, fn func(engine *analysis.Engine, userID int) error) error {
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

	return fn(analysis.NewEngine(store), currentUserID())
}

func forecastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forecast",
		Short: "Predict next month's income and expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(cmd, func(engine *analysis.Engine, userID int) error {
				forecast, err := engine.Forecast(cmd.Context(), userID)
				if err != nil {
					return err
				}

				fmt.Println(cli.FormatTitle("Next Month Forecast"))
				if forecast.Trend == model.TrendInsufficientData {
					fmt.Println(cli.FormatInfo(forecast.Message))
					return nil
				}

				fmt.Printf("  Expenses: ₹%.2f\n", forecast.PredictedExpense)
				fmt.Printf("  Income:   ₹%.2f\n", forecast.PredictedIncome)
				fmt.Printf("  Savings:  ₹%.2f\n", forecast.PredictedSavings)
				fmt.Printf("  Trend: %s (confidence: %s)\n", forecast.Trend, forecast.Confidence)
				fmt.Println(cli.FormatInfo(forecast.Message))
				return nil
			})
		},
	}
}

func alertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Show overspending alerts for the current month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(cmd, func(engine *analysis.Engine, userID int) error {
				alerts, err := engine.DetectOverspending(cmd.Context(), userID)
				if err != nil {
					return err
				}

				fmt.Println(cli.FormatTitle("Spending Alerts"))
				if len(alerts) == 0 {
					fmt.Println(cli.FormatSuccess("No alerts. Spending is within limits."))
					return nil
				}

				for _, alert := range alerts {
					switch alert.Severity {
					case model.SeverityHigh:
						fmt.Println(cli.FormatError(alert.Message))
					case model.SeverityMedium:
						fmt.Println(cli.FormatWarning(alert.Message))
					default:
						fmt.Println(cli.FormatInfo(alert.Message))
					}
				}
				return nil
			})
		},
	}
}

func recommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Get rule-based financial recommendations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(cmd, func(engine *analysis.Engine, userID int) error {
				recs, err := engine.Recommendations(cmd.Context(), userID)
				if err != nil {
					return err
				}

				fmt.Println(cli.FormatTitle("Recommendations"))
				if len(recs) == 0 {
					fmt.Println(cli.FormatInfo("Nothing to suggest yet. Log more transactions first."))
					return nil
				}

				for _, rec := range recs {
					fmt.Printf("%s %s [%s]\n", rec.Icon, cli.BoldStyle.Render(rec.Title), rec.Priority)
					fmt.Printf("   %s\n", rec.Description)
				}
				return nil
			})
		},
	}
}

func insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Compare this month's spending with last month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(cmd, func(engine *analysis.Engine, userID int) error {
				insights, err := engine.SpendingInsights(cmd.Context(), userID)
				if err != nil {
					return err
				}

				fmt.Println(cli.FormatTitle("Monthly Insights"))
				fmt.Printf("  This month: income ₹%.2f, expenses ₹%.2f\n",
					insights.CurrentMonth.Income, insights.CurrentMonth.Expense)
				fmt.Printf("  Last month: income ₹%.2f, expenses ₹%.2f\n",
					insights.PreviousMonth.Income, insights.PreviousMonth.Expense)
				fmt.Printf("  Expense change: %+.1f%%, income change: %+.1f%%\n",
					insights.ExpenseChange, insights.IncomeChange)
				fmt.Printf("  Daily average spend: ₹%.2f across %d categories\n",
					insights.DailyAverage, insights.CategoriesUsed)
				if insights.BiggestCategory != nil {
					fmt.Printf("  Biggest category: %s %s at ₹%.2f\n",
						insights.BiggestCategory.Icon, insights.BiggestCategory.Name, insights.BiggestCategory.Total)
				}
				if insights.MostFrequentCategory != nil {
					fmt.Printf("  Most frequent: %s %s with %d transactions\n",
						insights.MostFrequentCategory.Icon, insights.MostFrequentCategory.Name, insights.MostFrequentCategory.Count)
				}
				return nil
			})
		},
	}
}
