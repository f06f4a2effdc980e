package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/findash/internal/config"
	"github.com/cleared-dev/findash/internal/export"
	"github.com/cleared-dev/findash/internal/logger"
	"github.com/cleared-dev/findash/internal/pipeline"
)

// Environment variables consulted when the matching flag is not set.
const (
	EnvInput      = "FINDASH_INPUT"
	EnvOutput     = "FINDASH_OUTPUT"
	EnvCategories = "FINDASH_CATEGORIES"
)

type analyzeFlags struct {
	input, output, categories string
	start, end                string
	balance                   string
	stdThreshold              float64
}

func newAnalyzeCommand() *cobra.Command {
	var f analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ingest bank CSVs and write the analysis CSVs",
		Example: `  findash analyze --input data/ --output output/
  findash analyze --start 2024-01 --end 2024-12
  findash analyze --balance 5000.00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.input = envDefault(cmd, "input", EnvInput, f.input)
			f.output = envDefault(cmd, "output", EnvOutput, f.output)
			f.categories = envDefault(cmd, "categories", EnvCategories, f.categories)
			return runAnalyze(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.input, "input", "i", "data", "directory containing bank CSV files")
	cmd.Flags().StringVarP(&f.output, "output", "o", "output", "directory for output files")
	cmd.Flags().StringVar(&f.categories, "categories", "config/categories.yaml", "path to categories.yaml")
	cmd.Flags().StringVar(&f.start, "start", "", "first year-month to include (YYYY-MM)")
	cmd.Flags().StringVar(&f.end, "end", "", "last year-month to include (YYYY-MM)")
	cmd.Flags().StringVar(&f.balance, "balance", "0", "starting balance for the running balance")
	cmd.Flags().Float64Var(&f.stdThreshold, "std-threshold", 2.0, "z-score above which an expense is an anomaly")

	return cmd
}

func runAnalyze(cmd *cobra.Command, f analyzeFlags) error {
	log := logger.FromContext(cmd.Context())

	opts := pipeline.DefaultOptions()
	for _, ym := range []string{f.start, f.end} {
		if ym == "" {
			continue
		}
		if _, err := time.Parse("2006-01", ym); err != nil {
			return fmt.Errorf("invalid month %q: want YYYY-MM", ym)
		}
	}
	opts.Start, opts.End = f.start, f.end

	balance, err := decimal.NewFromString(f.balance)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", f.balance, err)
	}
	opts.StartingBalance = balance
	opts.AnomalyThreshold = f.stdThreshold

	rules, err := config.Load(f.categories)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	log.Debug().Str("path", f.categories).Int("categories", len(rules.Categories)).Msg("loaded rules")

	res, err := pipeline.New(rules, opts, log).RunDir(f.input)
	if err != nil {
		return err
	}

	written, err := export.WriteDir(f.output, res)
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	for _, w := range written {
		log.Info().Str("file", w.Name).Int("rows", w.Rows).Msg("saved")
	}

	printSummary(cmd.OutOrStdout(), res)
	return nil
}

func printSummary(w io.Writer, res *pipeline.Result) {
	income, expenses := decimal.Zero, decimal.Zero
	for _, m := range res.MonthlySummary {
		income = income.Add(m.Income)
		expenses = expenses.Add(m.Expenses)
	}

	fmt.Fprintf(w, "Transactions:   %d\n", len(res.Ledger))
	fmt.Fprintf(w, "Months covered: %d\n", len(res.MonthlySummary))
	fmt.Fprintf(w, "Total income:   $%s\n", income.StringFixed(2))
	fmt.Fprintf(w, "Total expenses: $%s\n", expenses.StringFixed(2))
	fmt.Fprintf(w, "Net:            $%s\n", income.Sub(expenses).StringFixed(2))
	fmt.Fprintf(w, "Anomalies:      %d\n", len(res.Anomalies))
	fmt.Fprintf(w, "Recurring:      %d\n", len(res.Recurring))

	for _, b := range res.Budgets {
		status := fmt.Sprintf("%.0f%% used", b.PctUsed)
		if b.Spent.GreaterThan(b.Budget) {
			status = "OVER BUDGET"
		}
		fmt.Fprintf(w, "Budget %s: $%s / $%s (%s)\n", b.Category, b.Spent.StringFixed(2), b.Budget.StringFixed(2), status)
	}
}
