package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/findash/internal/config"
	"github.com/cleared-dev/findash/internal/export"
	"github.com/cleared-dev/findash/internal/logger"
	"github.com/cleared-dev/findash/internal/pipeline"
)

func newSummaryCommand() *cobra.Command {
	var output, categories string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print totals and budgets from a previous analyze run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output = envDefault(cmd, "output", EnvOutput, output)
			categories = envDefault(cmd, "categories", EnvCategories, categories)
			return runSummary(cmd, output, categories)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "output", "directory written by analyze")
	cmd.Flags().StringVar(&categories, "categories", "config/categories.yaml", "path to categories.yaml")

	return cmd
}

func runSummary(cmd *cobra.Command, output, categories string) error {
	log := logger.FromContext(cmd.Context())

	rules, err := config.Load(categories)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}

	path := filepath.Join(output, export.LedgerFile)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	ledger, err := export.ReadLedger(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if len(ledger) == 0 {
		return pipeline.ErrNoTransactions
	}
	log.Debug().Str("path", path).Int("rows", len(ledger)).Msg("read ledger")

	printSummary(cmd.OutOrStdout(), pipeline.New(rules, pipeline.DefaultOptions(), log).Views(ledger))
	return nil
}
