// Package pipeline runs a batch of bank exports through ingestion,
// enrichment, annotation and reporting.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/findash/internal/categorize"
	"github.com/cleared-dev/findash/internal/config"
	"github.com/cleared-dev/findash/internal/detect"
	"github.com/cleared-dev/findash/internal/enrich"
	"github.com/cleared-dev/findash/internal/importer"
	"github.com/cleared-dev/findash/internal/model"
	"github.com/cleared-dev/findash/internal/report"
)

var (
	// ErrNoTransactions is returned when every loaded row was dropped.
	ErrNoTransactions = errors.New("no transactions found")
	// ErrEmptyRange is returned when the month filter leaves no rows.
	ErrEmptyRange = errors.New("no transactions in the requested date range")
)

// Options are the per-run parameters.
type Options struct {
	StartingBalance     decimal.Decimal
	Start, End          string // inclusive "YYYY-MM" bounds; empty = open
	AnomalyThreshold    float64
	DuplicateWindowDays int
	Recurring           detect.RecurringOptions
	TopMerchants        int
}

// DefaultOptions returns the defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		StartingBalance:     decimal.Zero,
		AnomalyThreshold:    detect.DefaultAnomalyThreshold,
		DuplicateWindowDays: detect.DefaultDuplicateWindowDays,
		Recurring:           detect.DefaultRecurringOptions(),
		TopMerchants:        report.DefaultTopMerchants,
	}
}

// Result is the annotated ledger and every view derived from it.
type Result struct {
	Ledger []model.EnrichedTransaction // date order, with running balance

	Files    []importer.FileSummary
	Warnings []importer.FileWarning
	Dropped  int

	MonthlyByCategory []model.MonthlyCategorySummary
	MonthlySummary    []model.MonthlySummary
	Anomalies         []model.EnrichedTransaction
	Recurring         []model.RecurringGroup
	TopMerchants      []model.MerchantRanking
	SpendingByDow     []model.DowBreakdown
	MonthOverMonth    *model.MonthOverMonth // nil with fewer than two months
	Budgets           []model.BudgetStatus
}

// Pipeline holds the rules and options for one or more runs.
type Pipeline struct {
	registry    *importer.Registry
	categorizer *categorize.Categorizer
	budgets     config.BudgetList
	opts        Options
	log         zerolog.Logger
}

// New builds a pipeline over the given rule set.
func New(rules *config.Rules, opts Options, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		registry:    importer.DefaultRegistry(),
		categorizer: categorize.New(rules),
		budgets:     rules.Budgets,
		opts:        opts,
		log:         log,
	}
}

// WithRegistry swaps the format registry, for callers that add profiles.
func (p *Pipeline) WithRegistry(reg *importer.Registry) *Pipeline {
	p.registry = reg
	return p
}

// RunDir loads every CSV in dir and runs the batch.
func (p *Pipeline) RunDir(dir string) (*Result, error) {
	loaded, err := importer.LoadDir(p.registry, dir)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dir, err)
	}
	return p.analyze(loaded)
}

// Run loads the given sources and runs the batch.
func (p *Pipeline) Run(sources []importer.Source) (*Result, error) {
	loaded, err := importer.Load(p.registry, sources)
	if err != nil {
		return nil, fmt.Errorf("loading sources: %w", err)
	}
	return p.analyze(loaded)
}

func (p *Pipeline) analyze(loaded *importer.LoadResult) (*Result, error) {
	for _, f := range loaded.Files {
		p.log.Info().Str("file", f.Name).Str("profile", f.Profile).Int("rows", f.Rows).Msg("loaded")
	}
	for _, w := range loaded.Warnings {
		p.log.Warn().Str("file", w.File).Err(w.Err).Msg("skipped file")
	}
	if loaded.Dropped > 0 {
		p.log.Warn().Int("rows", loaded.Dropped).Msg("dropped rows with missing date or amount")
	}

	ledger := enrich.FromTransactions(loaded.Transactions)
	ledger = p.categorizer.Apply(ledger)
	ledger = detect.Duplicates(ledger, p.opts.DuplicateWindowDays)
	if len(ledger) == 0 {
		return nil, ErrNoTransactions
	}

	if p.opts.Start != "" || p.opts.End != "" {
		before := len(ledger)
		ledger = enrich.FilterMonths(ledger, p.opts.Start, p.opts.End)
		p.log.Info().Int("before", before).Int("after", len(ledger)).
			Str("start", p.opts.Start).Str("end", p.opts.End).Msg("date filter")
		if len(ledger) == 0 {
			return nil, ErrEmptyRange
		}
	}

	ledger = detect.Anomalies(ledger, p.opts.AnomalyThreshold)
	ledger = report.RunningBalance(ledger, p.opts.StartingBalance)

	res := p.Views(ledger)
	res.Files = loaded.Files
	res.Warnings = loaded.Warnings
	res.Dropped = loaded.Dropped

	p.log.Info().
		Int("transactions", len(ledger)).
		Int("duplicates", countIf(ledger, func(t model.EnrichedTransaction) bool { return t.IsDuplicate })).
		Int("anomalies", len(res.Anomalies)).
		Int("recurring", len(res.Recurring)).
		Msg("analysis complete")
	return res, nil
}

// Views builds every aggregate view over an already annotated ledger,
// such as one read back from an earlier export.
func (p *Pipeline) Views(ledger []model.EnrichedTransaction) *Result {
	return &Result{
		Ledger:            ledger,
		MonthlyByCategory: report.MonthlyByCategory(ledger),
		MonthlySummary:    report.MonthlySummary(ledger),
		Anomalies:         report.AnomalySubset(ledger),
		Recurring:         detect.Recurring(ledger, p.opts.Recurring),
		TopMerchants:      report.TopMerchants(ledger, p.opts.TopMerchants),
		SpendingByDow:     report.SpendingByDow(ledger),
		MonthOverMonth:    report.CompareMonths(ledger),
		Budgets:           report.Budgets(ledger, p.budgets),
	}
}

func countIf(ledger []model.EnrichedTransaction, pred func(model.EnrichedTransaction) bool) int {
	n := 0
	for _, txn := range ledger {
		if pred(txn) {
			n++
		}
	}
	return n
}
