package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cleared-dev/findash/internal/pipeline"
)

// File names written by WriteDir.
const (
	LedgerFile            = "transactions_clean.csv"
	MonthlySummaryFile    = "monthly_summary.csv"
	MonthlyByCategoryFile = "monthly_by_category.csv"
	AnomaliesFile         = "anomalies.csv"
	RecurringFile         = "recurring.csv"
	TopMerchantsFile      = "top_merchants.csv"
)

// Written describes one exported file.
type Written struct {
	Name string
	Path string
	Rows int
}

// WriteDir writes every CSV view of res into dir, creating it if needed.
func WriteDir(dir string, res *pipeline.Result) ([]Written, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	files := []struct {
		name  string
		rows  int
		write func(io.Writer) error
	}{
		{LedgerFile, len(res.Ledger), func(w io.Writer) error { return WriteLedger(w, res.Ledger) }},
		{MonthlySummaryFile, len(res.MonthlySummary), func(w io.Writer) error { return WriteMonthlySummary(w, res.MonthlySummary) }},
		{MonthlyByCategoryFile, len(res.MonthlyByCategory), func(w io.Writer) error { return WriteMonthlyByCategory(w, res.MonthlyByCategory) }},
		{AnomaliesFile, len(res.Anomalies), func(w io.Writer) error { return WriteLedger(w, res.Anomalies) }},
		{RecurringFile, len(res.Recurring), func(w io.Writer) error { return WriteRecurring(w, res.Recurring) }},
		{TopMerchantsFile, len(res.TopMerchants), func(w io.Writer) error { return WriteTopMerchants(w, res.TopMerchants) }},
	}

	var written []Written
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return written, err
		}
		written = append(written, Written{Name: f.name, Path: path, Rows: f.rows})
	}
	return written, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
