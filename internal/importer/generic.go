package importer

import (
	"strings"

	"github.com/cleared-dev/findash/internal/model"
)

// GenericProfile guesses the date, description and amount columns from
// header names. It claims every table, so it must be registered last.
type GenericProfile struct{}

var (
	dateHints   = []string{"date"}
	descHints   = []string{"desc", "memo", "name", "merchant", "payee"}
	amountHints = []string{"amount", "debit", "credit", "sum", "total"}
)

// Name returns the profile name.
func (p *GenericProfile) Name() string { return "generic" }

// Detect always succeeds.
func (p *GenericProfile) Detect(*Table) bool { return true }

// Normalize fails with a FormatDetectionError naming the header when any of
// the three columns cannot be found.
func (p *GenericProfile) Normalize(t *Table) ([]model.Transaction, int, error) {
	header := t.Header()
	layout := columnLayout{
		date:        findColumn(header, dateHints),
		description: findColumn(header, descHints),
		amount:      findColumn(header, amountHints),
	}
	if layout.date == "" || layout.description == "" || layout.amount == "" {
		return nil, 0, &FormatDetectionError{File: t.File, Columns: append([]string(nil), header...)}
	}
	return layout.normalize(t)
}

// findColumn returns the first header whose lowercase name contains a hint.
func findColumn(header []string, hints []string) string {
	for _, col := range header {
		lower := strings.ToLower(col)
		for _, h := range hints {
			if strings.Contains(lower, h) {
				return col
			}
		}
	}
	return ""
}
