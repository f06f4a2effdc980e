package importer

import (
	"errors"

	"github.com/cleared-dev/findash/internal/model"
)

// WellsFargoProfile parses the legacy headerless five-column export:
// date, amount, two unused markers, description.
type WellsFargoProfile struct{}

const (
	wfNumFields = 5
	wfColDate   = 0
	wfColAmount = 1
	wfColDesc   = 4
)

// Name returns the profile name.
func (p *WellsFargoProfile) Name() string { return "wells_fargo" }

// Detect requires exactly five columns and a first row that is already data.
func (p *WellsFargoProfile) Detect(t *Table) bool {
	if t.Width() != wfNumFields {
		return false
	}
	first := t.Header()
	if ParseDate(first[wfColDate]).IsZero() {
		return false
	}
	_, err := ParseAmount(first[wfColAmount])
	return err == nil || errors.Is(err, ErrEmptyAmount)
}

// Normalize reads every record as data; line numbers start at 1.
func (p *WellsFargoProfile) Normalize(t *Table) ([]model.Transaction, int, error) {
	var txns []model.Transaction
	dropped := 0
	for i, rec := range t.Records {
		txn, ok, err := buildRow(t.File, rowInput{
			line:        i + 1,
			date:        cell(rec, wfColDate),
			description: cell(rec, wfColDesc),
			amount:      cell(rec, wfColAmount),
		}, nil)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			dropped++
			continue
		}
		txns = append(txns, txn)
	}
	return txns, dropped, nil
}
