package importer

import (
	"strings"

	"github.com/cleared-dev/findash/internal/model"
)

// CapitalOneProfile parses Capital One exports. Amounts are unsigned and
// the Transaction Type column says which way the money moved.
type CapitalOneProfile struct{}

const (
	capOneDate   = "Transaction Date"
	capOneDesc   = "Transaction Description"
	capOneType   = "Transaction Type"
	capOneAmount = "Transaction Amount"
)

// Name returns the profile name.
func (p *CapitalOneProfile) Name() string { return "capital_one" }

// Detect matches on the four Transaction * columns.
func (p *CapitalOneProfile) Detect(t *Table) bool {
	return t.HasColumns(capOneDesc, capOneDate, capOneType, capOneAmount)
}

// Normalize negates every amount whose type is not Credit.
func (p *CapitalOneProfile) Normalize(t *Table) ([]model.Transaction, int, error) {
	dateIdx := t.Index(capOneDate)
	descIdx := t.Index(capOneDesc)
	typeIdx := t.Index(capOneType)
	amtIdx := t.Index(capOneAmount)

	var txns []model.Transaction
	dropped := 0
	for i, rec := range t.Body() {
		txn, ok, err := buildRow(t.File, rowInput{
			line:        i + 2,
			date:        cell(rec, dateIdx),
			description: cell(rec, descIdx),
			amount:      cell(rec, amtIdx),
		}, nil)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			dropped++
			continue
		}
		if !strings.EqualFold(cell(rec, typeIdx), "credit") {
			txn.Amount = txn.Amount.Abs().Neg()
		}
		txns = append(txns, txn)
	}
	return txns, dropped, nil
}
