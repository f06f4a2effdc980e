package importer

import (
	"strings"

	"github.com/cleared-dev/findash/internal/model"
)

// CashAppProfile parses Cash App activity exports.
//
// Net Amount is already signed. Only completed rows are kept, the
// description is rebuilt from the transaction type, and the type itself is
// stored in BankCategory so cash-outs and add-cash movements can be forced
// to Transfer by the categorizer.
type CashAppProfile struct{}

const (
	cashAppDate   = "Date"
	cashAppType   = "Transaction Type"
	cashAppAmount = "Net Amount"
	cashAppStatus = "Status"
	cashAppNotes  = "Notes"
	cashAppParty  = "Name of sender/receiver"
)

// p2pSeparator joins the note and counterparty of a peer transfer.
const p2pSeparator = " \u2014 "

var cashAppSettled = map[string]bool{"COMPLETE": true, "SETTLED": true}

// Name returns the profile name.
func (p *CashAppProfile) Name() string { return "cash_app" }

// Detect matches on the type, net amount, status and notes columns.
func (p *CashAppProfile) Detect(t *Table) bool {
	return t.HasColumns(cashAppType, cashAppAmount, cashAppStatus, cashAppNotes)
}

// Normalize keeps settled rows and rebuilds their descriptions.
func (p *CashAppProfile) Normalize(t *Table) ([]model.Transaction, int, error) {
	dateIdx := t.Index(cashAppDate)
	typeIdx := t.Index(cashAppType)
	amtIdx := t.Index(cashAppAmount)
	statusIdx := t.Index(cashAppStatus)
	notesIdx := t.Index(cashAppNotes)
	partyIdx := t.Index(cashAppParty)

	var txns []model.Transaction
	dropped := 0
	for i, rec := range t.Body() {
		if !cashAppSettled[strings.ToUpper(cell(rec, statusIdx))] {
			continue
		}

		txnType := cell(rec, typeIdx)
		txn, ok, err := buildRow(t.File, rowInput{
			line:         i + 2,
			date:         firstField(cell(rec, dateIdx)),
			description:  cashAppDescription(txnType, cell(rec, notesIdx), cell(rec, partyIdx)),
			amount:       cell(rec, amtIdx),
			bankCategory: txnType,
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

func cashAppDescription(txnType, notes, party string) string {
	switch txnType {
	case "P2P":
		var parts []string
		for _, s := range []string{notes, party} {
			if present(s) {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return "Cash App P2P"
		}
		return strings.Join(parts, p2pSeparator)
	case "Withdrawal":
		return "Cash App Cash Out"
	case "Deposits":
		return "Cash App Add Cash"
	}
	if present(notes) {
		return notes
	}
	return "Cash App " + txnType
}

// present treats blank and literal "nan" cells as missing.
func present(s string) bool {
	return s != "" && !strings.EqualFold(s, "nan")
}

// firstField drops a trailing time and zone, e.g. "2024-01-15 10:23:45 EST".
func firstField(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
