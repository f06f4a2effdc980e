// Package enrich derives merchant, calendar and sign fields for a ledger.
package enrich

import (
	"time"

	"github.com/cleared-dev/findash/internal/merchant"
	"github.com/cleared-dev/findash/internal/model"
)

// FromTransactions wraps normalized rows and derives their fields.
func FromTransactions(txns []model.Transaction) []model.EnrichedTransaction {
	ledger := make([]model.EnrichedTransaction, len(txns))
	for i, txn := range txns {
		ledger[i] = model.EnrichedTransaction{Transaction: txn}
	}
	return Fields(ledger)
}

// Fields returns a new ledger with derived fields recomputed from Date,
// Description and Amount. Rows without a valid date are dropped. Running
// it on its own output reproduces the same values.
func Fields(ledger []model.EnrichedTransaction) []model.EnrichedTransaction {
	out := make([]model.EnrichedTransaction, 0, len(ledger))
	for _, txn := range ledger {
		if txn.Date.IsZero() {
			continue
		}
		out = append(out, Derive(txn))
	}
	return out
}

// Derive fills the derived fields of one row. Annotation fields
// (category, duplicate, anomaly, running balance) are left untouched.
func Derive(txn model.EnrichedTransaction) model.EnrichedTransaction {
	y, m, d := txn.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	txn.Date = date
	txn.Merchant = merchant.Clean(txn.Description)
	txn.DayOfWeek = (int(date.Weekday()) + 6) % 7
	txn.DayName = date.Weekday().String()
	txn.Month = int(m)
	txn.MonthName = m.String()
	txn.Year = y
	txn.YearMonth = date.Format("2006-01")
	txn.IsWeekend = txn.DayOfWeek >= 5
	txn.IsExpense = txn.Amount.IsNegative()
	txn.AbsAmount = txn.Amount.Abs()
	return txn
}

// FilterMonths keeps rows whose YearMonth lies in [start, end]. Either bound
// may be empty for an open range. "YYYY-MM" strings sort chronologically,
// so plain string comparison is enough.
func FilterMonths(ledger []model.EnrichedTransaction, start, end string) []model.EnrichedTransaction {
	out := make([]model.EnrichedTransaction, 0, len(ledger))
	for _, txn := range ledger {
		if start != "" && txn.YearMonth < start {
			continue
		}
		if end != "" && txn.YearMonth > end {
			continue
		}
		out = append(out, txn)
	}
	return out
}
