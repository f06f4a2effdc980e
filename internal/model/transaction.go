package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category labels the pipeline assigns or treats specially.
const (
	CategoryOther    = "Other"
	CategoryTransfer = "Transfer"
	CategoryIncome   = "Income"
)

// Transaction is one normalized row from a bank export.
type Transaction struct {
	ID           string          // deterministic per (source file, row)
	Date         time.Time       // calendar date, UTC midnight
	Description  string          // raw source text
	Amount       decimal.Decimal // negative = money out
	BankCategory string          // source label or profile-specific signal
	SourceFile   string
}

// EnrichedTransaction is a Transaction with derived and annotation fields.
type EnrichedTransaction struct {
	Transaction

	Merchant  string
	Category  string
	DayOfWeek int // Monday=0 ... Sunday=6
	DayName   string
	Month     int
	MonthName string
	Year      int
	YearMonth string // "YYYY-MM"
	IsWeekend bool
	IsExpense bool
	AbsAmount decimal.Decimal

	IsDuplicate    bool
	IsAnomaly      bool
	AnomalyZScore  *float64 // nil when the row was not scored
	RunningBalance decimal.Decimal
}

// CountsAsSpend reports whether the row contributes to spending totals:
// an expense that is neither a suspected duplicate nor a transfer.
func (t EnrichedTransaction) CountsAsSpend() bool {
	return t.IsExpense && !t.IsDuplicate && t.Category != CategoryTransfer
}

// ModeCategory returns the most frequent category among txns. Ties go to
// the alphabetically first name.
func ModeCategory(txns []EnrichedTransaction) string {
	counts := make(map[string]int)
	for _, txn := range txns {
		counts[txn.Category]++
	}
	best, bestN := "", 0
	for c, n := range counts {
		if n > bestN || (n == bestN && c < best) {
			best, bestN = c, n
		}
	}
	return best
}
