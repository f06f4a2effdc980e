// Package report builds read-only aggregate views over an annotated
// ledger. Nothing here writes flags back to the rows it reads.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/findash/internal/model"
)

func spend(ledger []model.EnrichedTransaction) []model.EnrichedTransaction {
	var out []model.EnrichedTransaction
	for _, txn := range ledger {
		if txn.CountsAsSpend() {
			out = append(out, txn)
		}
	}
	return out
}

// MonthlyByCategory totals spend per (month, category), ordered by month
// and then by total, largest first.
func MonthlyByCategory(ledger []model.EnrichedTransaction) []model.MonthlyCategorySummary {
	type key struct{ month, category string }
	totals := make(map[key]decimal.Decimal)
	for _, txn := range spend(ledger) {
		k := key{txn.YearMonth, txn.Category}
		totals[k] = totals[k].Add(txn.AbsAmount)
	}

	out := make([]model.MonthlyCategorySummary, 0, len(totals))
	for k, v := range totals {
		out = append(out, model.MonthlyCategorySummary{YearMonth: k.month, Category: k.category, TotalSpent: v})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.YearMonth != b.YearMonth {
			return a.YearMonth < b.YearMonth
		}
		if !a.TotalSpent.Equal(b.TotalSpent) {
			return a.TotalSpent.GreaterThan(b.TotalSpent)
		}
		return a.Category < b.Category
	})
	return out
}

// MonthlySummary reports income, expenses, net and savings rate per month.
// Income counts only the Income category, so money received from friends
// or refunds filed elsewhere does not inflate it.
func MonthlySummary(ledger []model.EnrichedTransaction) []model.MonthlySummary {
	rows := make(map[string]*model.MonthlySummary)
	get := func(month string) *model.MonthlySummary {
		r, ok := rows[month]
		if !ok {
			r = &model.MonthlySummary{YearMonth: month}
			rows[month] = r
		}
		return r
	}

	for _, txn := range ledger {
		if txn.Category == model.CategoryIncome {
			r := get(txn.YearMonth)
			r.Income = r.Income.Add(txn.Amount)
		}
	}
	for _, txn := range spend(ledger) {
		r := get(txn.YearMonth)
		r.Expenses = r.Expenses.Add(txn.AbsAmount)
	}

	out := make([]model.MonthlySummary, 0, len(rows))
	for _, r := range rows {
		r.Net = r.Income.Sub(r.Expenses)
		if !r.Income.IsZero() {
			r.SavingsRate = r.Net.Div(r.Income).Round(3).InexactFloat64()
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YearMonth < out[j].YearMonth })
	return out
}

// RunningBalance returns the ledger ordered by date with each row's
// balance after it posts, starting from start.
func RunningBalance(ledger []model.EnrichedTransaction, start decimal.Decimal) []model.EnrichedTransaction {
	out := make([]model.EnrichedTransaction, len(ledger))
	copy(out, ledger)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	balance := start
	for i := range out {
		balance = balance.Add(out[i].Amount)
		out[i].RunningBalance = balance
	}
	return out
}

// AnomalySubset returns the flagged rows, largest first.
func AnomalySubset(ledger []model.EnrichedTransaction) []model.EnrichedTransaction {
	var out []model.EnrichedTransaction
	for _, txn := range ledger {
		if txn.IsAnomaly {
			out = append(out, txn)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AbsAmount.GreaterThan(out[j].AbsAmount) })
	return out
}
