package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/findash/internal/config"
	"github.com/cleared-dev/findash/internal/model"
)

// CompareMonths compares category spend in the two most recent months
// that have any. It returns nil when fewer than two months have spend.
func CompareMonths(ledger []model.EnrichedTransaction) *model.MonthOverMonth {
	byMonth := make(map[string]map[string]decimal.Decimal)
	for _, txn := range spend(ledger) {
		m, ok := byMonth[txn.YearMonth]
		if !ok {
			m = make(map[string]decimal.Decimal)
			byMonth[txn.YearMonth] = m
		}
		m[txn.Category] = m[txn.Category].Add(txn.AbsAmount)
	}
	if len(byMonth) < 2 {
		return nil
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	currLabel, prevLabel := months[len(months)-1], months[len(months)-2]
	curr, prev := byMonth[currLabel], byMonth[prevLabel]

	seen := make(map[string]bool)
	var changes []model.CategoryChange
	for _, totals := range []map[string]decimal.Decimal{curr, prev} {
		for c := range totals {
			if seen[c] {
				continue
			}
			seen[c] = true
			changes = append(changes, model.CategoryChange{
				Category: c,
				Current:  curr[c].Round(2),
				Previous: prev[c].Round(2),
				Change:   curr[c].Sub(prev[c]).Round(2),
			})
		}
	}
	sort.Slice(changes, func(i, j int) bool {
		a, b := changes[i], changes[j]
		if !a.Current.Equal(b.Current) {
			return a.Current.GreaterThan(b.Current)
		}
		return a.Category < b.Category
	})

	return &model.MonthOverMonth{CurrentLabel: currLabel, PreviousLabel: prevLabel, Categories: changes}
}

// Budgets measures spend in the latest month with spend against each
// configured limit, highest percentage first. A limit of zero or less
// reports 0%.
func Budgets(ledger []model.EnrichedTransaction, budgets config.BudgetList) []model.BudgetStatus {
	if len(budgets) == 0 {
		return nil
	}
	rows := spend(ledger)
	if len(rows) == 0 {
		return nil
	}

	var current string
	for _, txn := range rows {
		if txn.YearMonth > current {
			current = txn.YearMonth
		}
	}
	spent := make(map[string]decimal.Decimal)
	for _, txn := range rows {
		if txn.YearMonth == current {
			spent[txn.Category] = spent[txn.Category].Add(txn.AbsAmount)
		}
	}

	hundred := decimal.NewFromInt(100)
	out := make([]model.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		s := spent[b.Category]
		var pct float64
		if b.Limit.IsPositive() {
			pct = s.Div(b.Limit).Mul(hundred).Round(1).InexactFloat64()
		}
		out = append(out, model.BudgetStatus{Category: b.Category, Budget: b.Limit, Spent: s.Round(2), PctUsed: pct})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PctUsed > out[j].PctUsed })
	return out
}
