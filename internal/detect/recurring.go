package detect

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/findash/internal/model"
)

// RecurringOptions tunes the recurring-charge heuristic.
type RecurringOptions struct {
	MinOccurrences  int
	AmountTolerance decimal.Decimal // max spread between largest and smallest charge
	DayTolerance    float64         // allowed distance of the mean gap from a period
	Periods         []float64       // candidate periods in days
}

// DefaultRecurringOptions returns weekly, bi-weekly and monthly periods
// with a $1 amount spread and ±5 days.
func DefaultRecurringOptions() RecurringOptions {
	return RecurringOptions{
		MinOccurrences:  2,
		AmountTolerance: decimal.NewFromInt(1),
		DayTolerance:    5,
		Periods:         []float64{7, 14, 28, 29, 30, 31},
	}
}

// Recurring groups expenses by merchant and returns the merchants whose
// charges repeat: enough occurrences, near-constant amounts, and a mean
// gap between consecutive charges close to one of the periods. Results are
// ordered by average amount, largest first.
//
// This is a coarse heuristic. The mean gap hides irregular spacing, and
// quarterly or bi-monthly bills fall outside every period.
func Recurring(ledger []model.EnrichedTransaction, opts RecurringOptions) []model.RecurringGroup {
	minOcc := max(opts.MinOccurrences, 2)

	var order []string
	groups := make(map[string][]model.EnrichedTransaction)
	for _, txn := range ledger {
		if !txn.IsExpense {
			continue
		}
		if _, seen := groups[txn.Merchant]; !seen {
			order = append(order, txn.Merchant)
		}
		groups[txn.Merchant] = append(groups[txn.Merchant], txn)
	}

	var result []model.RecurringGroup
	for _, m := range order {
		g := groups[m]
		if len(g) < minOcc {
			continue
		}
		sort.SliceStable(g, func(a, b int) bool { return g[a].Date.Before(g[b].Date) })

		lo, hi, total := g[0].AbsAmount, g[0].AbsAmount, decimal.Zero
		for _, txn := range g {
			lo = decimal.Min(lo, txn.AbsAmount)
			hi = decimal.Max(hi, txn.AbsAmount)
			total = total.Add(txn.AbsAmount)
		}
		if hi.Sub(lo).GreaterThan(opts.AmountTolerance) {
			continue
		}

		interval := meanGapDays(g)
		if !nearPeriod(interval, opts.Periods, opts.DayTolerance) {
			continue
		}

		result = append(result, model.RecurringGroup{
			Merchant:     m,
			Category:     model.ModeCategory(g),
			AvgAmount:    total.Div(decimal.NewFromInt(int64(len(g)))).Round(2),
			Occurrences:  len(g),
			IntervalDays: roundTo(interval, 1),
		})
	}

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].AvgAmount.GreaterThan(result[b].AvgAmount)
	})
	return result
}

func meanGapDays(sorted []model.EnrichedTransaction) float64 {
	var sum float64
	for i := 1; i < len(sorted); i++ {
		sum += sorted[i].Date.Sub(sorted[i-1].Date).Hours() / 24
	}
	return sum / float64(len(sorted)-1)
}

func nearPeriod(interval float64, periods []float64, tol float64) bool {
	for _, p := range periods {
		if interval-p <= tol && p-interval <= tol {
			return true
		}
	}
	return false
}

func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
