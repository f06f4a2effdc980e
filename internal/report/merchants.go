package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/findash/internal/model"
)

// DefaultTopMerchants is the default size of the merchant ranking.
const DefaultTopMerchants = 12

// TopMerchants ranks merchants by total spend, largest first, and keeps
// at most n. Equal totals keep merchant-name order.
func TopMerchants(ledger []model.EnrichedTransaction, n int) []model.MerchantRanking {
	groups := make(map[string][]model.EnrichedTransaction)
	for _, txn := range spend(ledger) {
		groups[txn.Merchant] = append(groups[txn.Merchant], txn)
	}
	names := make([]string, 0, len(groups))
	for m := range groups {
		names = append(names, m)
	}
	sort.Strings(names)

	out := make([]model.MerchantRanking, 0, len(names))
	for _, m := range names {
		g := groups[m]
		total := sumAbs(g)
		out = append(out, model.MerchantRanking{
			Merchant:     m,
			TotalSpent:   total.Round(2),
			Transactions: len(g),
			AvgAmount:    total.Div(decimal.NewFromInt(int64(len(g)))).Round(2),
			Category:     model.ModeCategory(g),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSpent.GreaterThan(out[j].TotalSpent) })

	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// SpendingByDow totals spend per weekday, Monday first. Days without
// spend are omitted.
func SpendingByDow(ledger []model.EnrichedTransaction) []model.DowBreakdown {
	var days [7][]model.EnrichedTransaction
	for _, txn := range spend(ledger) {
		days[txn.DayOfWeek] = append(days[txn.DayOfWeek], txn)
	}

	var out []model.DowBreakdown
	for i, g := range days {
		if len(g) == 0 {
			continue
		}
		total := sumAbs(g)
		out = append(out, model.DowBreakdown{
			DayName:      time.Weekday((i + 1) % 7).String(),
			TotalSpent:   total.Round(2),
			AvgPerTxn:    total.Div(decimal.NewFromInt(int64(len(g)))).Round(2),
			Transactions: len(g),
		})
	}
	return out
}

func sumAbs(txns []model.EnrichedTransaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.AbsAmount)
	}
	return total
}
