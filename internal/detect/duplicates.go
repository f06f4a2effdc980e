// Package detect annotates a ledger with duplicate and anomaly flags and
// finds recurring charges.
package detect

import (
	"sort"
	"time"

	"github.com/cleared-dev/findash/internal/model"
)

// DefaultDuplicateWindowDays is the default ± day window for duplicates.
const DefaultDuplicateWindowDays = 2

type dupKey struct {
	amount      string
	description string
}

// Duplicates returns a copy of the ledger with IsDuplicate set on every row
// that has a partner with the same amount and description dated within
// windowDays (inclusive). Both sides of a matching pair are flagged.
func Duplicates(ledger []model.EnrichedTransaction, windowDays int) []model.EnrichedTransaction {
	out := make([]model.EnrichedTransaction, len(ledger))
	buckets := make(map[dupKey][]int)
	for i, txn := range ledger {
		txn.IsDuplicate = false
		out[i] = txn
		k := dupKey{amount: txn.Amount.String(), description: txn.Description}
		buckets[k] = append(buckets[k], i)
	}

	window := time.Duration(windowDays) * 24 * time.Hour
	for _, idx := range buckets {
		if len(idx) < 2 {
			continue
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return out[idx[a]].Date.Before(out[idx[b]].Date)
		})
		// Sorted by date, a row's nearest partner is its neighbour, so one
		// pass over adjacent pairs finds every row with a match.
		for j := 1; j < len(idx); j++ {
			prev, cur := idx[j-1], idx[j]
			if out[cur].Date.Sub(out[prev].Date) <= window {
				out[prev].IsDuplicate = true
				out[cur].IsDuplicate = true
			}
		}
	}
	return out
}
