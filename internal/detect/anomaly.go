package detect

import (
	"math"

	"github.com/cleared-dev/findash/internal/model"
)

const (
	// DefaultAnomalyThreshold is the default z-score above which an expense
	// is flagged.
	DefaultAnomalyThreshold = 2.0
	minAnomalySample        = 3
)

// Anomalies returns a copy of the ledger scored per category. Only
// non-duplicate, non-transfer expenses are scored, and only in categories
// with at least three of them and non-zero spread. Every scored row gets a
// z-score rounded to two places; rows with z above threshold are flagged.
// The test is one-sided: unusually small expenses are never flagged.
func Anomalies(ledger []model.EnrichedTransaction, threshold float64) []model.EnrichedTransaction {
	out := make([]model.EnrichedTransaction, len(ledger))
	groups := make(map[string][]int)
	for i, txn := range ledger {
		txn.IsAnomaly = false
		txn.AnomalyZScore = nil
		out[i] = txn
		if txn.CountsAsSpend() {
			groups[txn.Category] = append(groups[txn.Category], i)
		}
	}

	for _, idx := range groups {
		if len(idx) < minAnomalySample {
			continue
		}
		values := make([]float64, len(idx))
		for j, i := range idx {
			values[j] = out[i].AbsAmount.InexactFloat64()
		}
		mean, std := meanStd(values)
		if std == 0 {
			continue
		}
		for j, i := range idx {
			z := (values[j] - mean) / std
			rounded := math.Round(z*100) / 100
			out[i].AnomalyZScore = &rounded
			out[i].IsAnomaly = z > threshold
		}
	}
	return out
}

// meanStd returns the mean and population standard deviation.
func meanStd(values []float64) (mean, std float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var ss float64
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(ss / float64(len(values)))
}
