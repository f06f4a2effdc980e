package detect

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/findash/internal/enrich"
	"github.com/cleared-dev/findash/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func row(when time.Time, desc, amount, category string) model.EnrichedTransaction {
	txn := enrich.Derive(model.EnrichedTransaction{
		Transaction: model.Transaction{Date: when, Description: desc, Amount: dec(amount)},
	})
	txn.Category = category
	return txn
}
