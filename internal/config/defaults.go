package config

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/findash/internal/model"
)

// Default returns a starter rule set for a new project.
func Default() *Rules {
	return &Rules{
		Categories: RuleList{
			{Category: model.CategoryIncome, Keywords: []string{"payroll", "direct dep", "salary", "interest paid"}},
			{Category: model.CategoryTransfer, Keywords: []string{"transfer", "autopay", "payment thank you", "zelle to"}},
			{Category: "Groceries", Keywords: []string{"kroger", "wholefds", "whole foods", "trader joe", "safeway", "aldi"}},
			{Category: "Fast Food", Keywords: []string{"mcdonald", "taco bell", "wendy", "chick-fil-a", "burger king"}},
			{Category: "Dining", Keywords: []string{"restaurant", "chipotle", "starbucks", "doordash", "grubhub"}},
			{Category: "Gas", Keywords: []string{"shell", "exxon", "chevron", "bp#", "speedway"}},
			{Category: "Subscriptions", Keywords: []string{"netflix", "spotify", "hulu", "disney+", "apple.com/bill"}},
			{Category: "Shopping", Keywords: []string{"amazon", "amzn", "target", "walmart", "best buy"}},
			{Category: "Transportation", Keywords: []string{"uber", "lyft", "parking", "metro"}},
			{Category: "Utilities", Keywords: []string{"electric", "water", "comcast", "verizon", "at&t"}},
			{Category: "Health", Keywords: []string{"pharmacy", "cvs", "walgreens", "dental"}},
			{Category: "Housing", Keywords: []string{"rent", "mortgage"}},
		},
		Budgets: BudgetList{
			{Category: "Groceries", Limit: decimal.NewFromInt(500)},
			{Category: "Dining", Limit: decimal.NewFromInt(200)},
			{Category: "Shopping", Limit: decimal.NewFromInt(300)},
		},
		TransferSignals: append([]string(nil), DefaultTransferSignals...),
	}
}
