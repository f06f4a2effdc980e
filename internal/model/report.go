package model

import "github.com/shopspring/decimal"

// MonthlyCategorySummary is total spend for one category in one month.
type MonthlyCategorySummary struct {
	YearMonth  string
	Category   string
	TotalSpent decimal.Decimal
}

// MonthlySummary is income against expenses for one month.
type MonthlySummary struct {
	YearMonth   string
	Income      decimal.Decimal
	Expenses    decimal.Decimal
	Net         decimal.Decimal
	SavingsRate float64 // net / income, 0 when income is 0
}

// MerchantRanking is one row of the top-merchants view.
type MerchantRanking struct {
	Merchant     string
	TotalSpent   decimal.Decimal
	Transactions int
	AvgAmount    decimal.Decimal
	Category     string
}

// DowBreakdown is spend for one weekday.
type DowBreakdown struct {
	DayName      string
	TotalSpent   decimal.Decimal
	AvgPerTxn    decimal.Decimal
	Transactions int
}

// CategoryChange is one category's spend in the two compared months.
type CategoryChange struct {
	Category string
	Current  decimal.Decimal
	Previous decimal.Decimal
	Change   decimal.Decimal // Current - Previous
}

// MonthOverMonth compares the two most recent months with spend.
type MonthOverMonth struct {
	CurrentLabel  string
	PreviousLabel string
	Categories    []CategoryChange // by current-month spend, descending
}

// BudgetStatus is current-month spend against a configured limit.
type BudgetStatus struct {
	Category string
	Budget   decimal.Decimal
	Spent    decimal.Decimal
	PctUsed  float64
}

// RecurringGroup describes a merchant whose charges look like a subscription.
type RecurringGroup struct {
	Merchant     string
	Category     string
	AvgAmount    decimal.Decimal
	Occurrences  int
	IntervalDays float64
}
