package importer

import "github.com/cleared-dev/findash/internal/model"

// ChaseProfile parses Chase credit card CSV exports.
type ChaseProfile struct{}

var chaseLayout = columnLayout{
	date:        "Transaction Date",
	description: "Description",
	amount:      "Amount",
	category:    "Category",
}

// Name returns the profile name.
func (p *ChaseProfile) Name() string { return "chase" }

// Detect matches on the Transaction Date / Post Date header pair.
func (p *ChaseProfile) Detect(t *Table) bool {
	return t.HasColumns("Transaction Date", "Post Date", "Description", "Amount")
}

// Normalize keeps Chase's own category label in BankCategory.
func (p *ChaseProfile) Normalize(t *Table) ([]model.Transaction, int, error) {
	return chaseLayout.normalize(t)
}
