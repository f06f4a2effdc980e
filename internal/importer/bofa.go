package importer

import "github.com/cleared-dev/findash/internal/model"

// BofAProfile parses Bank of America checking exports.
type BofAProfile struct{}

var bofaLayout = columnLayout{
	date:        "Date",
	description: "Description",
	amount:      "Amount",
}

// Name returns the profile name.
func (p *BofAProfile) Name() string { return "bofa" }

// Detect matches on the Running Bal. column next to Date/Description/Amount.
func (p *BofAProfile) Detect(t *Table) bool {
	return t.HasColumns("Date", "Description", "Amount", "Running Bal.")
}

// Normalize reads the signed Amount column; parenthesized amounts are negative.
func (p *BofAProfile) Normalize(t *Table) ([]model.Transaction, int, error) {
	return bofaLayout.normalize(t)
}
