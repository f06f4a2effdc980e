// Package categorize assigns categories from keyword rules.
package categorize

import (
	"strings"

	"github.com/cleared-dev/findash/internal/config"
	"github.com/cleared-dev/findash/internal/model"
)

type rule struct {
	category string
	keywords []string // lowercased, non-empty
}

// Categorizer applies first-match-wins keyword rules, with a transfer
// override driven by BankCategory.
type Categorizer struct {
	rules    []rule
	transfer map[string]bool
}

// New compiles a rule set.
func New(rules *config.Rules) *Categorizer {
	c := &Categorizer{transfer: make(map[string]bool)}
	for _, r := range rules.Categories {
		cr := rule{category: r.Category}
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				cr.keywords = append(cr.keywords, kw)
			}
		}
		c.rules = append(c.rules, cr)
	}
	for _, s := range rules.TransferSignals {
		c.transfer[strings.ToLower(strings.TrimSpace(s))] = true
	}
	return c
}

// Category returns the category for a row. A bank category listed as a
// transfer signal always yields Transfer; otherwise the first category,
// in configured order, with a keyword contained in the description wins.
func (c *Categorizer) Category(description, bankCategory string) string {
	if c.transfer[strings.ToLower(strings.TrimSpace(bankCategory))] {
		return model.CategoryTransfer
	}
	desc := strings.ToLower(description)
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(desc, kw) {
				return r.category
			}
		}
	}
	return model.CategoryOther
}

// Apply returns a copy of the ledger with Category set on every row.
func (c *Categorizer) Apply(ledger []model.EnrichedTransaction) []model.EnrichedTransaction {
	out := make([]model.EnrichedTransaction, len(ledger))
	for i, txn := range ledger {
		txn.Category = c.Category(txn.Description, txn.BankCategory)
		out[i] = txn
	}
	return out
}
