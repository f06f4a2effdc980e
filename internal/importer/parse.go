package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDateLayouts are tried in order; the first that parses wins.
// Month-first is preferred over day-first for ambiguous dates.
var DefaultDateLayouts = []string{
	"2006-1-2",
	"1/2/2006",
	"2/1/2006",
	"1-2-2006",
	"2006/1/2",
}

var amountReplacer = strings.NewReplacer(
	"$", "",
	"£", "",
	"€", "",
	",", "",
	" ", "",
	"\u00a0", "",
)

// ParseAmount converts a bank amount cell to a decimal. Currency symbols,
// thousands separators and spaces are removed, and accounting notation
// "(12.34)" is read as -12.34. A blank cell yields ErrEmptyAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := amountReplacer.Replace(strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	neg := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		neg = true
		clean = clean[1 : len(clean)-1]
	}
	clean = strings.TrimPrefix(clean, "+")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// ParseDate tries each layout in order and returns the first successful
// parse. It returns the zero time when nothing matches; callers drop such
// rows instead of failing.
func ParseDate(s string, layouts ...string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
