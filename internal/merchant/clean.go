// Package merchant turns raw bank descriptions into stable merchant names.
package merchant

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// noise matches card-processor clutter: store numbers ("#1234"), long digit
// runs, short trailing codes, asterisk processor tokens ("SQ *SHOP"), and
// runs of whitespace.
var noise = regexp.MustCompile(`(?i)\s*#\d+|\s*\d{4,}|\s+\d{1,3}$|\*+\S*|\s{2,}`)

var spaces = regexp.MustCompile(`\s{2,}`)

// Clean strips noise from a description and title-cases the rest, so the
// same merchant collapses to one name across statement cycles.
func Clean(description string) string {
	name := strings.TrimSpace(description)
	name = noise.ReplaceAllString(name, " ")
	name = strings.TrimSpace(spaces.ReplaceAllString(name, " "))
	return cases.Title(language.Und).String(name)
}
