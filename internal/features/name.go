package features

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FilterByName selects every record whose location name contains one of
// names after lower-casing both sides. Matches are concatenated in input order, each
// name's matches in table order; a record matched by two names appears
// twice. Non-text terms are rejected and unmatched names are reported.
// The table is not modified.
func FilterByName(names []Term, table Table) ([]Record, []Warning) {
	var warnings []Warning

	type needle struct {
		raw     string
		lowered string
	}

	lower := cases.Lower(language.Und)
	valid := make([]needle, 0, len(names))
	for _, n := range names {
		if !n.IsText() {
			warnings = append(warnings, newWarning(WarnInvalidType, FilterName, n.String(),
				"site name %s is not a string and was skipped", n))
			continue
		}
		valid = append(valid, needle{raw: n.text, lowered: lower.String(n.text)})
	}

	if len(valid) == 0 {
		warnings = append(warnings, newWarning(WarnNoValidTerms, FilterName, "",
			"no valid site names were provided"))
		return nil, warnings
	}

	// Lower-case each location name once rather than per search term.
	locations := make([]string, len(table))
	for i, r := range table {
		locations[i] = lower.String(r.LocationName)
	}

	var out []Record
	for _, n := range valid {
		before := len(out)
		for i, loc := range locations {
			if strings.Contains(loc, n.lowered) {
				out = append(out, table[i])
			}
		}
		if len(out) == before {
			warnings = append(warnings, newWarning(WarnNoMatch, FilterName, n.raw,
				"site name %q does not exist in the dataset", n.raw))
		}
	}

	return out, warnings
}
