package features

import "unicode/utf8"

// FilterByID selects every record whose identifier equals one of ids.
// Integer terms are compared by their decimal form. Candidates that are
// not exactly IDLength characters are reported and dropped. Matches are
// concatenated in input order and duplicates are kept.
func FilterByID(ids []Term, table Table) ([]Record, []Warning) {
	var warnings []Warning

	valid := make([]string, 0, len(ids))
	for _, t := range ids {
		if !t.IsText() && !t.IsInt() {
			warnings = append(warnings, newWarning(WarnInvalidType, FilterID, t.String(),
				"site ID %s cannot be converted to a string and was skipped", t))
			continue
		}
		id := t.String()
		if n := utf8.RuneCountInString(id); n != IDLength {
			warnings = append(warnings, newWarning(WarnInvalidLength, FilterID, id,
				"site ID %q has %d characters, want %d; skipped", id, n, IDLength))
			continue
		}
		valid = append(valid, id)
	}

	if len(valid) == 0 {
		warnings = append(warnings, newWarning(WarnNoValidTerms, FilterID, "",
			"no valid site IDs were provided"))
		return nil, warnings
	}

	var out []Record
	for _, id := range valid {
		before := len(out)
		for _, r := range table {
			if r.ID == id {
				out = append(out, r)
			}
		}
		if len(out) == before {
			warnings = append(warnings, newWarning(WarnNoMatch, FilterID, id,
				"site ID %q does not exist in the dataset", id))
		}
	}

	return out, warnings
}
