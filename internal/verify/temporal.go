package verify

import (
	"regexp"
	"sort"
)

// yearRe matches four-digit year tokens of the current century
var yearRe = regexp.MustCompile(`20\d{2}`)

// UnsupportedYears returns the years referenced in the draft that the
// evidence text never mentions, sorted ascending. A non-empty result
// fails the time dimension.
func UnsupportedYears(draftText, evidenceText string) []string {
	draftYears := yearRe.FindAllString(draftText, -1)
	if len(draftYears) == 0 {
		return nil
	}

	evidenceYears := make(map[string]bool)
	for _, y := range yearRe.FindAllString(evidenceText, -1) {
		evidenceYears[y] = true
	}

	seen := make(map[string]bool)
	var missing []string
	for _, y := range draftYears {
		if !evidenceYears[y] && !seen[y] {
			seen[y] = true
			missing = append(missing, y)
		}
	}
	sort.Strings(missing)
	return missing
}
