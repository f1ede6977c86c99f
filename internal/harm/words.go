package harm

import "strings"

// SplitWords normalizes a comma-joined harmful-word field into an ordered
// list: split on commas, trim whitespace, drop empties. Duplicates are kept;
// counting happens downstream.
func SplitWords(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		w := strings.TrimSpace(p)
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

// HasWords reports whether the field contains at least one word after
// normalization. This is the single definition of "harmful row" used by the
// spend/receive statistics and the report record extraction.
func HasWords(field string) bool {
	return strings.TrimSpace(field) != ""
}

// WordCount is one entry of a frequency ranking.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopWords counts normalized words across all fields and returns the n most
// frequent, descending. Ties keep first-seen order, matching a stable
// value-count over insertion order.
func TopWords(fields []string, n int) []WordCount {
	counts := map[string]int{}
	order := []string{}
	for _, f := range fields {
		for _, w := range SplitWords(f) {
			if _, seen := counts[w]; !seen {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	ranked := make([]WordCount, 0, len(order))
	for _, w := range order {
		ranked = append(ranked, WordCount{Word: w, Count: counts[w]})
	}
	// insertion sort keeps the first-seen order among equal counts
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Count > ranked[j-1].Count; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
