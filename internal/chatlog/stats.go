package chatlog

import "github.com/kittyguard/harmreport/internal/harm"

// Statistics summarizes one user's AI-flagged rows for the triggered report.
type Statistics struct {
	TotalHarmfulEntries int              `json:"total_harmful_entries"`
	HarmfulWordCounts   map[string]int   `json:"harmful_word_counts"`
	Top5HarmfulWords    []harm.WordCount `json:"top_5_harmful_words"`
}

// BuildStatistics counts normalized harmful words across the entries and
// keeps the five most frequent, ties in first-seen order.
func BuildStatistics(entries []Entry) Statistics {
	stats := Statistics{
		HarmfulWordCounts: map[string]int{},
		Top5HarmfulWords:  []harm.WordCount{},
	}
	if len(entries) == 0 {
		return stats
	}

	stats.TotalHarmfulEntries = len(entries)

	fields := make([]string, 0, len(entries))
	for _, e := range entries {
		fields = append(fields, e.HarmfulWords)
	}
	for _, wc := range harm.TopWords(fields, 0) {
		stats.HarmfulWordCounts[wc.Word] = wc.Count
	}
	stats.Top5HarmfulWords = harm.TopWords(fields, 5)
	return stats
}
