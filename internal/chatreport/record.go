// Package chatreport builds the per-user chat harmfulness report: top harmful
// words, sent/received harmful-vs-clean ratios, offending messages, and a
// generated Korean summary.
package chatreport

import (
	"github.com/kittyguard/harmreport/internal/dataset"
	"github.com/kittyguard/harmreport/internal/harm"
)

// RequiredColumns is the chat dataset schema. Loading fails fast when any of
// these is absent.
var RequiredColumns = []string{
	"text", "intensity", "id",
	"abuse", "censure", "discrimination",
	"hate", "sexual", "violence",
	"prior_harmfulness", "ai_harmfulness",
	"harmful_words",
	"replacement_format", "replacement_text",
	"spend_receive",
}

// Record is one chat message row.
type Record struct {
	UserID            int
	Text              string
	Intensity         float64
	Scores            harm.Scores
	PriorHarmfulness  int
	AIHarmfulness     int
	HarmfulWords      string // comma-joined, normalized via harm.SplitWords
	ReplacementFormat string
	ReplacementText   string
	SpendReceive      int // 1 = sent, 0 = received
}

// LoadRecords reads the chat dataset wholesale, preserving row order.
func LoadRecords(path string) ([]Record, error) {
	t, err := dataset.Load(path, RequiredColumns)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		r := Record{
			UserID:            t.IntField(row, "id"),
			Text:              t.Field(row, "text"),
			Intensity:         t.FloatField(row, "intensity"),
			PriorHarmfulness:  t.IntField(row, "prior_harmfulness"),
			AIHarmfulness:     t.IntField(row, "ai_harmfulness"),
			HarmfulWords:      t.Field(row, "harmful_words"),
			ReplacementFormat: t.Field(row, "replacement_format"),
			ReplacementText:   t.Field(row, "replacement_text"),
			SpendReceive:      t.IntField(row, "spend_receive"),
		}
		for c, name := range harm.Categories {
			r.Scores[c] = t.FloatField(row, name)
		}
		records = append(records, r)
	}
	return records, nil
}
