package chatreport

import (
	"math"
	"sort"

	"github.com/kittyguard/harmreport/internal/harm"
)

// DirectionStats summarizes one direction (sent or received) of a user's
// messages. A row is harmful when its harmful-words field is non-empty after
// normalization.
type DirectionStats struct {
	TotalMessages   int     `json:"total_messages"`
	HarmfulMessages int     `json:"harmful_messages"`
	CleanMessages   int     `json:"clean_messages"`
	HarmfulPct      float64 `json:"harmful_pct"`
	CleanPct        float64 `json:"clean_pct"`
}

// SpendReceiveStats splits rows by direction flag: spend_receive=1 is sent,
// 0 is received.
type SpendReceiveStats struct {
	Spend   DirectionStats `json:"spend"`
	Receive DirectionStats `json:"receive"`
}

// Half values round to even, so complementary percentages keep summing
// to 100.0.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

func directionStats(records []Record, direction int) DirectionStats {
	var s DirectionStats
	for _, r := range records {
		if r.SpendReceive != direction {
			continue
		}
		s.TotalMessages++
		if harm.HasWords(r.HarmfulWords) {
			s.HarmfulMessages++
		}
	}
	s.CleanMessages = s.TotalMessages - s.HarmfulMessages
	if s.TotalMessages > 0 {
		s.HarmfulPct = round1(float64(s.HarmfulMessages) / float64(s.TotalMessages) * 100)
		s.CleanPct = round1(float64(s.CleanMessages) / float64(s.TotalMessages) * 100)
	}
	return s
}

// BuildSpendReceiveStats computes both directions for one user's rows.
// Empty groups stay all-zero, percentages included.
func BuildSpendReceiveStats(records []Record) SpendReceiveStats {
	return SpendReceiveStats{
		Spend:   directionStats(records, 1),
		Receive: directionStats(records, 0),
	}
}

// TopHarmfulWords ranks the user's normalized harmful words and keeps the n
// most frequent, ties in first-seen order.
func TopHarmfulWords(records []Record, n int) []harm.WordCount {
	fields := make([]string, 0, len(records))
	for _, r := range records {
		fields = append(fields, r.HarmfulWords)
	}
	return harm.TopWords(fields, n)
}

// MessageRecord is one offending message kept in the report: its text and the
// normalized word list that flagged it.
type MessageRecord struct {
	Text         string   `json:"text"`
	HarmfulWords []string `json:"harmful_words"`
}

// HarmfulMessages extracts, in row order, every message whose harmful-words
// field is non-empty.
func HarmfulMessages(records []Record) []MessageRecord {
	out := []MessageRecord{}
	for _, r := range records {
		if !harm.HasWords(r.HarmfulWords) {
			continue
		}
		out = append(out, MessageRecord{
			Text:         r.Text,
			HarmfulWords: harm.SplitWords(r.HarmfulWords),
		})
	}
	return out
}

// HarmfulCategories returns the category names whose mean score exceeds zero
// across one user's rows, in declared category order. Unknown users yield nil.
func HarmfulCategories(records []Record, userID int) []string {
	var vectors []harm.Scores
	for _, r := range records {
		if r.UserID == userID {
			vectors = append(vectors, r.Scores)
		}
	}
	if len(vectors) == 0 {
		return nil
	}
	means := harm.Mean(vectors)
	var out []string
	for c, name := range harm.Categories {
		if !math.IsNaN(means[c]) && means[c] > 0 {
			out = append(out, name)
		}
	}
	return out
}

// GroupByUser splits rows per user id, preserving row order inside each
// group. User ids come back ascending.
func GroupByUser(records []Record) (ids []int, groups map[int][]Record) {
	groups = make(map[int][]Record)
	for _, r := range records {
		if _, ok := groups[r.UserID]; !ok {
			ids = append(ids, r.UserID)
		}
		groups[r.UserID] = append(groups[r.UserID], r)
	}
	sort.Ints(ids)
	return ids, groups
}
