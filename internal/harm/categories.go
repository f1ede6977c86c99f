// Package harm holds the fixed harm-category vocabulary shared by the chat
// and site pipelines, plus the numeric helpers both aggregations rely on.
package harm

import "math"

// Categories is the fixed category set, in declared order. The order matters:
// ties in "highest mean category" resolve to the first category in this slice.
var Categories = []string{
	"abuse",
	"censure",
	"discrimination",
	"hate",
	"sexual",
	"violence",
}

// Scores is one row's (or one aggregate's) score per category, indexed in
// Categories order. Missing source values are represented as NaN.
type Scores [6]float64

// Mean averages the vectors element-wise, skipping NaN entries per category.
// A category with no valid value across all rows yields NaN.
func Mean(rows []Scores) Scores {
	var out Scores
	for c := range Categories {
		sum := 0.0
		n := 0
		for _, r := range rows {
			if math.IsNaN(r[c]) {
				continue
			}
			sum += r[c]
			n++
		}
		if n == 0 {
			out[c] = math.NaN()
		} else {
			out[c] = sum / float64(n)
		}
	}
	return out
}

// Sum totals one vector across all categories, skipping NaN entries.
func (s Scores) Sum() float64 {
	total := 0.0
	for _, v := range s {
		if math.IsNaN(v) {
			continue
		}
		total += v
	}
	return total
}

// ArgMax returns the index and value of the highest score. Exact ties go to
// the earliest category; NaN entries never win.
func (s Scores) ArgMax() (int, float64) {
	best := -1
	bestVal := math.Inf(-1)
	for c, v := range s {
		if math.IsNaN(v) {
			continue
		}
		if v > bestVal {
			best = c
			bestVal = v
		}
	}
	if best < 0 {
		return 0, math.NaN()
	}
	return best, bestVal
}

// Map renders the vector as a category-name -> value map with exactly the six
// fixed keys. NaN entries come out as 0 so the result is JSON-encodable.
func (s Scores) Map() map[string]float64 {
	out := make(map[string]float64, len(Categories))
	for c, name := range Categories {
		v := s[c]
		if math.IsNaN(v) {
			v = 0
		}
		out[name] = v
	}
	return out
}
