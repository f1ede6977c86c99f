package sitereport

import (
	"math"
	"sort"

	"github.com/kittyguard/harmreport/internal/harm"
)

// CategoryAverage names the category whose mean is highest for a user.
type CategoryAverage struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
}

// SiteSum is one site ranked by its summed harm score.
type SiteSum struct {
	Site string  `json:"site"`
	Sum  float64 `json:"sum"`
}

// UserStats is the per-user statistics block embedded in the report entry.
type UserStats struct {
	HighestAvgCategory CategoryAverage    `json:"highest_avg_category"`
	Top5SitesBySum     []SiteSum          `json:"top5_sites_by_sum"`
	CategoryMeans      map[string]float64 `json:"category_means"`
}

// BuildUserStats derives statistics per user from the aggregate rows. Users
// come back in the order they first appear in the aggregate (ascending id,
// since the aggregate is sorted).
func BuildUserStats(agg []AggregateRow) (ids []int, stats map[int]UserStats) {
	groups := make(map[int][]AggregateRow)
	for _, r := range agg {
		if _, ok := groups[r.UserID]; !ok {
			ids = append(ids, r.UserID)
		}
		groups[r.UserID] = append(groups[r.UserID], r)
	}

	stats = make(map[int]UserStats, len(ids))
	for _, id := range ids {
		rows := groups[id]

		vectors := make([]harm.Scores, 0, len(rows))
		for _, r := range rows {
			vectors = append(vectors, r.Means)
		}
		catMeans := harm.Mean(vectors)
		bestIdx, bestVal := catMeans.ArgMax()
		if math.IsNaN(bestVal) {
			bestVal = 0
		}

		sums := make([]SiteSum, 0, len(rows))
		for _, r := range rows {
			sums = append(sums, SiteSum{Site: r.Site, Sum: r.Means.Sum()})
		}
		sort.SliceStable(sums, func(i, j int) bool { return sums[i].Sum > sums[j].Sum })
		if len(sums) > 5 {
			sums = sums[:5]
		}

		stats[id] = UserStats{
			HighestAvgCategory: CategoryAverage{
				Category: harm.Categories[bestIdx],
				Average:  bestVal,
			},
			Top5SitesBySum: sums,
			CategoryMeans:  catMeans.Map(),
		}
	}
	return ids, stats
}

// HarmfulCategories returns the category names whose aggregated mean exceeds
// zero for one user, in declared category order. Unknown users yield nil.
func HarmfulCategories(agg []AggregateRow, userID int) []string {
	var vectors []harm.Scores
	for _, r := range agg {
		if r.UserID == userID {
			vectors = append(vectors, r.Means)
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
