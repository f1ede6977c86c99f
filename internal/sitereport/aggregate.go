package sitereport

import (
	"math"
	"sort"
	"strconv"

	"github.com/kittyguard/harmreport/internal/dataset"
	"github.com/kittyguard/harmreport/internal/harm"
)

// AggregateRow is one (user, site) pair's mean harm vector.
type AggregateRow struct {
	UserID int
	Site   string
	Means  harm.Scores
}

// Aggregate groups visits by (user, site) and averages each category,
// skipping NaN values. Rows come back sorted by user id then site name; that
// order is the tie-break base for the top-5 selection downstream.
func Aggregate(visits []Visit) []AggregateRow {
	type key struct {
		id   int
		site string
	}
	groups := make(map[key][]harm.Scores)
	var keys []key
	for _, v := range visits {
		k := key{v.UserID, v.Site}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], v.Scores)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].id != keys[j].id {
			return keys[i].id < keys[j].id
		}
		return keys[i].site < keys[j].site
	})

	rows := make([]AggregateRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, AggregateRow{
			UserID: k.id,
			Site:   k.site,
			Means:  harm.Mean(groups[k]),
		})
	}
	return rows
}

func formatScore(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteAggregate persists the aggregate as its own CSV artifact. The site
// pipeline always writes this before deriving statistics.
func WriteAggregate(path string, rows []AggregateRow) error {
	columns := append([]string{"id", "site"}, harm.Categories...)
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		rec := make([]string, 0, len(columns))
		rec = append(rec, strconv.Itoa(r.UserID), r.Site)
		for _, v := range r.Means {
			rec = append(rec, formatScore(v))
		}
		out = append(out, rec)
	}
	return dataset.Write(path, columns, out)
}

// LoadAggregate reads a previously persisted aggregate artifact.
func LoadAggregate(path string) ([]AggregateRow, error) {
	t, err := dataset.Load(path, RequiredColumns)
	if err != nil {
		return nil, err
	}
	rows := make([]AggregateRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		r := AggregateRow{
			UserID: t.IntField(row, "id"),
			Site:   t.Field(row, "site"),
		}
		for c, name := range harm.Categories {
			r.Means[c] = t.FloatField(row, name)
		}
		rows = append(rows, r)
	}
	return rows, nil
}
