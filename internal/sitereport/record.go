// Package sitereport builds the per-user site harmfulness report from visit
// rows: a persisted (user, site) aggregate, per-user category statistics, and
// a generated Korean summary.
package sitereport

import (
	"github.com/kittyguard/harmreport/internal/dataset"
	"github.com/kittyguard/harmreport/internal/harm"
)

// RequiredColumns is the site visit dataset schema.
var RequiredColumns = append([]string{"id", "site"}, harm.Categories...)

// Visit is one site visit (or visit-aggregate) row.
type Visit struct {
	UserID int
	Site   string
	Scores harm.Scores
}

// LoadVisits reads the site dataset wholesale, preserving row order.
func LoadVisits(path string) ([]Visit, error) {
	t, err := dataset.Load(path, RequiredColumns)
	if err != nil {
		return nil, err
	}

	visits := make([]Visit, 0, len(t.Rows))
	for _, row := range t.Rows {
		v := Visit{
			UserID: t.IntField(row, "id"),
			Site:   t.Field(row, "site"),
		}
		for c, name := range harm.Categories {
			v.Scores[c] = t.FloatField(row, name)
		}
		visits = append(visits, v)
	}
	return visits, nil
}
