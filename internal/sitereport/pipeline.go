package sitereport

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kittyguard/harmreport/internal/ai"
	"github.com/kittyguard/harmreport/internal/report"
)

// GenerateOptions are the fixed sampling parameters of the site report call.
var GenerateOptions = ai.Options{Temperature: 0.7, MaxTokens: 512}

// Entry is one user's emitted site report record.
type Entry struct {
	UserID int `json:"user_id"`
	UserStats
	Report string `json:"report"`
}

func (e *Entry) Key() string           { return fmt.Sprintf("site user %d", e.UserID) }
func (e *Entry) Prompt() string        { return RenderPrompt(e.UserID, e.UserStats) }
func (e *Entry) Complete(reply string) { e.Report = reply }

// Generate runs the whole site pipeline: load visits, aggregate by
// (user, site), persist the aggregate artifact, derive per-user statistics,
// request a report per user, emit the JSON array artifact. maxUsers > 0
// limits generation to the first users in aggregate order.
func Generate(ctx context.Context, inputPath, aggPath, outputPath string, maxUsers int, provider ai.Provider, log *zap.Logger) ([]*Entry, error) {
	visits, err := LoadVisits(inputPath)
	if err != nil {
		return nil, err
	}

	agg := Aggregate(visits)
	if err := WriteAggregate(aggPath, agg); err != nil {
		return nil, err
	}
	log.Info("aggregate written", zap.String("path", aggPath), zap.Int("rows", len(agg)))

	ids, stats := BuildUserStats(agg)
	if maxUsers > 0 && len(ids) > maxUsers {
		ids = ids[:maxUsers]
	}

	entries := make([]*Entry, 0, len(ids))
	items := make([]report.Item, 0, len(ids))
	for _, id := range ids {
		e := &Entry{UserID: id, UserStats: stats[id]}
		entries = append(entries, e)
		items = append(items, e)
	}
	report.Run(ctx, provider, GenerateOptions, items, log)

	if err := report.WriteJSON(outputPath, entries); err != nil {
		return nil, err
	}
	log.Info("site report written",
		zap.String("path", outputPath),
		zap.Int("users", len(entries)))
	return entries, nil
}
