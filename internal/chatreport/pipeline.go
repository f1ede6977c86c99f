package chatreport

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kittyguard/harmreport/internal/ai"
	"github.com/kittyguard/harmreport/internal/harm"
	"github.com/kittyguard/harmreport/internal/report"
)

// GenerateOptions are the fixed sampling parameters of the chat report call.
var GenerateOptions = ai.Options{Temperature: 0.7, MaxTokens: 500}

// Entry is one user's emitted report record.
type Entry struct {
	UserID           int               `json:"user_id"`
	Top3HarmfulWords []harm.WordCount  `json:"top3_harmful_words"`
	SpendReceive     SpendReceiveStats `json:"spend_receive_stats"`
	Records          []MessageRecord   `json:"records"`
	GPTReport        string            `json:"gpt_report"`
}

func (e *Entry) Key() string { return fmt.Sprintf("chat user %d", e.UserID) }

func (e *Entry) Prompt() string {
	return RenderPrompt(e.UserID, e.Top3HarmfulWords, e.SpendReceive)
}

func (e *Entry) Complete(reply string) { e.GPTReport = reply }

// BuildEntries derives one entry per user, in ascending user-id order, with
// all statistics filled and the report text still empty.
func BuildEntries(records []Record) []*Entry {
	ids, groups := GroupByUser(records)
	entries := make([]*Entry, 0, len(ids))
	for _, id := range ids {
		group := groups[id]
		entries = append(entries, &Entry{
			UserID:           id,
			Top3HarmfulWords: TopHarmfulWords(group, 3),
			SpendReceive:     BuildSpendReceiveStats(group),
			Records:          HarmfulMessages(group),
		})
	}
	return entries
}

// Generate runs the whole chat pipeline: load, aggregate per user, request a
// report per user, emit the JSON array artifact.
func Generate(ctx context.Context, inputPath, outputPath string, provider ai.Provider, log *zap.Logger) ([]*Entry, error) {
	records, err := LoadRecords(inputPath)
	if err != nil {
		return nil, err
	}

	entries := BuildEntries(records)

	items := make([]report.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, e)
	}
	report.Run(ctx, provider, GenerateOptions, items, log)

	if err := report.WriteJSON(outputPath, entries); err != nil {
		return nil, err
	}
	log.Info("chat report written",
		zap.String("path", outputPath),
		zap.Int("users", len(entries)))
	return entries, nil
}
