// Package quiz generates child-appropriate explanations and quiz items for
// flagged (sentence, harmful word) pairs via the generation service.
package quiz

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kittyguard/harmreport/internal/ai"
	"github.com/kittyguard/harmreport/internal/dataset"
	"github.com/kittyguard/harmreport/internal/harm"
	"github.com/kittyguard/harmreport/internal/report"
)

// GenerateOptions are the fixed sampling parameters of the quiz call.
var GenerateOptions = ai.Options{Temperature: 0.7, MaxTokens: 500}

// RequiredColumns is the subset of the chat schema the quiz pipeline needs.
var RequiredColumns = []string{"text", "harmful_words", "ai_harmfulness"}

// DefaultLimit caps how many flagged rows are processed per run.
const DefaultLimit = 5

const promptTemplate = `다음 문장에서 유해한 단어 '%s'에 대해 아래 JSON 형식으로 응답하세요:
1. reason: 왜 이 단어가 유해한지 어린아이도 알 수 있게 설명하고 , 유래가 있줘면 이 단어의 유래도 설명해줘.
2. quiz: 교육용 객관식 퀴즈 문항으로 앞뒤에 번호 를 붙여서 정답을 번호로 나오게 두문제 정도 부탁해.

문장: "%s"
`

// Entry is one (sentence, word) pair's emitted record. Reason and Quiz come
// from the parsed JSON reply and stay empty strings when parsing fails.
type Entry struct {
	BadWord  string `json:"bad_word"`
	Reason   string `json:"reason"`
	Quiz     any    `json:"quiz"`
	sentence string
	log      *zap.Logger
}

// NewEntry builds an entry awaiting generation for one flagged pair. Reason
// and Quiz start as empty strings.
func NewEntry(sentence, badWord string, log *zap.Logger) *Entry {
	return &Entry{BadWord: badWord, Reason: "", Quiz: "", sentence: sentence, log: log}
}

func (e *Entry) Key() string { return fmt.Sprintf("quiz word %q", e.BadWord) }

func (e *Entry) Prompt() string {
	return fmt.Sprintf(promptTemplate, e.BadWord, e.sentence)
}

type quizReply struct {
	Reason string `json:"reason"`
	Quiz   any    `json:"quiz"`
}

// Complete parses the structured reply. Malformed JSON degrades this entry to
// empty reason/quiz; the already-known bad word is kept either way.
func (e *Entry) Complete(reply string) {
	var d quizReply
	if !report.DecodeJSONReply(reply, &d, e.Key(), e.log) {
		return
	}
	e.Reason = d.Reason
	if d.Quiz != nil {
		e.Quiz = d.Quiz
	}
}

// BuildEntries extracts flagged pairs from chat rows already filtered to
// ai_harmfulness == 1. The first normalized harmful word of each row becomes
// the quiz target; rows without any word are skipped.
func BuildEntries(t *dataset.Table, log *zap.Logger) []*Entry {
	entries := []*Entry{}
	for _, row := range t.Rows {
		words := harm.SplitWords(t.Field(row, "harmful_words"))
		text := strings.TrimSpace(t.Field(row, "text"))
		if len(words) == 0 || text == "" {
			continue
		}
		entries = append(entries, NewEntry(t.Field(row, "text"), words[0], log))
	}
	return entries
}

// Generate runs the quiz pipeline: load the chat dataset, keep AI-flagged
// rows (filter strictly before the row limit), generate per pair, emit the
// JSON array artifact. limit <= 0 falls back to DefaultLimit.
func Generate(ctx context.Context, inputPath, outputPath string, limit int, provider ai.Provider, log *zap.Logger) ([]*Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	t, err := dataset.Load(inputPath, RequiredColumns)
	if err != nil {
		return nil, err
	}
	flagged := t.Filter(func(row []string) bool {
		return t.IntField(row, "ai_harmfulness") == 1
	}).Limit(limit)
	log.Info("flagged rows selected", zap.Int("count", len(flagged.Rows)))

	entries := BuildEntries(flagged, log)

	items := make([]report.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, e)
	}
	report.Run(ctx, provider, GenerateOptions, items, log)

	if err := report.WriteJSON(outputPath, entries); err != nil {
		return nil, err
	}
	log.Info("quiz output written",
		zap.String("path", outputPath),
		zap.Int("entries", len(entries)))
	return entries, nil
}
