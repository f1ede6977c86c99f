// Package report holds the parts both domains share: the sequential per-item
// generation loop, tolerant JSON-reply decoding, and the artifact emitter.
package report

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kittyguard/harmreport/internal/ai"
)

// Item is one unit of generation work: statistics already computed, prompt
// renderable, response attachable. A failed item keeps its computed fields
// and empty generation output.
type Item interface {
	Key() string
	Prompt() string
	Complete(reply string)
}

// Run processes items sequentially: render, call the provider, attach the
// trimmed reply. One item's failure is logged and never aborts the rest.
func Run(ctx context.Context, provider ai.Provider, opts ai.Options, items []Item, log *zap.Logger) {
	for _, it := range items {
		log.Info("generating", zap.String("item", it.Key()))
		reply, err := provider.Chat(ctx, ai.UserMessage(it.Prompt()), opts)
		if err != nil {
			log.Warn("generation failed", zap.String("item", it.Key()), zap.Error(err))
			continue
		}
		it.Complete(strings.TrimSpace(reply))
	}
}

const replySampleLen = 100

// DecodeJSONReply parses a structured reply into dest. On failure it logs a
// warning with a truncated sample of the raw text and reports false; callers
// substitute empty defaults and continue.
func DecodeJSONReply(text string, dest any, key string, log *zap.Logger) bool {
	if err := json.Unmarshal([]byte(text), dest); err != nil {
		sample := text
		if len(sample) > replySampleLen {
			cut := replySampleLen
			for cut > 0 && !utf8.RuneStart(sample[cut]) {
				cut--
			}
			sample = sample[:cut] + "..."
		}
		log.Warn("reply is not valid JSON",
			zap.String("item", key),
			zap.String("sample", sample),
			zap.Error(err))
		return false
	}
	return true
}
