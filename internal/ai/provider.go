// Package ai abstracts the external text-generation service behind a small
// provider interface. Providers are registered by name and selected through
// configuration; pipelines never talk HTTP directly.
package ai

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserMessage wraps a rendered prompt as the single user-role message every
// pipeline sends.
func UserMessage(prompt string) []Message {
	return []Message{{Role: "user", Content: prompt}}
}

// Options carries the fixed sampling parameters of one call site.
type Options struct {
	Temperature float64
	MaxTokens   int
}

type Provider interface {
	// Chat sends the messages and returns the best completion's text,
	// untrimmed. Callers trim.
	Chat(ctx context.Context, messages []Message, opts Options) (string, error)
}
