package quiz

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kittyguard/harmreport/internal/ai"
)

type fakeProvider struct {
	replies map[string]string // matched by substring of the prompt
	deflt   string
	calls   int
}

func (f *fakeProvider) Chat(_ context.Context, messages []ai.Message, _ ai.Options) (string, error) {
	f.calls++
	prompt := messages[len(messages)-1].Content
	for needle, reply := range f.replies {
		if strings.Contains(prompt, needle) {
			return reply, nil
		}
	}
	return f.deflt, nil
}

const quizFixture = `text,harmful_words,ai_harmfulness
바보라고 말했다,바보,1
깨끗한 문장,,1
멍청이라고 놀렸다,"멍청이,한심",1
정상 대화,해롭다,0
짜증나게 한다,짜증,1
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat_db.csv")
	if err := os.WriteFile(path, []byte(quizFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestEntryPrompt(t *testing.T) {
	e := NewEntry("바보라고 말했다", "바보", zap.NewNop())
	prompt := e.Prompt()
	for _, want := range []string{
		"유해한 단어 '바보'에 대해 아래 JSON 형식으로 응답하세요:",
		"1. reason: 왜 이 단어가 유해한지 어린아이도 알 수 있게 설명하고 , 유래가 있줘면 이 단어의 유래도 설명해줘.",
		"2. quiz: 교육용 객관식 퀴즈 문항으로 앞뒤에 번호 를 붙여서 정답을 번호로 나오게 두문제 정도 부탁해. ",
		"문장: \"바보라고 말했다\"",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestCompleteParsesReply(t *testing.T) {
	e := NewEntry("바보라고 말했다", "바보", zap.NewNop())
	e.Complete(`{"reason":"남을 깎아내리는 말이에요.","quiz":"1) 문제..."}`)
	if e.Reason != "남을 깎아내리는 말이에요." {
		t.Fatalf("reason = %q", e.Reason)
	}
	if e.Quiz != "1) 문제..." {
		t.Fatalf("quiz = %v", e.Quiz)
	}
}

func TestCompleteKeepsWordOnMalformedReply(t *testing.T) {
	e := NewEntry("문장", "바보", zap.NewNop())
	e.Complete("죄송하지만 JSON이 아닙니다")
	if e.BadWord != "바보" {
		t.Fatalf("bad_word lost: %q", e.BadWord)
	}
	if e.Reason != "" || e.Quiz != "" {
		t.Fatalf("malformed reply should leave empty defaults: %q %v", e.Reason, e.Quiz)
	}
}

func TestCompleteAcceptsStructuredQuiz(t *testing.T) {
	e := NewEntry("문장", "바보", zap.NewNop())
	e.Complete(`{"reason":"이유","quiz":["첫 문제","둘째 문제"]}`)
	list, ok := e.Quiz.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("quiz should keep its JSON shape, got %#v", e.Quiz)
	}
}

func TestGenerateFiltersBeforeLimit(t *testing.T) {
	input := writeFixture(t)
	output := filepath.Join(t.TempDir(), "harmful_output.json")
	provider := &fakeProvider{deflt: `{"reason":"이유","quiz":"퀴즈"}`}

	entries, err := Generate(context.Background(), input, output, 2, provider, zap.NewNop())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// limit 2 applies to flagged rows; the second flagged row has no words
	// and is skipped after limiting, so one entry remains
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].BadWord != "바보" {
		t.Fatalf("bad_word = %q, want 바보", entries[0].BadWord)
	}
}

func TestGenerateSkipsUnflaggedRows(t *testing.T) {
	input := writeFixture(t)
	output := filepath.Join(t.TempDir(), "harmful_output.json")
	provider := &fakeProvider{deflt: `{"reason":"이유","quiz":"퀴즈"}`}

	entries, err := Generate(context.Background(), input, output, 0, provider, zap.NewNop())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, e := range entries {
		if e.BadWord == "해롭다" {
			t.Fatalf("unflagged row leaked through the filter")
		}
	}
	// rows with several words use only the first
	for _, e := range entries {
		if e.BadWord == "한심" {
			t.Fatalf("only the first word of a row should be used")
		}
	}
}

func TestGenerateContinuesPastBadReply(t *testing.T) {
	input := writeFixture(t)
	output := filepath.Join(t.TempDir(), "harmful_output.json")
	provider := &fakeProvider{
		replies: map[string]string{"'바보'": "JSON 아님"},
		deflt:   `{"reason":"이유","quiz":"퀴즈"}`,
	}

	entries, err := Generate(context.Background(), input, output, 0, provider, zap.NewNop())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Reason != "" {
		t.Fatalf("bad reply should leave reason empty, got %q", entries[0].Reason)
	}
	if entries[1].Reason != "이유" {
		t.Fatalf("later entries must still be generated, got %q", entries[1].Reason)
	}

	raw, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("artifact is not a JSON array: %v", err)
	}
	if decoded[0]["bad_word"] != "바보" || decoded[0]["reason"] != "" {
		t.Fatalf("artifact entry = %v", decoded[0])
	}
}
