package chatreport

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kittyguard/harmreport/internal/ai"
)

type fakeProvider struct {
	replies []string
	prompts []string
	errOn   int
	calls   int
}

func (f *fakeProvider) Chat(_ context.Context, messages []ai.Message, _ ai.Options) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, messages[len(messages)-1].Content)
	if f.errOn > 0 && f.calls == f.errOn {
		return "", errors.New("upstream unavailable")
	}
	if len(f.replies) > 0 {
		reply := f.replies[0]
		if len(f.replies) > 1 {
			f.replies = f.replies[1:]
		}
		return reply, nil
	}
	return "요약 보고서 내용", nil
}

const chatFixture = `text,intensity,id,abuse,censure,discrimination,hate,sexual,violence,prior_harmfulness,ai_harmfulness,harmful_words,replacement_format,replacement_text,spend_receive
나쁜 말,0.9,7,0.8,0,0,0,0,0,1,1,바보,완곡,순화된 문장,1
안녕,0.1,7,0,0,0,0,0,0,0,0,,,,0
욕설,0.7,3,0.5,0,0,0,0,0,1,1,"멍청이,바보",완곡,순화된 문장,1
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat_db.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestBuildEntriesOnePerUserAscending(t *testing.T) {
	records := []Record{
		sent("a", "바보"),
		{UserID: 2, Text: "b", HarmfulWords: "멍청이", SpendReceive: 1},
	}
	entries := BuildEntries(records)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != 2 || entries[1].UserID != 7 {
		t.Fatalf("entry order = [%d %d], want [2 7]", entries[0].UserID, entries[1].UserID)
	}
}

func TestGenerateWritesArtifact(t *testing.T) {
	input := writeFixture(t, chatFixture)
	output := filepath.Join(t.TempDir(), "chat_report.json")
	provider := &fakeProvider{}

	entries, err := Generate(context.Background(), input, output, provider, zap.NewNop())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 users, got %d", len(entries))
	}
	if provider.calls != 2 {
		t.Fatalf("expected one call per user, got %d", provider.calls)
	}
	for _, e := range entries {
		if e.GPTReport != "요약 보고서 내용" {
			t.Fatalf("user %d report = %q", e.UserID, e.GPTReport)
		}
	}

	raw, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	// Korean text must be emitted literally, not \u-escaped
	if !strings.Contains(string(raw), "바보") {
		t.Fatalf("artifact escaped non-ASCII text:\n%s", raw)
	}
	var decoded []Entry
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("artifact is not a JSON array: %v", err)
	}
	if decoded[0].UserID != 3 {
		t.Fatalf("first artifact entry user = %d, want 3", decoded[0].UserID)
	}
}

func TestGenerateSurvivesProviderFailure(t *testing.T) {
	input := writeFixture(t, chatFixture)
	output := filepath.Join(t.TempDir(), "chat_report.json")
	provider := &fakeProvider{errOn: 1}

	entries, err := Generate(context.Background(), input, output, provider, zap.NewNop())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if entries[0].GPTReport != "" {
		t.Fatalf("failed entry should keep empty report, got %q", entries[0].GPTReport)
	}
	if entries[1].GPTReport == "" {
		t.Fatalf("failure on one user must not stop the next")
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("artifact missing after partial failure: %v", err)
	}
}

func TestGenerateMissingColumn(t *testing.T) {
	input := writeFixture(t, "text,id\nhello,1\n")
	_, err := Generate(context.Background(), input, filepath.Join(t.TempDir(), "o.json"), &fakeProvider{}, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "missing columns") {
		t.Fatalf("expected missing-columns error, got %v", err)
	}
}
