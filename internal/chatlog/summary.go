package chatlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kittyguard/harmreport/internal/ai"
	"github.com/kittyguard/harmreport/internal/report"
)

// SummaryOptions are the fixed sampling parameters of the triggered summary.
var SummaryOptions = ai.Options{Temperature: 0.7, MaxTokens: 1000}

const summaryPromptTemplate = `다음은 사용자의 유해 콘텐츠 접촉 통계입니다. 이 데이터를 바탕으로 사용자가 이해하기 쉬운 요약 리포트를 생성해주세요.
리포트는 다음 JSON 형식으로 응답해야 합니다:
1. summary: 사용자의 전반적인 유해 콘텐츠 접촉 경향에 대한 요약.
2. advice: 유해 콘텐츠에 대한 노출을 줄이거나 건강한 디지털 습관을 위한 조언.

통계 데이터:
%s
`

// SummaryReport is the structured reply of the triggered summary. Both fields
// default to empty strings when the reply is not valid JSON.
type SummaryReport struct {
	Summary string `json:"summary"`
	Advice  string `json:"advice"`
}

// RenderSummaryPrompt embeds the statistics, JSON-formatted with Korean text
// kept verbatim, into the summary prompt.
func RenderSummaryPrompt(stats Statistics) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	// a struct of maps and slices cannot fail to encode
	_ = enc.Encode(stats)
	return fmt.Sprintf(summaryPromptTemplate, strings.TrimRight(buf.String(), "\n"))
}

// GenerateSummary requests the JSON summary for one user's statistics.
// Service errors and malformed replies degrade to an empty report; the caller
// still emits everything else it computed.
func GenerateSummary(ctx context.Context, provider ai.Provider, userID int, stats Statistics, log *zap.Logger) SummaryReport {
	var out SummaryReport
	reply, err := provider.Chat(ctx, ai.UserMessage(RenderSummaryPrompt(stats)), SummaryOptions)
	if err != nil {
		log.Warn("summary generation failed", zap.Int("user_id", userID), zap.Error(err))
		return out
	}
	key := fmt.Sprintf("summary user %d", userID)
	if !report.DecodeJSONReply(strings.TrimSpace(reply), &out, key, log) {
		return SummaryReport{}
	}
	return out
}
