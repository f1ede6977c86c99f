package chatreport

import (
	"fmt"
	"strings"

	"github.com/kittyguard/harmreport/internal/harm"
)

// RenderPrompt builds the Korean report prompt for one user. Every top-word
// entry and both direction blocks are always rendered; percentages carry one
// decimal place.
func RenderPrompt(userID int, top3 []harm.WordCount, stats SpendReceiveStats) string {
	lines := []string{
		fmt.Sprintf("## 사용자 %d 채팅 유해성 요약 보고서", userID),
		"",
		"### 1) 자주 쓴 유해 단어 Top 3",
	}
	for i, entry := range top3 {
		lines = append(lines, fmt.Sprintf("%d. `%s` — %d회", i+1, entry.Word, entry.Count))
	}
	lines = append(lines,
		"",
		"### 2) 메시지별 유해 vs 클린 비율",
		fmt.Sprintf("- 보냄(spend): 총 %d건", stats.Spend.TotalMessages),
		fmt.Sprintf("  - 유해 %d건 (%.1f%%)", stats.Spend.HarmfulMessages, stats.Spend.HarmfulPct),
		fmt.Sprintf("  - 클린 %d건 (%.1f%%)", stats.Spend.CleanMessages, stats.Spend.CleanPct),
		"",
		fmt.Sprintf("- 받음(receive): 총 %d건", stats.Receive.TotalMessages),
		fmt.Sprintf("  - 유해 %d건 (%.1f%%)", stats.Receive.HarmfulMessages, stats.Receive.HarmfulPct),
		fmt.Sprintf("  - 클린 %d건 (%.1f%%)", stats.Receive.CleanMessages, stats.Receive.CleanPct),
		"",
		"위 통계를 바탕으로, 해당 사용자의 채팅 경향을 요약하고, "+
			"유해 콘텐츠 대응 방안을 Markdown 형식으로 작성해주세요.",
	)
	return strings.Join(lines, "\n")
}
