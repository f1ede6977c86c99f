package sitereport

import (
	"fmt"
	"strings"

	"github.com/kittyguard/harmreport/internal/harm"
)

// RenderPrompt builds the Korean report prompt for one user. All five top
// sites and all six category means are rendered; sums and means carry three
// decimal places.
func RenderPrompt(userID int, stats UserStats) string {
	parts := []string{
		fmt.Sprintf("사용자 %d 유해성 요약을 작성해주세요.", userID),
		"",
		fmt.Sprintf("1) 평균값이 가장 높은 유해도 카테고리: %s (%.3f)",
			stats.HighestAvgCategory.Category, stats.HighestAvgCategory.Average),
		"",
		"2) 사이트별 유해성 합(sum)이 가장 높은 사이트 5개:",
	}
	for i, info := range stats.Top5SitesBySum {
		parts = append(parts, fmt.Sprintf("   %d. %s (합계: %.3f)", i+1, info.Site, info.Sum))
	}
	parts = append(parts,
		"",
		"3) 카테고리별 평균 유해도:",
	)
	for _, cat := range harm.Categories {
		parts = append(parts, fmt.Sprintf("   - %s: %.3f", cat, stats.CategoryMeans[cat]))
	}
	parts = append(parts,
		"",
		"위 정보를 바탕으로, 사용자가 방문한 사이트들이 어떤 위험을 내포하는지 간결하게 요약하고, "+
			"권장 대응 방안, 교육 및 인식 증진, 사이트 방문 주의, 정기적인 모니터링 등을 적어서 작성해주세요.",
	)
	return strings.Join(parts, "\n")
}
