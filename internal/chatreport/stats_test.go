package chatreport

import (
	"reflect"
	"testing"
)

func sent(text, words string) Record {
	return Record{UserID: 7, Text: text, HarmfulWords: words, SpendReceive: 1}
}

func received(text, words string) Record {
	return Record{UserID: 7, Text: text, HarmfulWords: words, SpendReceive: 0}
}

func TestBuildSpendReceiveStats(t *testing.T) {
	records := []Record{
		sent("나쁜 말 1", "바보"),
		sent("나쁜 말 2", "멍청이"),
		sent("나쁜 말 3", "바보,멍청이"),
		received("안녕하세요", ""),
		received("반갑습니다", ""),
	}
	stats := BuildSpendReceiveStats(records)

	if stats.Spend.TotalMessages != 3 || stats.Spend.HarmfulMessages != 3 || stats.Spend.CleanMessages != 0 {
		t.Fatalf("spend counts = %+v", stats.Spend)
	}
	if stats.Spend.HarmfulPct != 100.0 || stats.Spend.CleanPct != 0.0 {
		t.Fatalf("spend pct = %+v", stats.Spend)
	}
	if stats.Receive.TotalMessages != 2 || stats.Receive.HarmfulMessages != 0 || stats.Receive.CleanMessages != 2 {
		t.Fatalf("receive counts = %+v", stats.Receive)
	}
	if stats.Receive.HarmfulPct != 0.0 || stats.Receive.CleanPct != 100.0 {
		t.Fatalf("receive pct = %+v", stats.Receive)
	}
}

func TestDirectionStatsInvariants(t *testing.T) {
	records := []Record{
		sent("a", "x"),
		sent("b", ""),
		sent("c", ""),
		received("d", "y"),
	}
	// 1 harmful of 16 received: both percentages land on exact halves
	// (6.25 and 93.75)
	for i := 0; i < 15; i++ {
		records = append(records, received("clean", ""))
	}
	stats := BuildSpendReceiveStats(records)
	for _, d := range []DirectionStats{stats.Spend, stats.Receive} {
		if d.HarmfulMessages+d.CleanMessages != d.TotalMessages {
			t.Fatalf("harmful+clean != total: %+v", d)
		}
		if d.TotalMessages > 0 && d.HarmfulPct+d.CleanPct != 100.0 {
			t.Fatalf("percentages do not sum to 100: %+v", d)
		}
	}
}

func TestStatsZeroWhenDirectionEmpty(t *testing.T) {
	stats := BuildSpendReceiveStats([]Record{sent("a", "x")})
	if stats.Receive != (DirectionStats{}) {
		t.Fatalf("empty direction should be all-zero, got %+v", stats.Receive)
	}
}

func TestPercentRounding(t *testing.T) {
	// one harmful of three: 33.333...% rounds to 33.3
	records := []Record{sent("a", "x"), sent("b", ""), sent("c", "")}
	stats := BuildSpendReceiveStats(records)
	if stats.Spend.HarmfulPct != 33.3 {
		t.Fatalf("harmful_pct = %v, want 33.3", stats.Spend.HarmfulPct)
	}
	if stats.Spend.CleanPct != 66.7 {
		t.Fatalf("clean_pct = %v, want 66.7", stats.Spend.CleanPct)
	}
}

func TestPercentRoundingHalfToEven(t *testing.T) {
	// 1 harmful of 16: 6.25% and 93.75% round to 6.2 and 93.8
	records := []Record{sent("a", "x")}
	for i := 0; i < 15; i++ {
		records = append(records, sent("clean", ""))
	}
	stats := BuildSpendReceiveStats(records)
	if stats.Spend.HarmfulPct != 6.2 {
		t.Fatalf("harmful_pct = %v, want 6.2", stats.Spend.HarmfulPct)
	}
	if stats.Spend.CleanPct != 93.8 {
		t.Fatalf("clean_pct = %v, want 93.8", stats.Spend.CleanPct)
	}
	if stats.Spend.HarmfulPct+stats.Spend.CleanPct != 100.0 {
		t.Fatalf("percentages sum to %v", stats.Spend.HarmfulPct+stats.Spend.CleanPct)
	}
}

func TestTopHarmfulWordsTop3(t *testing.T) {
	records := []Record{
		sent("a", "바보,바보"),
		received("b", "멍청이"),
		sent("c", "바보,멍청이,한심"),
		sent("d", "짜증"),
	}
	got := TopHarmfulWords(records, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 words, got %d", len(got))
	}
	if got[0].Word != "바보" || got[0].Count != 3 {
		t.Fatalf("top word = %+v, want 바보 x3", got[0])
	}
	// 멍청이 (2) before the tied singles, which keep first-seen order
	if got[1].Word != "멍청이" || got[2].Word != "한심" {
		t.Fatalf("ranking = %+v", got)
	}
}

func TestHarmfulMessagesKeepsRowOrder(t *testing.T) {
	records := []Record{
		sent("first", "바보"),
		sent("clean", ""),
		received("second", "멍청이,한심"),
	}
	got := HarmfulMessages(records)
	want := []MessageRecord{
		{Text: "first", HarmfulWords: []string{"바보"}},
		{Text: "second", HarmfulWords: []string{"멍청이", "한심"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("messages = %v, want %v", got, want)
	}
}

func TestHarmfulCategoriesDeclaredOrder(t *testing.T) {
	r := sent("a", "바보")
	r.Scores[4] = 0.3 // sexual
	r.Scores[0] = 0.1 // abuse
	got := HarmfulCategories([]Record{r}, 7)
	if !reflect.DeepEqual(got, []string{"abuse", "sexual"}) {
		t.Fatalf("categories = %v, want [abuse sexual]", got)
	}
	if HarmfulCategories([]Record{r}, 99) != nil {
		t.Fatalf("unknown user should yield nil")
	}
}

func TestGroupByUserOrder(t *testing.T) {
	records := []Record{
		{UserID: 9, Text: "a"},
		{UserID: 3, Text: "b"},
		{UserID: 9, Text: "c"},
	}
	ids, groups := GroupByUser(records)
	if !reflect.DeepEqual(ids, []int{3, 9}) {
		t.Fatalf("ids = %v, want [3 9]", ids)
	}
	if len(groups[9]) != 2 || groups[9][0].Text != "a" || groups[9][1].Text != "c" {
		t.Fatalf("group 9 lost row order: %+v", groups[9])
	}
}
