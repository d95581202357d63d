package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"shici/internal/ledger"
	"shici/internal/quiz"
	"shici/internal/testutil"
)

func sampleResult() quiz.Result {
	finished := time.Date(2024, 3, 1, 20, 5, 7, 0, time.UTC)
	return quiz.Result{
		SessionID:  "s-1",
		Player:     "<李白>",
		Score:      1,
		Total:      3,
		StartedAt:  finished.Add(-65 * time.Second),
		FinishedAt: finished,
		Elapsed:    65 * time.Second,
		ClientAddr: "203.0.113.7",
		Review: quiz.Review{Items: []quiz.ReviewItem{
			{Index: 1, Prompt: "疑是地上霜", UserAnswer: "低头思故乡", Answered: true, Answer: "床前明月光"},
			{Index: 2, Prompt: "举头望明月", Answer: "低头思故乡"},
		}},
	}
}

// renderResult renders the standalone page of one results sheet.
func renderResult(t *testing.T, result quiz.Result) string {
	t.Helper()
	html, err := RenderString(testutil.Context(t, 0), ResultPage(result))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return html
}

// TestResultPage verifies the sheet lists metadata and missed questions.
func TestResultPage(t *testing.T) {
	html := renderResult(t, sampleResult())
	for _, token := range []string{"&lt;李白&gt;", "203.0.113.7", "2024-03-01 20:05:07", "1 / 3", "01:05", "疑是地上霜", "床前明月光", quiz.UnansweredLabel, "<table"} {
		if !strings.Contains(html, token) {
			t.Fatalf("expected result sheet to include %q", token)
		}
	}
	if strings.Contains(html, "<李白>") {
		t.Fatalf("expected player name to be escaped")
	}
	if strings.Contains(html, quiz.PerfectText) {
		t.Fatalf("did not expect the perfect message")
	}
}

// TestResultPagePerfect verifies a perfect sheet shows the message instead of a table.
func TestResultPagePerfect(t *testing.T) {
	result := sampleResult()
	result.Review = quiz.Review{Perfect: true}
	html := renderResult(t, result)
	if !strings.Contains(html, quiz.PerfectText) || strings.Contains(html, "<table") {
		t.Fatalf("unexpected perfect sheet: %s", html)
	}
}

// TestHistoryPage verifies entries link to their sheets.
func TestHistoryPage(t *testing.T) {
	entries := []ledger.Entry{{
		SessionID:  "abc",
		Player:     "杜甫",
		Score:      28,
		Total:      30,
		FinishedAt: time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC),
		Elapsed:    10 * time.Minute,
	}}
	html, err := RenderString(testutil.Context(t, 0), HistoryPage(entries))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, token := range []string{"/results/abc", "杜甫", "28 / 30", "10:00", "2024-03-02 08:00:00"} {
		if !strings.Contains(html, token) {
			t.Fatalf("expected history page to include %q", token)
		}
	}

	empty, err := RenderString(testutil.Context(t, 0), HistoryPage(nil))
	if err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !strings.Contains(empty, "暂无记录") {
		t.Fatalf("expected empty notice")
	}
}

// TestWriteResultFile verifies the page is written with parent directories.
func TestWriteResultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.html")
	if err := WriteResultFile(testutil.Context(t, 0), path, sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") {
		t.Fatalf("expected html document, got %q", string(data[:20]))
	}
}
