package ledgertest

import (
	"path/filepath"
	"testing"
	"time"

	"shici/internal/ledger"
	"shici/internal/quiz"
	"shici/internal/testutil"
)

const defaultTimeout = 5 * time.Second

// Open opens a file-backed store under a test temp dir and closes it on cleanup.
func Open(t testing.TB, driver string) *ledger.Store {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	name := "history.db"
	if driver == ledger.DriverDuckDB {
		name = "history.duckdb"
	}
	store, err := ledger.Open(ctx, driver, filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("open %s ledger: %v", driver, err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// Result builds a results sheet with one wrong and one unanswered question.
func Result(id string, finishedAt time.Time) quiz.Result {
	return quiz.Result{
		SessionID:  id,
		Player:     "李太白",
		Score:      1,
		Total:      3,
		Answered:   2,
		StartedAt:  finishedAt.Add(-95 * time.Second),
		FinishedAt: finishedAt,
		Elapsed:    95 * time.Second,
		ClientAddr: "203.0.113.7",
		Review: quiz.Review{Items: []quiz.ReviewItem{
			{Index: 1, Prompt: "疑是地上霜", UserAnswer: "低头思故乡", Answered: true, Answer: "床前明月光"},
			{Index: 2, Prompt: "举头望明月", Answer: "低头思故乡"},
		}},
	}
}
