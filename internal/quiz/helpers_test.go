package quiz

import (
	"math/rand/v2"
	"testing"

	"shici/internal/corpus"
)

// scriptedRand replays fixed values for IntN and leaves shuffles as identity.
type scriptedRand struct {
	values []int
	calls  int
}

func (r *scriptedRand) IntN(n int) int {
	r.calls++
	if len(r.values) == 0 {
		return 0
	}
	value := r.values[0]
	r.values = r.values[1:]
	return value % n
}

func (r *scriptedRand) Shuffle(int, func(i, j int)) {}

// countingRand wraps a real source and counts IntN calls.
type countingRand struct {
	inner *rand.Rand
	calls int
}

func (r *countingRand) IntN(n int) int {
	r.calls++
	return r.inner.IntN(n)
}

func (r *countingRand) Shuffle(n int, swap func(i, j int)) {
	r.inner.Shuffle(n, swap)
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed*31+7))
}

func jingYeSi() corpus.Poem {
	return corpus.Poem{
		Title:   "静夜思",
		Author:  "李白",
		Dynasty: "唐",
		Lines:   []string{"床前明月光", "疑是地上霜", "举头望明月", "低头思故乡"},
	}
}

func poemOf(title string, lines ...string) corpus.Poem {
	return corpus.Poem{Title: title, Lines: lines}
}

// answeredSession builds a session over count simple questions.
func answeredSession(t *testing.T, count int) Session {
	t.Helper()
	questions := make([]Question, count)
	for i := range questions {
		questions[i] = Question{
			Prompt:  "q" + string(rune('a'+i)),
			Answer:  "right",
			Options: []string{"wrong", "right", "other"},
		}
	}
	session, err := NewSession("李太白", questions, testStart)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}
