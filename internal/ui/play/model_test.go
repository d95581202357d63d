package play

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shici/internal/corpus"
	"shici/internal/quiz"
	"shici/internal/testutil"
)

var testStart = time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

// newTestModel builds a model over the demo corpus with a fake clock.
func newTestModel(t *testing.T, player string, mutate func(*Options)) (Model, *testutil.FakeClock) {
	t.Helper()
	clock := testutil.NewFakeClock(testStart)
	opts := Options{
		Poems:   corpus.Demo(),
		Quiz:    quiz.Options{Questions: 3},
		Rand:    rand.New(rand.NewPCG(7, 11)),
		Now:     clock.Now,
		Player:  player,
		NoColor: true,
	}
	if mutate != nil {
		mutate(&opts)
	}
	return NewModel(opts), clock
}

// send delivers a message and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", updated)
	}
	return model, cmd
}

// press sends a key press.
func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	switch key {
	case "enter":
		return send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	case " ":
		return send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	default:
		return send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
}

// answerKey returns the key choosing the right (or a wrong) option of the current question.
func answerKey(t *testing.T, m Model, correct bool) string {
	t.Helper()
	question := m.Session().Current()
	for i, option := range question.Options {
		if (option == question.Answer) == correct {
			return strconv.Itoa(i + 1)
		}
	}
	t.Fatalf("no suitable option in %q", question.Options)
	return ""
}

// TestNameIsRequired verifies a blank name is refused before the quiz starts.
func TestNameIsRequired(t *testing.T) {
	m, _ := newTestModel(t, "", nil)
	if m.Screen() != ScreenName {
		t.Fatalf("expected name screen")
	}
	m, _ = press(t, m, "enter")
	if m.Screen() != ScreenName || !strings.Contains(m.View(), NameRequiredText) {
		t.Fatalf("expected name required message, got %q", m.View())
	}

	m, _ = press(t, m, "李白")
	m, cmd := press(t, m, "enter")
	if m.Screen() != ScreenQuestion {
		t.Fatalf("expected question screen after entering a name")
	}
	if cmd == nil {
		t.Fatalf("expected the clock to start")
	}
	if got := m.Session().Player; got != "李白" {
		t.Fatalf("expected player 李白, got %q", got)
	}
	if m.Session().Len() != 3 {
		t.Fatalf("expected 3 questions, got %d", m.Session().Len())
	}
}

// TestAnswerThenAutoAdvance verifies the delayed advance after answering.
func TestAnswerThenAutoAdvance(t *testing.T) {
	m, _ := newTestModel(t, "杜甫", nil)
	m, cmd := press(t, m, answerKey(t, m, true))
	if cmd == nil {
		t.Fatalf("expected an advance to be scheduled")
	}
	if m.Session().Score() != 1 || m.Session().Position() != 0 {
		t.Fatalf("expected score 1 at position 0, got %d at %d", m.Session().Score(), m.Session().Position())
	}
	if !strings.Contains(m.View(), "✓") {
		t.Fatalf("expected the correct option to be marked")
	}

	advance := advanceMsg{sessionID: m.Session().ID, position: 0}
	m, _ = send(t, m, advance)
	if m.Session().Position() != 1 {
		t.Fatalf("expected position 1, got %d", m.Session().Position())
	}
	m, _ = send(t, m, advance)
	if m.Session().Position() != 1 {
		t.Fatalf("expected a stale advance to be ignored, got %d", m.Session().Position())
	}
}

// TestAutoAdvanceSkippedAfterNavigation verifies manual navigation cancels the advance.
func TestAutoAdvanceSkippedAfterNavigation(t *testing.T) {
	m, _ := newTestModel(t, "杜甫", nil)
	m, _ = press(t, m, answerKey(t, m, false))
	pending := advanceMsg{sessionID: m.Session().ID, position: 0}
	m, _ = press(t, m, "n")
	m, _ = press(t, m, "n")
	if m.Session().Position() != 2 {
		t.Fatalf("expected position 2, got %d", m.Session().Position())
	}
	m, _ = send(t, m, pending)
	if m.Session().Position() != 2 || m.Screen() != ScreenQuestion {
		t.Fatalf("expected the pending advance to be dropped")
	}
	m, _ = press(t, m, "p")
	if m.Session().Position() != 1 {
		t.Fatalf("expected position 1, got %d", m.Session().Position())
	}
}

// TestDuplicateAnswerIgnored verifies a second answer changes nothing.
func TestDuplicateAnswerIgnored(t *testing.T) {
	m, _ := newTestModel(t, "杜甫", nil)
	m, _ = press(t, m, answerKey(t, m, true))
	before := m.Session()
	m, cmd := press(t, m, answerKey(t, m, false))
	if cmd != nil {
		t.Fatalf("expected no command for a rejected answer")
	}
	if m.Session().Score() != before.Score() || m.Session().Current().UserAnswer != before.Current().UserAnswer {
		t.Fatalf("expected the session to be unchanged")
	}
}

// TestLastAnswerFinishes verifies the auto-advance on the last question finishes the quiz.
func TestLastAnswerFinishes(t *testing.T) {
	var recorded []quiz.Result
	m, clock := newTestModel(t, "王维", func(opts *Options) {
		opts.Quiz.Questions = 2
		opts.OnFinish = func(result quiz.Result) error {
			recorded = append(recorded, result)
			return nil
		}
	})
	m, _ = press(t, m, answerKey(t, m, true))
	m, _ = send(t, m, advanceMsg{sessionID: m.Session().ID, position: 0})
	m, _ = press(t, m, answerKey(t, m, false))
	clock.Advance(95 * time.Second)
	m, _ = send(t, m, advanceMsg{sessionID: m.Session().ID, position: 1})

	if m.Screen() != ScreenResults || !m.Session().Finished() {
		t.Fatalf("expected results screen after the last answer")
	}
	if len(recorded) != 1 || len(m.Results()) != 1 {
		t.Fatalf("expected one recorded result, got %d", len(recorded))
	}
	result := recorded[0]
	if result.Player != "王维" || result.Score != 1 || result.Total != 2 || result.Elapsed != 95*time.Second {
		t.Fatalf("unexpected result: %+v", result)
	}
	view := m.View()
	for _, token := range []string{"王维", "01:35", "1 / 2", "错题回顾"} {
		if !strings.Contains(view, token) {
			t.Fatalf("expected %q on the results screen", token)
		}
	}
}

// TestFinishAnytimeListsUnanswered verifies early submission reviews blank questions.
func TestFinishAnytimeListsUnanswered(t *testing.T) {
	m, _ := newTestModel(t, "孟浩然", nil)
	m, _ = press(t, m, "f")
	if m.Screen() != ScreenResults {
		t.Fatalf("expected results screen")
	}
	result := m.Results()[0]
	if result.Answered != 0 || len(result.Review.Items) != 3 {
		t.Fatalf("expected three unanswered items, got %+v", result.Review)
	}
	if !strings.Contains(m.View(), quiz.UnansweredLabel) {
		t.Fatalf("expected the unanswered label in the review table")
	}
	if _, cmd := send(t, m, tickMsg{sessionID: m.Session().ID}); cmd != nil {
		t.Fatalf("expected the clock to stop after finishing")
	}
}

// TestPerfectResults verifies the all-correct message.
func TestPerfectResults(t *testing.T) {
	m, _ := newTestModel(t, "李白", func(opts *Options) { opts.Quiz.Questions = 1 })
	m, _ = press(t, m, answerKey(t, m, true))
	m, _ = press(t, m, "enter")
	if m.Screen() != ScreenResults || !strings.Contains(m.View(), quiz.PerfectText) {
		t.Fatalf("expected perfect message, got %q", m.View())
	}
}

// TestReplayStartsFreshSession verifies r generates a new quiz for the same player.
func TestReplayStartsFreshSession(t *testing.T) {
	m, _ := newTestModel(t, "李白", nil)
	m, _ = press(t, m, answerKey(t, m, true))
	m, _ = press(t, m, "f")
	first := m.Session().ID
	m, cmd := press(t, m, "r")
	if m.Screen() != ScreenQuestion || cmd == nil {
		t.Fatalf("expected a new running quiz")
	}
	if m.Session().ID == first || m.Session().Score() != 0 || m.Session().Player != "李白" {
		t.Fatalf("expected a fresh session, got %+v", m.Session())
	}
	if _, cmd := send(t, m, tickMsg{sessionID: first}); cmd != nil {
		t.Fatalf("expected ticks of the old session to be dropped")
	}
	if _, cmd := send(t, m, tickMsg{sessionID: m.Session().ID}); cmd == nil {
		t.Fatalf("expected the new session clock to keep ticking")
	}
}

// TestFlipCard verifies space toggles the source card and navigation hides it.
func TestFlipCard(t *testing.T) {
	m, _ := newTestModel(t, "李白", nil)
	if strings.Contains(m.View(), "《") {
		t.Fatalf("expected the card to start hidden")
	}
	m, _ = press(t, m, " ")
	poem := m.opts.Poems[m.Session().Current().PoemIndex]
	if !strings.Contains(m.View(), "《"+poem.Title+"》") {
		t.Fatalf("expected the card to show %s", poem.Title)
	}
	m, _ = press(t, m, "n")
	if strings.Contains(m.View(), "《") {
		t.Fatalf("expected the card to hide after moving")
	}
}

// TestLookupFillsAddress verifies the address replaces the pending label.
func TestLookupFillsAddress(t *testing.T) {
	m, _ := newTestModel(t, "李白", func(opts *Options) {
		opts.Lookup = func(context.Context) string { return "203.0.113.7" }
	})
	if !strings.Contains(m.View(), PendingAddrText) {
		t.Fatalf("expected pending address label")
	}
	m, _ = send(t, m, lookupMsg{addr: "203.0.113.7"})
	if !strings.Contains(m.View(), "203.0.113.7") {
		t.Fatalf("expected resolved address in header")
	}
}

// TestLateLookupUpdatesResults verifies an address arriving after finish is shown.
func TestLateLookupUpdatesResults(t *testing.T) {
	m, _ := newTestModel(t, "李白", func(opts *Options) {
		opts.Lookup = func(context.Context) string { return "x" }
	})
	m, _ = press(t, m, "f")
	if m.Results()[0].ClientAddr != PendingAddrText {
		t.Fatalf("expected pending address in the recorded result")
	}
	m, _ = send(t, m, lookupMsg{addr: "198.51.100.2"})
	if !strings.Contains(m.View(), "198.51.100.2") {
		t.Fatalf("expected late address on the results screen")
	}
	if got := m.Results()[0].ClientAddr; got != "198.51.100.2" {
		t.Fatalf("expected late address in the recorded result, got %q", got)
	}
}

// TestLookupUsesOptionsContext verifies the lookup sees the caller's context.
func TestLookupUsesOptionsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := lookupCmd(ctx, func(ctx context.Context) string {
		if ctx.Err() != nil {
			return "cancelled"
		}
		return "live"
	})
	msg, ok := cmd().(lookupMsg)
	if !ok || msg.addr != "cancelled" {
		t.Fatalf("expected lookup to run with the cancelled context, got %#v", msg)
	}
	if lookupCmd(ctx, nil) != nil {
		t.Fatalf("expected no command without a lookup")
	}
}

// TestShortQuizNotice verifies a shortfall is reported.
func TestShortQuizNotice(t *testing.T) {
	m, _ := newTestModel(t, "李白", func(opts *Options) {
		opts.Quiz = quiz.Options{Questions: 30, MaxAttempts: 2}
	})
	if m.Session().Len() > 2 {
		t.Fatalf("expected at most 2 questions, got %d", m.Session().Len())
	}
	if !strings.Contains(m.View(), "/ 30 题") {
		t.Fatalf("expected shortfall notice, got %q", m.View())
	}
}

// TestNoQuestionsIsFatal verifies an unusable corpus ends on an error screen.
func TestNoQuestionsIsFatal(t *testing.T) {
	m, _ := newTestModel(t, "李白", func(opts *Options) {
		opts.Poems = []corpus.Poem{{Title: "孤句", Lines: []string{"独一句"}}}
	})
	if m.Screen() != ScreenResults || !strings.Contains(m.View(), NoQuestionsText) {
		t.Fatalf("expected fatal screen, got %q", m.View())
	}
	m, cmd := press(t, m, "q")
	if cmd == nil || m.View() != "" {
		t.Fatalf("expected quit")
	}
}

// TestFinishErrorBecomesNotice verifies persistence failures are shown, not fatal.
func TestFinishErrorBecomesNotice(t *testing.T) {
	m, _ := newTestModel(t, "李白", func(opts *Options) {
		opts.OnFinish = func(quiz.Result) error { return errors.New("disk full") }
	})
	m, _ = press(t, m, "f")
	if !slices.ContainsFunc(m.Notices(), func(n string) bool { return strings.Contains(n, "disk full") }) {
		t.Fatalf("expected notice, got %q", m.Notices())
	}
}

// TestRenderOptionPastD verifies options beyond the fourth get a numbered label.
func TestRenderOptionPastD(t *testing.T) {
	question := quiz.Question{Options: []string{"一", "二", "三", "四", "五"}, Answer: "五"}
	if got := renderOption(question, 4, "五", true); got != "  5. 五" {
		t.Fatalf("unexpected fifth option %q", got)
	}
	if got := renderOption(question, 1, "二", true); got != "  B. 二" {
		t.Fatalf("unexpected second option %q", got)
	}
	if OptionLabel(0) != "A" || OptionLabel(3) != "D" {
		t.Fatalf("unexpected option labels")
	}
}

// TestOptionIndex verifies key mapping.
func TestOptionIndex(t *testing.T) {
	cases := map[string]int{"1": 0, "4": 3, "a": 0, "D": 3, "5": -1, "enter": -1}
	for key, want := range cases {
		if got := OptionIndex(key); got != want {
			t.Fatalf("OptionIndex(%q): expected %d, got %d", key, want, got)
		}
	}
}
