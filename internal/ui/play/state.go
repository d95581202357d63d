package play

import (
	"context"
	"strconv"
	"time"

	"shici/internal/corpus"
	"shici/internal/quiz"
)

// Screen identifies which view is active.
type Screen int

const (
	// ScreenName asks for the player's name.
	ScreenName Screen = iota
	// ScreenQuestion shows the current question.
	ScreenQuestion
	// ScreenResults shows the results sheet.
	ScreenResults
)

// Display labels.
const (
	NameRequiredText = "请务必输入名字！"
	PendingAddrText  = "获取中..."
	NoQuestionsText  = "题库中没有可用的诗句，无法出题。"
)

// Default timings.
const (
	DefaultAutoAdvance  = 800 * time.Millisecond
	DefaultTickInterval = time.Second
)

const optionLetters = "ABCD"

// OptionLabel returns the letter shown before an option, falling back to
// its 1-based number past D.
func OptionLabel(index int) string {
	if index >= 0 && index < len(optionLetters) {
		return optionLetters[index : index+1]
	}
	return strconv.Itoa(index + 1)
}

// AddrFunc resolves the client address; it must return a display string even on failure.
type AddrFunc func(ctx context.Context) string

// FinishFunc receives each finished results sheet.
type FinishFunc func(result quiz.Result) error

// Options configures the quiz model.
type Options struct {
	// Context bounds background work such as the address lookup.
	Context      context.Context
	Poems        []corpus.Poem
	Quiz         quiz.Options
	Rand         quiz.Rand
	Now          func() time.Time
	Lookup       AddrFunc
	Player       string
	NoColor      bool
	OnFinish     FinishFunc
	AutoAdvance  time.Duration
	TickInterval time.Duration
}

// expectedQuestions returns the configured quiz length.
func (o Options) expectedQuestions() int {
	if o.Quiz.Questions > 0 {
		return o.Quiz.Questions
	}
	return quiz.DefaultQuestions
}
