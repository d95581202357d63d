package quiz

import (
	"errors"

	"shici/internal/corpus"
)

// Generation defaults.
const (
	DefaultQuestions          = 30
	DefaultMaxAttempts        = 3000
	DefaultDistractors        = 3
	DefaultDistractorAttempts = 100

	// MaxDistractors keeps every question within the four option letters.
	MaxDistractors = 3
)

var (
	// ErrPoemOutOfRange indicates a poem index outside the corpus.
	ErrPoemOutOfRange = errors.New("quiz: poem index out of range")
	// ErrLineOutOfRange indicates a line index outside the poem.
	ErrLineOutOfRange = errors.New("quiz: line index out of range")
	// ErrNoNeighbor indicates there is no line in the requested direction.
	ErrNoNeighbor = errors.New("quiz: no neighboring line in that direction")
	// ErrAmbiguousLine indicates the neighboring line repeats the prompt.
	ErrAmbiguousLine = errors.New("quiz: neighboring line repeats the prompt")
)

// Options bounds question generation. Zero fields take the defaults.
type Options struct {
	Questions          int
	MaxAttempts        int
	Distractors        int
	DistractorAttempts int
}

// DefaultOptions returns the standard quiz settings.
func DefaultOptions() Options {
	return Options{
		Questions:          DefaultQuestions,
		MaxAttempts:        DefaultMaxAttempts,
		Distractors:        DefaultDistractors,
		DistractorAttempts: DefaultDistractorAttempts,
	}
}

func (opts Options) withDefaults() Options {
	defaults := DefaultOptions()
	if opts.Questions <= 0 {
		opts.Questions = defaults.Questions
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaults.MaxAttempts
	}
	if opts.Distractors <= 0 {
		opts.Distractors = defaults.Distractors
	}
	if opts.Distractors > MaxDistractors {
		opts.Distractors = MaxDistractors
	}
	if opts.DistractorAttempts <= 0 {
		opts.DistractorAttempts = defaults.DistractorAttempts
	}
	return opts
}

// Generate builds up to opts.Questions questions in generation order.
//
// MaxAttempts is shared by all questions. Attempts that land on a poem with
// fewer than two lines, or on a line whose neighbor repeats it, are discarded.
// Running out of attempts yields a shorter quiz rather than an error.
func Generate(poems []corpus.Poem, rng Rand, opts Options) []Question {
	opts = opts.withDefaults()
	if len(poems) == 0 || rng == nil {
		return nil
	}
	questions := make([]Question, 0, opts.Questions)
	for attempt := 0; len(questions) < opts.Questions && attempt < opts.MaxAttempts; attempt++ {
		poemIndex := rng.IntN(len(poems))
		lines := poems[poemIndex].Lines
		if len(lines) < 2 {
			continue
		}
		lineIndex := rng.IntN(len(lines))
		direction := pickDirection(rng, lineIndex, len(lines))
		question, err := BuildQuestion(poems, poemIndex, lineIndex, direction, rng, opts)
		if err != nil {
			continue
		}
		question.Index = len(questions)
		questions = append(questions, question)
	}
	return questions
}

// pickDirection forces the only valid direction at either end of the poem.
func pickDirection(rng Rand, lineIndex, lineCount int) Direction {
	switch {
	case lineIndex == 0:
		return Following
	case lineIndex == lineCount-1:
		return Preceding
	case rng.IntN(2) == 0:
		return Preceding
	default:
		return Following
	}
}

// NeighborLine returns the line next to lineIndex in the given direction.
func NeighborLine(lines []string, lineIndex int, direction Direction) (string, error) {
	if lineIndex < 0 || lineIndex >= len(lines) {
		return "", ErrLineOutOfRange
	}
	target := lineIndex + 1
	if direction == Preceding {
		target = lineIndex - 1
	}
	if target < 0 || target >= len(lines) {
		return "", ErrNoNeighbor
	}
	return lines[target], nil
}

// BuildQuestion assembles the question for a fixed poem line and direction,
// drawing distractors and shuffling the options with rng.
func BuildQuestion(poems []corpus.Poem, poemIndex, lineIndex int, direction Direction, rng Rand, opts Options) (Question, error) {
	if poemIndex < 0 || poemIndex >= len(poems) {
		return Question{}, ErrPoemOutOfRange
	}
	opts = opts.withDefaults()
	lines := poems[poemIndex].Lines
	answer, err := NeighborLine(lines, lineIndex, direction)
	if err != nil {
		return Question{}, err
	}
	prompt := lines[lineIndex]
	if answer == prompt {
		return Question{}, ErrAmbiguousLine
	}
	options := SampleDistractors(poems, rng, answer, prompt, opts.Distractors, opts.DistractorAttempts)
	options = append(options, answer)
	if rng != nil {
		rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
	}
	return Question{
		PoemIndex: poemIndex,
		LineIndex: lineIndex,
		Prompt:    prompt,
		Answer:    answer,
		Direction: direction,
		Options:   options,
	}, nil
}
