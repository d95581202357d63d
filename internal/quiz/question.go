package quiz

import (
	"fmt"
	"math/rand/v2"
)

// Rand is the source of randomness for question generation.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns an unseeded random source for production use.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Direction tells whether the answer is the line before or after the prompt.
type Direction int

const (
	// Preceding asks for the line before the prompt.
	Preceding Direction = iota
	// Following asks for the line after the prompt.
	Following
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Preceding:
		return "preceding"
	case Following:
		return "following"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Hint returns the instruction shown with the prompt line.
func (d Direction) Hint() string {
	if d == Preceding {
		return "选上一句"
	}
	return "选下一句"
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "preceding":
		*d = Preceding
	case "following":
		*d = Following
	default:
		return fmt.Errorf("quiz: unknown direction %q", text)
	}
	return nil
}

// Question is one multiple-choice item of a quiz.
type Question struct {
	Index      int       `json:"index" yaml:"index"`
	PoemIndex  int       `json:"poem_index" yaml:"poem_index"`
	LineIndex  int       `json:"line_index" yaml:"line_index"`
	Prompt     string    `json:"prompt" yaml:"prompt"`
	Answer     string    `json:"answer" yaml:"answer"`
	Direction  Direction `json:"direction" yaml:"direction"`
	Options    []string  `json:"options" yaml:"options"`
	UserAnswer string    `json:"user_answer,omitempty" yaml:"user_answer,omitempty"`
	Answered   bool      `json:"answered" yaml:"answered"`
	Correct    bool      `json:"correct" yaml:"correct"`
}

// AnswerIndex returns the position of the answer among the options, or -1.
func (q Question) AnswerIndex() int {
	for i, option := range q.Options {
		if option == q.Answer {
			return i
		}
	}
	return -1
}
