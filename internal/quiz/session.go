package quiz

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a session.
type Status int

const (
	// InProgress accepts answers.
	InProgress Status = iota
	// Finished is terminal; only navigation is allowed.
	Finished
)

// String returns the status name.
func (s Status) String() string {
	if s == Finished {
		return "finished"
	}
	return "in_progress"
}

var (
	// ErrNoQuestions indicates a session was started without questions.
	ErrNoQuestions = errors.New("quiz: session needs at least one question")
	// ErrFinished rejects answers after the session has finished.
	ErrFinished = errors.New("quiz: session is finished")
	// ErrAlreadyAnswered rejects a second answer to the same question.
	ErrAlreadyAnswered = errors.New("quiz: question already answered")
	// ErrUnknownOption rejects a choice that is not among the options.
	ErrUnknownOption = errors.New("quiz: choice is not one of the options")
)

// Session is one player's quiz attempt.
//
// Session is a value: every command returns the updated session and leaves
// the receiver untouched. A rejected command returns the receiver together
// with the reason.
type Session struct {
	ID         string
	Player     string
	StartedAt  time.Time
	FinishedAt time.Time

	questions []Question
	position  int
	score     int
	status    Status
}

// NewSession starts a session over the given questions.
func NewSession(player string, questions []Question, startedAt time.Time) (Session, error) {
	if len(questions) == 0 {
		return Session{}, ErrNoQuestions
	}
	owned := make([]Question, len(questions))
	copy(owned, questions)
	score := 0
	for i := range owned {
		owned[i].Index = i
		if owned[i].Correct {
			score++
		}
	}
	return Session{
		ID:        uuid.NewString(),
		Player:    player,
		StartedAt: startedAt,
		questions: owned,
		score:     score,
		status:    InProgress,
	}, nil
}

// Len returns the number of questions.
func (s Session) Len() int { return len(s.questions) }

// Position returns the 0-based index of the current question.
func (s Session) Position() int { return s.position }

// Score returns the number of correct answers.
func (s Session) Score() int { return s.score }

// Status returns the lifecycle state.
func (s Session) Status() Status { return s.status }

// Finished reports whether the session has finished.
func (s Session) Finished() bool { return s.status == Finished }

// AtLast reports whether the current question is the last one.
func (s Session) AtLast() bool { return s.position == len(s.questions)-1 }

// Current returns the current question.
func (s Session) Current() Question {
	if len(s.questions) == 0 {
		return Question{}
	}
	return s.questions[s.position]
}

// Question returns the question at index.
func (s Session) Question(index int) (Question, bool) {
	if index < 0 || index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[index], true
}

// Questions returns a copy of all questions in quiz order.
func (s Session) Questions() []Question {
	return slices.Clone(s.questions)
}

// Answered returns how many questions have an answer.
func (s Session) Answered() int {
	count := 0
	for _, question := range s.questions {
		if question.Answered {
			count++
		}
	}
	return count
}

// Submit answers the current question with choice.
func (s Session) Submit(choice string) (Session, error) {
	if s.status == Finished {
		return s, ErrFinished
	}
	if len(s.questions) == 0 {
		return s, ErrNoQuestions
	}
	question := s.questions[s.position]
	if question.Answered {
		return s, ErrAlreadyAnswered
	}
	if !slices.Contains(question.Options, choice) {
		return s, ErrUnknownOption
	}
	question.UserAnswer = choice
	question.Answered = true
	question.Correct = choice == question.Answer

	next := s
	next.questions = slices.Clone(s.questions)
	next.questions[s.position] = question
	if question.Correct {
		next.score++
	}
	return next, nil
}

// SubmitOption answers the current question with the option at index.
func (s Session) SubmitOption(index int) (Session, error) {
	current := s.Current()
	if index < 0 || index >= len(current.Options) {
		if s.status == Finished {
			return s, ErrFinished
		}
		return s, ErrUnknownOption
	}
	return s.Submit(current.Options[index])
}

// Advance moves to the next question, staying on the last one.
func (s Session) Advance() Session {
	if s.position < len(s.questions)-1 {
		s.position++
	}
	return s
}

// Retreat moves to the previous question, staying on the first one.
func (s Session) Retreat() Session {
	if s.position > 0 {
		s.position--
	}
	return s
}

// Next advances, or finishes the session when already on the last question.
func (s Session) Next(now time.Time) Session {
	if s.AtLast() {
		return s.Finish(now)
	}
	return s.Advance()
}

// Finish ends the session. Finishing twice keeps the first end time.
func (s Session) Finish(now time.Time) Session {
	if s.status == Finished {
		return s
	}
	s.status = Finished
	s.FinishedAt = now
	return s
}

// Elapsed returns the time spent so far, frozen once the session finishes.
func (s Session) Elapsed(now time.Time) time.Duration {
	end := now
	if s.status == Finished {
		end = s.FinishedAt
	}
	elapsed := end.Sub(s.StartedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
