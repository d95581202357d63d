package quiz

import (
	"fmt"
	"time"
)

// Labels shared by every results sheet rendering.
const (
	// UnansweredLabel stands in for the answer of a question left blank.
	UnansweredLabel = "未作答"
	// PerfectText replaces the review list when nothing was missed.
	PerfectText = "恭喜你，全部答对！"
)

// EndTimeLayout formats the end timestamp of a results sheet.
const EndTimeLayout = "2006-01-02 15:04:05"

// ReviewItem is a missed question on the review list.
type ReviewItem struct {
	Index      int    `json:"index" yaml:"index"`
	Prompt     string `json:"prompt" yaml:"prompt"`
	UserAnswer string `json:"user_answer" yaml:"user_answer"`
	Answered   bool   `json:"answered" yaml:"answered"`
	Answer     string `json:"answer" yaml:"answer"`
}

// Given returns the submitted answer or UnansweredLabel.
func (item ReviewItem) Given() string {
	if !item.Answered {
		return UnansweredLabel
	}
	return item.UserAnswer
}

// Review lists the questions that were not answered correctly.
type Review struct {
	Items []ReviewItem `json:"items" yaml:"items"`
	// Perfect is set when nothing was missed.
	Perfect bool `json:"perfect" yaml:"perfect"`
}

// BuildReview collects incorrect and unanswered questions in quiz order.
func BuildReview(s Session) Review {
	var items []ReviewItem
	for i, question := range s.questions {
		if question.Correct {
			continue
		}
		items = append(items, ReviewItem{
			Index:      i,
			Prompt:     question.Prompt,
			UserAnswer: question.UserAnswer,
			Answered:   question.Answered,
			Answer:     question.Answer,
		})
	}
	return Review{Items: items, Perfect: len(items) == 0}
}

// Result is the results sheet of a session.
type Result struct {
	SessionID  string        `json:"session_id" yaml:"session_id"`
	Player     string        `json:"player" yaml:"player"`
	Score      int           `json:"score" yaml:"score"`
	Total      int           `json:"total" yaml:"total"`
	Answered   int           `json:"answered" yaml:"answered"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time     `json:"finished_at" yaml:"finished_at"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
	ClientAddr string        `json:"client_addr" yaml:"client_addr"`
	Review     Review        `json:"review" yaml:"review"`
}

// Summarize builds the results sheet. An unfinished session is summarized as
// if it ended at now.
func Summarize(s Session, clientAddr string, now time.Time) Result {
	finishedAt := s.FinishedAt
	if !s.Finished() {
		finishedAt = now
	}
	return Result{
		SessionID:  s.ID,
		Player:     s.Player,
		Score:      s.Score(),
		Total:      s.Len(),
		Answered:   s.Answered(),
		StartedAt:  s.StartedAt,
		FinishedAt: finishedAt,
		Elapsed:    s.Elapsed(now),
		ClientAddr: clientAddr,
		Review:     BuildReview(s),
	}
}

// FormatClock renders a duration as mm:ss.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
