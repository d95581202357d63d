package quiz

import (
	"testing"
	"time"
)

// TestBuildReviewListsMissedInOrder verifies wrong and unanswered questions are listed in quiz order.
func TestBuildReviewListsMissedInOrder(t *testing.T) {
	session := answeredSession(t, 4)
	session, _ = session.Submit("right")
	session = session.Advance()
	session, _ = session.Submit("wrong")
	session = session.Advance().Advance()
	session, _ = session.Submit("right")
	session = session.Finish(testStart.Add(time.Minute))

	review := BuildReview(session)
	if review.Perfect {
		t.Fatalf("expected imperfect review")
	}
	if len(review.Items) != 2 {
		t.Fatalf("expected 2 missed questions, got %d", len(review.Items))
	}
	wrong, blank := review.Items[0], review.Items[1]
	if wrong.Index != 1 || wrong.Given() != "wrong" || wrong.Answer != "right" {
		t.Fatalf("unexpected first item: %+v", wrong)
	}
	if blank.Index != 2 || blank.Answered || blank.Given() != UnansweredLabel {
		t.Fatalf("unexpected second item: %+v", blank)
	}
}

// TestBuildReviewPerfect verifies an all-correct session is flagged perfect.
func TestBuildReviewPerfect(t *testing.T) {
	session := answeredSession(t, 2)
	session, _ = session.Submit("right")
	session = session.Advance()
	session, _ = session.Submit("right")
	review := BuildReview(session)
	if !review.Perfect || len(review.Items) != 0 {
		t.Fatalf("expected perfect review, got %+v", review)
	}
}

// TestBuildReviewUnansweredIsNeverPerfect verifies blank answers count as misses.
func TestBuildReviewUnansweredIsNeverPerfect(t *testing.T) {
	review := BuildReview(answeredSession(t, 1))
	if review.Perfect || len(review.Items) != 1 {
		t.Fatalf("expected one missed item, got %+v", review)
	}
}

// TestSummarize verifies the results sheet fields.
func TestSummarize(t *testing.T) {
	session := answeredSession(t, 3)
	session, _ = session.Submit("right")
	end := testStart.Add(125 * time.Second)
	session = session.Finish(end)

	result := Summarize(session, "203.0.113.9", end.Add(time.Hour))
	if result.SessionID != session.ID || result.Player != "李太白" {
		t.Fatalf("unexpected identity: %+v", result)
	}
	if result.Score != 1 || result.Total != 3 || result.Answered != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if !result.FinishedAt.Equal(end) || result.Elapsed != 125*time.Second {
		t.Fatalf("unexpected timing: %+v", result)
	}
	if result.ClientAddr != "203.0.113.9" || len(result.Review.Items) != 2 {
		t.Fatalf("unexpected review: %+v", result)
	}
	if got := FormatClock(result.Elapsed); got != "02:05" {
		t.Fatalf("expected 02:05, got %s", got)
	}
}

// TestSummarizeUnfinished verifies unfinished sessions end at now.
func TestSummarizeUnfinished(t *testing.T) {
	now := testStart.Add(10 * time.Second)
	result := Summarize(answeredSession(t, 1), "", now)
	if !result.FinishedAt.Equal(now) || result.Elapsed != 10*time.Second {
		t.Fatalf("unexpected timing: %+v", result)
	}
}

// TestFormatClock verifies minute and second padding.
func TestFormatClock(t *testing.T) {
	cases := map[time.Duration]string{
		0:                      "00:00",
		59 * time.Second:       "00:59",
		61*time.Second + 900e6: "01:01",
		-time.Second:           "00:00",
		100 * time.Minute:      "100:00",
	}
	for input, want := range cases {
		if got := FormatClock(input); got != want {
			t.Fatalf("FormatClock(%s): expected %s, got %s", input, want, got)
		}
	}
}
