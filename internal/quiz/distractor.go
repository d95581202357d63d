package quiz

import (
	"slices"

	"shici/internal/corpus"
)

// SampleDistractors draws up to count wrong options for a question.
//
// Each attempt takes the first line of a uniformly chosen poem. Candidates equal
// to the answer, the prompt or an already drawn distractor are rejected. At most
// attempts poems are tried, so small corpora may yield fewer than count.
func SampleDistractors(poems []corpus.Poem, rng Rand, answer, prompt string, count, attempts int) []string {
	if count <= 0 || len(poems) == 0 || rng == nil {
		return nil
	}
	distractors := make([]string, 0, count)
	for attempt := 0; len(distractors) < count && attempt < attempts; attempt++ {
		lines := poems[rng.IntN(len(poems))].Lines
		if len(lines) == 0 {
			continue
		}
		candidate := lines[0]
		if candidate == answer || candidate == prompt || slices.Contains(distractors, candidate) {
			continue
		}
		distractors = append(distractors, candidate)
	}
	return distractors
}
