package corpus

import (
	"fmt"
	"strings"
)

// Issue captures a problem with a single corpus record.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more malformed records.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("corpus validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Stats summarizes a loaded corpus.
type Stats struct {
	Poems  int
	Usable int
	Lines  int
}

// Summarize counts poems, poems usable for questions and total lines.
func Summarize(poems []Poem) Stats {
	stats := Stats{Poems: len(poems)}
	for _, poem := range poems {
		stats.Lines += len(poem.Lines)
		if poem.Usable() {
			stats.Usable++
		}
	}
	return stats
}
