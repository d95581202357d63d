package corpus

import (
	"strconv"
	"strings"
)

// SlotKey returns the record key for a 1-based content slot.
func SlotKey(slot int) string {
	return "content_" + strconv.Itoa(slot)
}

// LinesOf returns the usable lines of a record in slot order.
//
// Slots 1..MaxLines are read in order; absent, non-string and whitespace-only
// slots are skipped. Records without any slot fall back to a "lines" list.
// Line text is kept verbatim.
func LinesOf(record Record) []string {
	lines := make([]string, 0, MaxLines)
	for slot := 1; slot <= MaxLines; slot++ {
		value, ok := record[SlotKey(slot)].(string)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		lines = append(lines, value)
	}
	if len(lines) > 0 {
		return lines
	}
	list, ok := record[linesKey].([]any)
	if !ok {
		return lines
	}
	for _, item := range list {
		value, ok := item.(string)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		lines = append(lines, value)
		if len(lines) == MaxLines {
			break
		}
	}
	return lines
}

// FromRecord converts a raw record into a Poem.
func FromRecord(record Record) Poem {
	return Poem{
		Title:   stringField(record, titleKeys),
		Author:  stringField(record, authorKeys),
		Dynasty: stringField(record, dynastyKeys),
		Lines:   LinesOf(record),
		Note:    stringField(record, noteKeys),
	}
}

// Usable reports whether a poem has enough lines to ask about.
func (p Poem) Usable() bool {
	return len(p.Lines) >= 2
}

func stringField(record Record, keys []string) string {
	for _, key := range keys {
		if value, ok := record[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
