package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyCorpus indicates a corpus file without any records.
var ErrEmptyCorpus = errors.New("corpus has no records")

// Load reads a corpus file and converts its records into poems.
func Load(path string) ([]Poem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes corpus data. Files ending in .yml or .yaml are read as YAML,
// everything else as a JSON array of records.
func Parse(data []byte, path string) ([]Poem, error) {
	records, err := parseRecords(data, path)
	if err != nil {
		return nil, err
	}
	return FromRecords(records)
}

// FromRecords converts decoded records into poems, rejecting values that are
// not objects.
func FromRecords(records []any) ([]Poem, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}
	collector := &issueCollector{}
	poems := make([]Poem, 0, len(records))
	for i, raw := range records {
		record, ok := asRecord(raw)
		if !ok {
			collector.add(fmt.Sprintf("records[%d]", i), "must be an object")
			continue
		}
		poems = append(poems, FromRecord(record))
	}
	if err := collector.result(); err != nil {
		return nil, err
	}
	return poems, nil
}

func asRecord(raw any) (Record, bool) {
	switch typed := raw.(type) {
	case map[string]any:
		return Record(typed), true
	case Record:
		return typed, true
	default:
		return nil, false
	}
}

func parseRecords(data []byte, path string) ([]any, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrEmptyCorpus
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return parseYAMLRecords(data)
	default:
		return parseJSONRecords(data)
	}
}

func parseJSONRecords(data []byte) ([]any, error) {
	var records []any
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return records, nil
}

func parseYAMLRecords(data []byte) ([]any, error) {
	var records []any
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return records, nil
}
