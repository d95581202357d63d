package corpus

import (
	_ "embed"
)

// demoYAML is a small built-in corpus for trying the quiz without a data file.
//
//go:embed demo.yaml
var demoYAML []byte

// Demo returns the built-in demo corpus.
func Demo() []Poem {
	poems, err := Parse(demoYAML, "demo.yaml")
	if err != nil {
		panic("corpus: embedded demo corpus is invalid: " + err.Error())
	}
	return poems
}
