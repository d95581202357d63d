package cli

import (
	"bytes"
	"strings"
	"testing"
)

// stubTerminal makes isTerminal report tty for the duration of a test.
func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(any) bool { return tty }
	t.Cleanup(func() { isTerminal = orig })
}

// TestResolveUIMode verifies the auto|live|plain decision table.
func TestResolveUIMode(t *testing.T) {
	cases := []struct {
		name    string
		mode    string
		verbose bool
		tty     bool
		live    bool
		warn    bool
	}{
		{name: "auto tty", mode: "auto", tty: true, live: true},
		{name: "auto pipe", mode: "", tty: false, live: false},
		{name: "live tty", mode: "LIVE", tty: true, live: true},
		{name: "live pipe", mode: "live", tty: false, live: false, warn: true},
		{name: "plain tty", mode: "plain", tty: true, live: false},
		{name: "verbose wins", mode: "live", verbose: true, tty: true, live: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stubTerminal(t, tc.tty)
			decision, err := resolveUIMode(tc.mode, tc.verbose, &bytes.Buffer{}, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if decision.useLive != tc.live {
				t.Fatalf("expected live=%v, got %v", tc.live, decision.useLive)
			}
			if (decision.warning != "") != tc.warn {
				t.Fatalf("unexpected warning %q", decision.warning)
			}
		})
	}
}

// TestResolveUIModeRequiresBothStreams verifies a piped stdin disables the live UI.
func TestResolveUIModeRequiresBothStreams(t *testing.T) {
	var stdout bytes.Buffer
	orig := isTerminal
	isTerminal = func(stream any) bool { return stream == &stdout }
	t.Cleanup(func() { isTerminal = orig })

	decision, err := resolveUIMode("auto", false, strings.NewReader(""), &stdout)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.useLive {
		t.Fatalf("expected plain output with piped stdin")
	}
}

// TestResolveUIModeRejectsUnknown verifies unknown modes are errors.
func TestResolveUIModeRejectsUnknown(t *testing.T) {
	if _, err := resolveUIMode("fancy", false, nil, nil); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

// TestLogVerbosePlain verifies verbose lines carry the prefix and no escapes off a TTY.
func TestLogVerbosePlain(t *testing.T) {
	var buf bytes.Buffer
	logVerbose(true, &buf, false, styleSession, "corpus %s: %d poems", "demo", 8)
	logVerbose(false, &buf, false, styleSession, "hidden")
	got := buf.String()
	if got != "[verbose] corpus demo: 8 poems\n" {
		t.Fatalf("unexpected verbose output %q", got)
	}
}
