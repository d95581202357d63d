package cli

import (
	"context"
	"strings"
	"testing"

	"shici/internal/reportserver"
)

// TestServeCommandPassesConfig ensures serve forwards parsed config to the server layer.
func TestServeCommandPassesConfig(t *testing.T) {
	specPath := writeSpec(t, t.TempDir(), sqliteSpec)

	var gotConfig reportserver.Config
	origServe := serveReport
	serveReport = func(_ context.Context, cfg reportserver.Config) error {
		gotConfig = cfg
		return nil
	}
	t.Cleanup(func() { serveReport = origServe })

	code, out, errOut := run(t, "", "serve",
		"--spec", specPath,
		"--addr", "127.0.0.1:5050",
		"--limit", "5",
		"--origin", "https://example.com",
		"--origin", "https://poems.example.com",
	)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, errOut)
	}
	if !strings.Contains(out, "http://127.0.0.1:5050") {
		t.Fatalf("expected serving message, got %q", out)
	}
	if gotConfig.Addr != "127.0.0.1:5050" {
		t.Fatalf("unexpected addr: %s", gotConfig.Addr)
	}
	if gotConfig.Limit != 5 {
		t.Fatalf("unexpected limit: %d", gotConfig.Limit)
	}
	if gotConfig.Source == nil {
		t.Fatalf("expected a result source")
	}
	if len(gotConfig.AllowedOrigins) != 2 || gotConfig.AllowedOrigins[1] != "https://poems.example.com" {
		t.Fatalf("unexpected origins: %v", gotConfig.AllowedOrigins)
	}
}

// TestServeCommandRequiresAddr verifies an empty address is a usage error.
func TestServeCommandRequiresAddr(t *testing.T) {
	cmd := findCommand("serve")
	if cmd == nil {
		t.Fatalf("serve command not found")
	}
	code, _, errOut := run(t, "", "serve", "--addr", "")
	if code != ExitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
	if !strings.Contains(errOut, "Missing --addr") {
		t.Fatalf("unexpected error %q", errOut)
	}
}

// TestServeCommandReportsServerError verifies server failures exit with an error.
func TestServeCommandReportsServerError(t *testing.T) {
	specPath := writeSpec(t, t.TempDir(), sqliteSpec)
	origServe := serveReport
	serveReport = func(context.Context, reportserver.Config) error {
		return context.DeadlineExceeded
	}
	t.Cleanup(func() { serveReport = origServe })

	code, _, errOut := run(t, "", "serve", "--spec", specPath)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut, "Server error") {
		t.Fatalf("unexpected error %q", errOut)
	}
}
