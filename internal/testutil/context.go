package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a unit test's context.
const DefaultTimeout = 5 * time.Second

// Context returns a context cancelled at test cleanup. The timeout is capped
// one second before the test deadline so failures report from the test itself.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if deadline, ok := t.Deadline(); ok {
		if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
