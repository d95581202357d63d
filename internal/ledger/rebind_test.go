package ledger

import "testing"

// TestRebind verifies placeholders are numbered only for postgres.
func TestRebind(t *testing.T) {
	query := "SELECT a FROM t WHERE b = ? AND c = ?"
	if got := (&Store{driver: DriverSQLite}).rebind(query); got != query {
		t.Fatalf("expected sqlite query unchanged, got %q", got)
	}
	want := "SELECT a FROM t WHERE b = $1 AND c = $2"
	if got := (&Store{driver: DriverPostgres}).rebind(query); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
