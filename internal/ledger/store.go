package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // driver: duckdb
	_ "github.com/jackc/pgx/v5/stdlib"  // driver: pgx
	_ "modernc.org/sqlite"              // driver: sqlite

	"shici/internal/quiz"
)

// Supported drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultLimit bounds history listings when no limit is given.
const DefaultLimit = 20

var (
	// ErrNotFound indicates no result exists for a session id.
	ErrNotFound = errors.New("ledger: result not found")
	// ErrUnsupportedDriver indicates an unknown history driver.
	ErrUnsupportedDriver = errors.New("ledger: unsupported driver")
)

// Entry is one row of the history listing.
type Entry struct {
	SessionID  string        `json:"session_id"`
	Player     string        `json:"player"`
	Score      int           `json:"score"`
	Total      int           `json:"total"`
	FinishedAt time.Time     `json:"finished_at"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Store records finished results.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the history database and ensures the schema exists.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	var driverName string
	switch driver {
	case DriverDuckDB:
		driverName = "duckdb"
	case DriverSQLite:
		driverName = "sqlite"
	case DriverPostgres:
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	if driver != DriverPostgres {
		if err := ensureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: ping %s: %w", driver, err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, driver: driver}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Driver returns the configured driver name.
func (s *Store) Driver() string {
	return s.driver
}

// Record stores a results sheet and its missed questions in one transaction.
func (s *Store) Record(ctx context.Context, result quiz.Result) (err error) {
	if strings.TrimSpace(result.SessionID) == "" {
		return errors.New("ledger: session id is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ledger: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO results
		(session_id, player, score, total, answered, started_at, finished_at, elapsed_ms, client_addr)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		result.SessionID,
		result.Player,
		result.Score,
		result.Total,
		result.Answered,
		result.StartedAt.UnixMilli(),
		result.FinishedAt.UnixMilli(),
		result.Elapsed.Milliseconds(),
		result.ClientAddr,
	)
	if err != nil {
		return fmt.Errorf("ledger: insert result: %w", err)
	}
	for _, item := range result.Review.Items {
		_, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO missed
			(session_id, question_index, prompt, user_answer, answered, answer)
			VALUES (?, ?, ?, ?, ?, ?)`),
			result.SessionID, item.Index, item.Prompt, item.UserAnswer, item.Answered, item.Answer,
		)
		if err != nil {
			return fmt.Errorf("ledger: insert missed question %d: %w", item.Index, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ledger: commit: %w", err)
	}
	return nil
}

// Recent lists the latest results, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT session_id, player, score, total, finished_at, elapsed_ms
		FROM results ORDER BY finished_at DESC, session_id LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: query results: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			finishedAt int64
			elapsedMS  int64
		)
		if err := rows.Scan(&entry.SessionID, &entry.Player, &entry.Score, &entry.Total, &finishedAt, &elapsedMS); err != nil {
			return nil, fmt.Errorf("ledger: scan result: %w", err)
		}
		entry.FinishedAt = time.UnixMilli(finishedAt)
		entry.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: iterate results: %w", err)
	}
	return entries, nil
}

// Get loads a full results sheet by session id.
func (s *Store) Get(ctx context.Context, sessionID string) (quiz.Result, error) {
	var (
		result     quiz.Result
		startedAt  int64
		finishedAt int64
		elapsedMS  int64
	)
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT session_id, player, score, total, answered, started_at, finished_at, elapsed_ms, client_addr
		FROM results WHERE session_id = ?`), sessionID).Scan(
		&result.SessionID,
		&result.Player,
		&result.Score,
		&result.Total,
		&result.Answered,
		&startedAt,
		&finishedAt,
		&elapsedMS,
		&result.ClientAddr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.Result{}, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return quiz.Result{}, fmt.Errorf("ledger: query result: %w", err)
	}
	result.StartedAt = time.UnixMilli(startedAt)
	result.FinishedAt = time.UnixMilli(finishedAt)
	result.Elapsed = time.Duration(elapsedMS) * time.Millisecond

	items, err := s.missed(ctx, sessionID)
	if err != nil {
		return quiz.Result{}, err
	}
	result.Review = quiz.Review{Items: items, Perfect: len(items) == 0}
	return result, nil
}

func (s *Store) missed(ctx context.Context, sessionID string) ([]quiz.ReviewItem, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT question_index, prompt, user_answer, answered, answer
		FROM missed WHERE session_id = ? ORDER BY question_index`), sessionID)
	if err != nil {
		return nil, fmt.Errorf("ledger: query missed: %w", err)
	}
	defer rows.Close()

	var items []quiz.ReviewItem
	for rows.Next() {
		var item quiz.ReviewItem
		if err := rows.Scan(&item.Index, &item.Prompt, &item.UserAnswer, &item.Answered, &item.Answer); err != nil {
			return nil, fmt.Errorf("ledger: scan missed: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: iterate missed: %w", err)
	}
	return items, nil
}

// rebind rewrites ? placeholders as $n for postgres.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var builder strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			builder.WriteByte('$')
			builder.WriteString(strconv.Itoa(n))
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

// ensureParentDir creates the directory holding a file-backed database.
func ensureParentDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ledger: create database dir: %w", err)
	}
	return nil
}
