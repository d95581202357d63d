package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"shici/internal/ledger"
	"shici/internal/quiz"
	"shici/internal/report"
)

// runHistory builds the handler for the history command.
func runHistory(cmd *Command) Handler {
	return func(args []string, _ io.Reader, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .shici/config.yml)")
		limit := flags.Int("limit", ledger.DefaultLimit, "Number of results to list")
		format := flags.String("format", "table", "Output format: table|json")
		sessionID := flags.String("session", "", "Show the full results sheet of one session")
		htmlOut := flags.String("html-out", "", "With --session, write the results sheet as HTML")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if *limit <= 0 {
			fmt.Fprintln(stderr, "invalid arguments: --limit must be positive")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *format != "table" && *format != "json" {
			fmt.Fprintf(stderr, "invalid arguments: unknown format %q (expected table|json)\n", *format)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *htmlOut != "" && *sessionID == "" {
			fmt.Fprintln(stderr, "invalid arguments: --html-out requires --session")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, _, err := loadConfig(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "History failed:\n%v\n", err)
			return ExitError
		}
		ctx := context.Background()
		store, err := openLedger(ctx, cfg.History.Driver, cfg.History.DSN)
		if err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		defer store.Close()

		if *sessionID != "" {
			return showSession(ctx, store, *sessionID, *format, *htmlOut, stdout, stderr)
		}

		entries, err := store.Recent(ctx, *limit)
		if err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		if *format == "json" {
			if err := writeJSON(stdout, entries); err != nil {
				fmt.Fprintf(stderr, "History failed: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		if len(entries) == 0 {
			fmt.Fprintln(stdout, "No results recorded yet.")
			return ExitOK
		}
		fmt.Fprintln(stdout, historyTable(entries))
		return ExitOK
	}
}

// showSession prints one recorded results sheet.
func showSession(ctx context.Context, store *ledger.Store, sessionID, format, htmlOut string, stdout, stderr io.Writer) int {
	result, err := store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			fmt.Fprintf(stderr, "History failed: no result for session %s\n", sessionID)
		} else {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
		}
		return ExitError
	}
	if htmlOut != "" {
		path, err := absPath(htmlOut)
		if err == nil {
			err = report.WriteResultFile(ctx, path, result)
		}
		if err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", path)
		return ExitOK
	}
	if format == "json" {
		if err := writeJSON(stdout, result); err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
	writePlainResult(stdout, result)
	return ExitOK
}

// historyTable lays out history entries, newest first.
func historyTable(entries []ledger.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.FinishedAt.Format(quiz.EndTimeLayout),
			entry.Player,
			strconv.Itoa(entry.Score) + " / " + strconv.Itoa(entry.Total),
			quiz.FormatClock(entry.Elapsed),
			entry.SessionID,
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("结束时间", "姓名", "得分", "用时", "会话").
		Rows(rows...).
		String()
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
