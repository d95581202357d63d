package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"shici/internal/ledger"
	"shici/internal/reportserver"
)

// serveReport is a test seam for running the history server.
var serveReport = reportserver.Serve

// originList collects repeated --origin flags.
type originList []string

func (l *originList) String() string { return strings.Join(*l, ",") }

func (l *originList) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("origin is empty")
	}
	*l = append(*l, value)
	return nil
}

// runServe builds the handler for the serve command.
func runServe(cmd *Command) Handler {
	return func(args []string, _ io.Reader, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .shici/config.yml)")
		addr := flags.String("addr", "127.0.0.1:5000", "Address to listen on")
		limit := flags.Int("limit", ledger.DefaultLimit, "Results shown on the index page")
		var origins originList
		flags.Var(&origins, "origin", "Allowed CORS origin for the JSON endpoints (repeatable)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if strings.TrimSpace(*addr) == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}
		if *limit <= 0 {
			fmt.Fprintln(stderr, "invalid arguments: --limit must be positive")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, _, err := loadConfig(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed:\n%v\n", err)
			return ExitError
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		store, err := openLedger(ctx, cfg.History.Driver, cfg.History.DSN)
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed: %v\n", err)
			return ExitError
		}
		defer store.Close()

		serverCfg := reportserver.Config{
			Addr:           *addr,
			Source:         store,
			Limit:          *limit,
			AllowedOrigins: origins,
		}
		fmt.Fprintf(stdout, "Serving history at http://%s\n", serverCfg.Addr)
		if err := serveReport(ctx, serverCfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
