package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"shici/internal/config"
	"shici/internal/corpus"
	"shici/internal/ledger"
	"shici/internal/netinfo"
	"shici/internal/quiz"
	"shici/internal/report"
	"shici/internal/ui/play"
)

// lookupOffText is shown as the client address when the lookup is disabled.
const lookupOffText = "未启用"

// Test seams.
var (
	runLiveQuiz = play.Run
	openLedger  = ledger.Open
	playClock   = time.Now
)

// runPlay builds the handler for the play command.
func runPlay(cmd *Command) Handler {
	return func(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .shici/config.yml)")
		corpusPath := flags.String("corpus", "", "Corpus file (JSON array or YAML list of poems)")
		demo := flags.Bool("demo", false, "Use the built-in demo corpus")
		name := flags.String("name", "", "Player name (skips the name prompt)")
		questions := flags.Int("questions", 0, "Number of questions (default: quiz.questions)")
		uiMode := flags.String("ui", "", "UI mode: auto|live|plain (default: ui.mode)")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		noLookup := flags.Bool("no-lookup", false, "Skip the client address lookup")
		noHistory := flags.Bool("no-history", false, "Do not record the result")
		htmlOut := flags.String("html-out", "", "Write each results sheet as HTML to this file")
		seed := flags.Uint64("seed", 0, "Random seed (default: random)")
		verbose := flags.Bool("verbose", false, "Log progress to stderr")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if *questions < 0 {
			fmt.Fprintf(stderr, "invalid arguments: --questions must be positive\n")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, cfgPath, err := loadConfig(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Play failed:\n%v\n", err)
			return ExitError
		}
		if err := applyPlayOverrides(&cfg, *corpusPath, *questions, *uiMode, *noColor, *noLookup); err != nil {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}
		logNoColor := cfg.UI.NoColor
		if cfgPath != "" {
			logVerbose(*verbose, stderr, logNoColor, styleDefault, "config %s", cfgPath)
		} else {
			logVerbose(*verbose, stderr, logNoColor, styleDefault, "no config found, using defaults")
		}

		decision, err := resolveUIMode(cfg.UI.Mode, *verbose, stdin, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		poems, source, err := loadPoems(cfg.Corpus.Path, *demo)
		if err != nil {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}
		rng := newRand(*seed)
		poems = corpus.Sample(poems, cfg.Corpus.SampleSize, rng)
		stats := corpus.Summarize(poems)
		logVerbose(*verbose, stderr, logNoColor, styleSession, "corpus %s: %d poems, %d usable, %d lines", source, stats.Poems, stats.Usable, stats.Lines)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var store *ledger.Store
		if !*noHistory {
			store, err = openLedger(ctx, cfg.History.Driver, cfg.History.DSN)
			if err != nil {
				fmt.Fprintf(stderr, "History disabled: %v\n", err)
				store = nil
			} else {
				defer store.Close()
				logVerbose(*verbose, stderr, logNoColor, styleStore, "history %s %s", store.Driver(), cfg.History.DSN)
			}
		}
		htmlPath, err := absPath(*htmlOut)
		if err != nil {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}

		opts := play.Options{
			Context:  ctx,
			Poems:    poems,
			Quiz:     cfg.QuizOptions(),
			Rand:     rng,
			Now:      playClock,
			Lookup:   addrLookup(cfg.Lookup),
			Player:   *name,
			NoColor:  cfg.UI.NoColor,
			OnFinish: finishHandler(ctx, store, htmlPath, *verbose, stderr, logNoColor),
		}

		if decision.useLive {
			if _, err := runLiveQuiz(ctx, play.NewModel(opts), stdin, stdout); err != nil {
				fmt.Fprintf(stderr, "Play failed: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		if err := playPlain(ctx, opts, stdin, stdout); err != nil {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// applyPlayOverrides layers command-line flags over the loaded config.
func applyPlayOverrides(cfg *config.Config, corpusPath string, questions int, uiMode string, noColor, noLookup bool) error {
	override, err := absPath(corpusPath)
	if err != nil {
		return err
	}
	if override != "" {
		cfg.Corpus.Path = override
	}
	if questions > 0 {
		cfg.Quiz.Questions = questions
	}
	if uiMode != "" {
		cfg.UI.Mode = uiMode
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		cfg.UI.NoColor = true
	}
	if noLookup {
		disabled := false
		cfg.Lookup.Enabled = &disabled
	}
	return nil
}

// newRand returns a seeded source, or an unseeded one for seed 0.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return quiz.NewRand()
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// addrLookup returns the client address resolver for the lookup settings.
func addrLookup(cfg config.LookupConfig) play.AddrFunc {
	if !cfg.IsEnabled() {
		return func(context.Context) string { return lookupOffText }
	}
	return netinfo.NewLookup(cfg.URL, cfg.Timeout, nil).ClientAddr
}

// finishHandler records each results sheet and optionally exports it as HTML.
func finishHandler(ctx context.Context, store *ledger.Store, htmlPath string, verbose bool, stderr io.Writer, noColor bool) play.FinishFunc {
	return func(result quiz.Result) error {
		var errs []error
		if store != nil {
			if err := store.Record(ctx, result); err != nil {
				errs = append(errs, err)
			} else {
				logVerbose(verbose, stderr, noColor, styleStore, "recorded session %s (%d/%d)", result.SessionID, result.Score, result.Total)
			}
		}
		if htmlPath != "" {
			if err := report.WriteResultFile(ctx, htmlPath, result); err != nil {
				errs = append(errs, err)
			} else {
				logVerbose(verbose, stderr, noColor, styleStore, "wrote %s", htmlPath)
			}
		}
		return errors.Join(errs...)
	}
}
