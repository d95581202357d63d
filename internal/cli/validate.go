package cli

import (
	"flag"
	"fmt"
	"io"

	"shici/internal/config"
	"shici/internal/corpus"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) Handler {
	return func(args []string, _ io.Reader, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .shici/config.yml)")
		corpusPath := flags.String("corpus", "", "Corpus file to check instead of corpus.path")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		resolvedSpec, err := resolveSpecPath(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolvedSpec)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		fmt.Fprintln(stdout, "Config OK")

		override, err := absPath(*corpusPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		if override != "" {
			cfg.Corpus.Path = override
		}
		poems, source, err := loadPoems(cfg.Corpus.Path, false)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		stats := corpus.Summarize(poems)
		if stats.Usable == 0 {
			fmt.Fprintf(stderr, "Validation failed:\ncorpus %s has no poem with at least two lines\n", source)
			return ExitError
		}
		fmt.Fprintf(stdout, "Corpus OK: %s (%d poems, %d usable, %d lines)\n", source, stats.Poems, stats.Usable, stats.Lines)
		return ExitOK
	}
}

// loadPoems reads the corpus at path, or the built-in demo corpus when path
// is empty or demo is set. It also returns a label naming the source.
func loadPoems(path string, demo bool) ([]corpus.Poem, string, error) {
	if demo || path == "" {
		return corpus.Demo(), "demo corpus", nil
	}
	poems, err := corpus.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("load corpus: %w", err)
	}
	return poems, path, nil
}
