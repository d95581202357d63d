package cli

import (
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"shici/internal/corpus"
	"shici/internal/quiz"
)

// questionDump is the document printed by the questions command.
type questionDump struct {
	Source    string          `json:"source" yaml:"source"`
	Requested int             `json:"requested" yaml:"requested"`
	Questions []quiz.Question `json:"questions" yaml:"questions"`
}

// runQuestions builds the handler for the questions command.
func runQuestions(cmd *Command) Handler {
	return func(args []string, _ io.Reader, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .shici/config.yml)")
		corpusPath := flags.String("corpus", "", "Corpus file (JSON array or YAML list of poems)")
		demo := flags.Bool("demo", false, "Use the built-in demo corpus")
		count := flags.Int("count", 0, "Number of questions (default: quiz.questions)")
		seed := flags.Uint64("seed", 0, "Random seed (default: random)")
		format := flags.String("format", "json", "Output format: json|yaml")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if *count < 0 {
			fmt.Fprintln(stderr, "invalid arguments: --count must be positive")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *format != "json" && *format != "yaml" {
			fmt.Fprintf(stderr, "invalid arguments: unknown format %q (expected json|yaml)\n", *format)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, _, err := loadConfig(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Questions failed:\n%v\n", err)
			return ExitError
		}
		override, err := absPath(*corpusPath)
		if err != nil {
			fmt.Fprintf(stderr, "Questions failed: %v\n", err)
			return ExitError
		}
		if override != "" {
			cfg.Corpus.Path = override
		}
		if *count > 0 {
			cfg.Quiz.Questions = *count
		}

		poems, source, err := loadPoems(cfg.Corpus.Path, *demo)
		if err != nil {
			fmt.Fprintf(stderr, "Questions failed: %v\n", err)
			return ExitError
		}
		rng := newRand(*seed)
		poems = corpus.Sample(poems, cfg.Corpus.SampleSize, rng)
		dump := questionDump{
			Source:    source,
			Requested: cfg.Quiz.Questions,
			Questions: quiz.Generate(poems, rng, cfg.QuizOptions()),
		}
		if dump.Questions == nil {
			dump.Questions = []quiz.Question{}
		}

		if *format == "yaml" {
			encoder := yaml.NewEncoder(stdout)
			encoder.SetIndent(2)
			if err := encoder.Encode(dump); err != nil {
				fmt.Fprintf(stderr, "Questions failed: encode yaml: %v\n", err)
				return ExitError
			}
			if err := encoder.Close(); err != nil {
				fmt.Fprintf(stderr, "Questions failed: encode yaml: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		if err := writeJSON(stdout, dump); err != nil {
			fmt.Fprintf(stderr, "Questions failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
