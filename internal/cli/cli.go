package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Handler runs a command with its remaining arguments.
type Handler func(args []string, stdin io.Reader, stdout, stderr io.Writer) int

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     Handler
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdin, stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  shici <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"shici <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

// parseFlags parses args for cmd. It returns false with the exit code when the
// command should stop, either because help was printed or the arguments were invalid.
func parseFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

func command(name, summary string, usage []string, runner func(cmd *Command) Handler) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .shici/config.yml", []string{
		"shici init [--spec <path>]",
	}, runInit),
	command("validate", "Validate the config and the poem corpus", []string{
		"shici validate [--spec <path>] [--corpus <path>]",
	}, runValidate),
	command("play", "Start a quiz session", []string{
		"shici play [--name <name>] [--corpus <path> | --demo] [--questions <n>]",
		"           [--ui auto|live|plain] [--no-color] [--no-lookup] [--no-history]",
		"           [--html-out <file>] [--seed <n>] [--verbose]",
	}, runPlay),
	command("questions", "Print a generated quiz as JSON or YAML", []string{
		"shici questions [--corpus <path> | --demo] [--count <n>] [--seed <n>] [--format json|yaml]",
	}, runQuestions),
	command("history", "List recorded results", []string{
		"shici history [--limit <n>] [--format table|json]",
	}, runHistory),
	command("serve", "Serve recorded results over HTTP", []string{
		"shici serve [--addr <host:port>] [--limit <n>] [--origin <url>]...",
	}, runServe),
}
