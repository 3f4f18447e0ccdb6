package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for command dispatch.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidFlags   = errors.New("invalid flags")
)

func main() {
	// Configure GOMAXPROCS before the pool is sized from it
	configureMaxProcs(hasVerboseFlag(os.Args[1:]), os.Stderr)

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// configureMaxProcs sets GOMAXPROCS from the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func configureMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// hasVerboseFlag reports whether args request verbose output.
// It runs before flag parsing, so it only looks for the literal flags.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}

// runMain runs the command line and returns the process exit code.
// SIGINT and SIGTERM cancel running conversions.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := run(ctx, args[1:], env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
	}
	return exitCodeFor(err)
}

// run dispatches to a command. Arguments that do not start with a command
// name are convert arguments.
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) > 0 && isCommand(args[0]) {
		switch args[0] {
		case "version":
			fmt.Fprintf(env.Stdout, "md2html %s\n", Version)
			return nil
		case "help":
			return runHelp(args[1:], env)
		case "completion":
			return runCompletion(args[1:], env)
		case "convert":
			args = args[1:]
		}
	}

	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one input, got %d", ErrInvalidFlags, len(positional))
	}

	return runConvert(ctx, positional, flags, env)
}

// isCommand reports whether arg names a command rather than an input.
func isCommand(arg string) bool {
	switch arg {
	case "convert", "version", "help", "completion":
		return true
	}
	return false
}
