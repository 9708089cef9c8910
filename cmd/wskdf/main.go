// Command wskdf is the executable surface over the search/kdf/oracle/
// estimate/preimage/fileio packages, implementing the CLI contract of
// spec.md §6: generate-salt, output-random-key, derive-key, find-key,
// benchmark, plus check-preimage and estimate carried over from the
// original Rust CLI (see SPEC_FULL.md).
//
// --version/--help are handled directly in main before any subcommand
// flag set is parsed; --debug is scanned ahead of time (scanDebug) so
// logging can be configured before a subcommand's own pflag.FlagSet,
// which also binds --debug to flag.Debug, parses the same arguments.
// Each subcommand owns its own pflag.FlagSet for the rest of its
// arguments rather than sharing one global command line, since
// subcommands take disjoint flag sets.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/wskdf/wskdf/flag"
	"github.com/wskdf/wskdf/interruption"
	"github.com/wskdf/wskdf/logging"
	"github.com/wskdf/wskdf/logging/log"
	"github.com/wskdf/wskdf/zlog"
)

// Exit codes per spec.md §7/§6 ("distinct classes for usage errors, I/O
// errors, derivation errors, oracle failures, and exhaustion").
const (
	exitOK         = 0
	exitUsage      = 2
	exitIO         = 3
	exitDerivation = 4
	exitOracle     = 5
	exitExhausted  = 6
)

var version = "dev"

func main() {
	defer interruption.Catch()

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(exitUsage)
	}

	switch args[0] {
	case "--version", "-version":
		fmt.Println("wskdf", version)
		os.Exit(exitOK)
	case "--help", "-h", "help":
		printUsage()
		os.Exit(exitOK)
	}

	name, rest := args[0], args[1:]
	flag.Debug = scanDebug(rest)
	setupLogging()

	cmd, ok := commands[name]
	if !ok {
		log.Error().Field("command", name).Msg("unknown command")
		printUsage()
		os.Exit(exitUsage)
	}
	log.Info().Field("command", name).Msg("wskdf starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(cmd(ctx, rest))
}

func setupLogging() {
	zerologLevel := zerolog.InfoLevel
	level := logging.InfoLevel
	if flag.Debug {
		zerologLevel = zerolog.DebugLevel
		level = logging.DebugLevel
	}

	l := zlog.Logger().WithConsole()
	if !zlog.Interactive() {
		l = l.WithLogFile()
	}
	l.Init("wskdf", zerologLevel)
	logging.SetGlobalAdapter(logging.NewZerologAdapter())
	logging.SetPackageLevel("cmd", level)
	logging.SetPackageLevel("search", level)
	logging.SetPackageLevel("oracle", level)
	logging.SetPackageLevel("kdf", level)
}

// scanDebug looks for --debug/-debug anywhere in a subcommand's argument
// list so logging can be configured before that subcommand's own
// pflag.FlagSet (which also registers --debug) parses the same arguments.
func scanDebug(args []string) bool {
	for _, a := range args {
		if a == "--debug" || a == "-debug" {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: wskdf <command> [flags]")
	fmt.Fprintln(os.Stderr, "Commands:")
	for _, name := range commandOrder {
		fmt.Fprintf(os.Stderr, "  %s\n", name)
	}
	fmt.Fprintln(os.Stderr, "\nRun 'wskdf <command> --help' for command-specific flags.")
}
