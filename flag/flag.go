// Package flag holds the process-wide flag values shared across packages
// that have no other way to reach the CLI layer's configuration: the data
// directory used by zlog's file logger and interruption's panic-report
// directory, and the debug toggle that raises log verbosity everywhere.
//
// wskdf has no single global flag set to parse into these: each
// subcommand owns its own pflag.FlagSet (see cmd/wskdf), and those
// FlagSets bind --debug directly to Debug. Path has no corresponding
// flag; it keeps its default unless a caller assigns it directly, as the
// tests in zlog do.
package flag

var (
	// Path is the application's working/data directory.
	Path = "./data"
	// Debug indicates whether debug mode is enabled.
	Debug bool
)
