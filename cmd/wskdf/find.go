package main

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"github.com/wskdf/wskdf/apperror"
	"github.com/wskdf/wskdf/fileio"
	"github.com/wskdf/wskdf/flag"
	"github.com/wskdf/wskdf/oracle"
	"github.com/wskdf/wskdf/search"
)

// cmdFindKey implements `wskdf find-key`: the brute-force search described
// in spec.md §4.4, spawning an oracle command per candidate.
func cmdFindKey(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("find-key", pflag.ContinueOnError)
	fs.BoolVar(&flag.Debug, "debug", flag.Debug, "enable debug logging")
	var cost costFlags
	cost.register(fs)
	nBits := fs.Uint8P("n-bits", "n", 0, "preimage bit length")
	threads := fs.IntP("threads", "t", 1, "number of worker threads")
	strategy := fs.String("strategy", "systematic", "search strategy: systematic or random")
	command := fs.String("command", "", "oracle command line, e.g. \"./check.sh\"")
	preimageOut := fs.String("preimage-output", "", "path to write the found preimage to")
	keyOut := fs.String("key-output", "", "path to write the found key to")
	saltIn := fs.String("salt-input", "", "path to read the salt from")
	if err := fs.Parse(args); err != nil {
		return usageError("find-key", err)
	}
	if err := requireNonEmpty(*command, "--command", *preimageOut, "--preimage-output", *keyOut, "--key-output", *saltIn, "--salt-input"); err != nil {
		return usageError("find-key", err)
	}

	strat, err := parseStrategy(*strategy)
	if err != nil {
		return usageError("find-key", err)
	}

	salt, err := fileio.ReadSalt(*saltIn)
	if err != nil {
		return fail("find-key", err)
	}

	argv := strings.Fields(*command)
	if len(argv) == 0 {
		return usageError("find-key", apperror.NewError("--command must not be empty"))
	}

	params := search.Params{
		NBits:    *nBits,
		Salt:     salt,
		Cost:     cost.cost(),
		Strategy: strat,
		Threads:  *threads,
		Command:  oracle.Command{Argv: argv},
	}

	outcome, err := search.Run(ctx, params)
	if err != nil {
		return fail("find-key", err)
	}
	switch outcome.Kind {
	case search.Found:
		if werr := fileio.WritePreimage(*preimageOut, outcome.Preimage); werr != nil {
			return fail("find-key", werr)
		}
		if werr := fileio.WriteKey(*keyOut, outcome.Key); werr != nil {
			return fail("find-key", werr)
		}
		return exitOK
	default:
		return fail("find-key", apperror.NewErrorf("search ended with unexpected outcome %q and no error", outcome.Kind))
	}
}

func parseStrategy(s string) (search.Strategy, error) {
	switch strings.ToLower(s) {
	case "systematic", "":
		return search.Systematic, nil
	case "random":
		return search.Random, nil
	default:
		return 0, apperror.NewErrorf("unknown strategy %q", s)
	}
}
