package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/wskdf/wskdf/apperror"
	"github.com/wskdf/wskdf/estimate"
	"github.com/wskdf/wskdf/flag"
	"github.com/wskdf/wskdf/kdf"
)

// cmdBenchmark implements `wskdf benchmark`: measures the average Argon2id
// derivation time for the given cost, then prints a search-time projection
// table built from that measurement.
func cmdBenchmark(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("benchmark", pflag.ContinueOnError)
	fs.BoolVar(&flag.Debug, "debug", flag.Debug, "enable debug logging")
	var cost costFlags
	cost.register(fs)
	iters := fs.IntP("iterations", "i", 10, "number of derivations per thread to average over")
	threads := fs.IntP("threads", "t", 1, "thread count to measure under and project the table for")
	maxBits := fs.Uint8P("max-bits", "n", 32, "largest bit length to include in the table")
	if err := fs.Parse(args); err != nil {
		return usageError("benchmark", err)
	}
	if *iters < 1 {
		return usageError("benchmark", apperror.NewError("--iterations must be >= 1"))
	}
	if *threads < 1 {
		return usageError("benchmark", apperror.NewError("--threads must be >= 1"))
	}

	var salt [kdf.SaltSize]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return fail("benchmark", err)
	}

	avg, err := measureAvgDerivationTime(ctx, *iters, *threads, salt, cost.cost())
	if err != nil {
		return fail("benchmark", err)
	}
	fmt.Printf("average derivation time: %s\n\n", avg)

	table, err := estimate.Table(avg, *threads, *maxBits)
	if err != nil {
		return fail("benchmark", err)
	}
	fmt.Print(table)
	return exitOK
}

// cmdEstimate implements the supplemental `wskdf estimate` command: prints
// the same projection table as benchmark, but from a manually supplied
// average derivation time rather than measuring one.
func cmdEstimate(_ context.Context, args []string) int {
	fs := pflag.NewFlagSet("estimate", pflag.ContinueOnError)
	fs.BoolVar(&flag.Debug, "debug", flag.Debug, "enable debug logging")
	avgSecs := fs.Float64("avg-seconds", 0, "average single-derivation time, in seconds")
	threads := fs.IntP("threads", "t", 1, "thread count to project the table for")
	maxBits := fs.Uint8P("max-bits", "n", 32, "largest bit length to include in the table")
	if err := fs.Parse(args); err != nil {
		return usageError("estimate", err)
	}
	if *avgSecs <= 0 {
		return usageError("estimate", apperror.NewError("--avg-seconds must be > 0"))
	}

	avg := time.Duration(*avgSecs * float64(time.Second))
	table, err := estimate.Table(avg, *threads, *maxBits)
	if err != nil {
		return fail("estimate", err)
	}
	fmt.Print(table)
	return exitOK
}
