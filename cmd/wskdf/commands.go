package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/wskdf/wskdf/apperror"
	"github.com/wskdf/wskdf/fileio"
	"github.com/wskdf/wskdf/kdf"
	"github.com/wskdf/wskdf/oracle"
	"github.com/wskdf/wskdf/preimage"
	"github.com/wskdf/wskdf/search"
)

// commandFunc runs one subcommand and returns the process exit code.
type commandFunc func(ctx context.Context, args []string) int

var commandOrder = []string{
	"generate-salt",
	"output-random-key",
	"derive-key",
	"check-preimage",
	"find-key",
	"benchmark",
	"estimate",
}

var commands = map[string]commandFunc{
	"generate-salt":     cmdGenerateSalt,
	"output-random-key": cmdOutputRandomKey,
	"derive-key":        cmdDeriveKey,
	"check-preimage":    cmdCheckPreimage,
	"find-key":          cmdFindKey,
	"benchmark":         cmdBenchmark,
	"estimate":          cmdEstimate,
}

// costFlags binds the shared --ops-limit/--mem-limit-kbytes flags used by
// every subcommand that derives a key.
type costFlags struct {
	opsLimit    uint32
	memLimitKiB uint32
}

func (c *costFlags) register(fs *pflag.FlagSet) {
	fs.Uint32Var(&c.opsLimit, "ops-limit", kdf.DefaultCost.OpsLimit, "Argon2id iteration count")
	fs.Uint32Var(&c.memLimitKiB, "mem-limit-kbytes", kdf.DefaultCost.MemLimitKiB, "Argon2id memory limit in KiB")
}

func (c *costFlags) cost() kdf.Cost {
	return kdf.Cost{OpsLimit: c.opsLimit, MemLimitKiB: c.memLimitKiB}
}

// classify maps a terminal error to the exit code class of spec.md §7.
func classify(err error) int {
	if err == nil {
		return exitOK
	}
	switch {
	case errors.Is(err, search.ErrExhausted):
		return exitExhausted
	case errors.Is(err, oracle.ErrUnreliable), errors.Is(err, oracle.ErrSpawnFailed):
		return exitOracle
	case errors.Is(err, kdf.ErrCostTooLow), errors.Is(err, search.ErrOutOfMemory):
		return exitDerivation
	case errors.Is(err, fileio.ErrIO), errors.Is(err, fileio.ErrInvalidHex),
		errors.Is(err, preimage.ErrInvalidEncoding), errors.Is(err, preimage.ErrInvalidBitLength):
		return exitIO
	default:
		return exitDerivation
	}
}

func fail(cmdName string, err error) int {
	code := classify(err)
	fmt.Fprintf(os.Stderr, "wskdf %s: %v\n", cmdName, apperror.Wrap(err))
	return code
}

func usageError(cmdName string, err error) int {
	fmt.Fprintf(os.Stderr, "wskdf %s: %v\n", cmdName, err)
	return exitUsage
}

// measureAvgDerivationTime benchmarks iters derivations per thread, run
// concurrently across threads workers, and returns the average wall-clock
// time per derivation under that contention. Measuring at the requested
// thread count (rather than sequentially) matters for a memory-hard KDF
// like Argon2id, whose derivation time under concurrent memory pressure
// can differ substantially from its single-threaded time, per spec.md
// §6's "iters·threads derivations ... reports throughput" and mirroring
// search.Run's own errgroup-based worker fan-out.
func measureAvgDerivationTime(ctx context.Context, iters, threads int, salt [kdf.SaltSize]byte, cost kdf.Cost) (time.Duration, error) {
	g, gctx := errgroup.WithContext(ctx)

	start := time.Now()
	for t := 0; t < threads; t++ {
		t := t
		g.Go(func() error {
			base := uint64(t*iters) + 1
			for i := 0; i < iters; i++ {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				enc := preimage.Encode(base + uint64(i))
				if _, err := kdf.Derive(enc[:], salt, cost); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return time.Since(start) / time.Duration(iters), nil
}
