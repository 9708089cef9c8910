// Package search implements the brute-force preimage search engine: the
// heart of WSKDF (spec.md §4.4). It runs a fixed-size pool of workers,
// each deriving Argon2id keys via kdf.Derive and submitting them to an
// oracle.Command, and returns the first accepted (preimage, key) pair or
// a well-defined terminal outcome.
//
// Worker fan-out is grounded on the teacher's use of
// golang.org/x/sync/errgroup in web.Server.Start to supervise a set of
// concurrently running listeners under one cancellable context; here the
// "listeners" are search workers and the shared cancellation cause
// records why the search stopped (found / unreliable oracle / caller
// cancellation).
package search

import (
	cryptorand "crypto/rand"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	mathrand "math/rand/v2"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wskdf/wskdf/apperror"
	"github.com/wskdf/wskdf/kdf"
	"github.com/wskdf/wskdf/logging"
	"github.com/wskdf/wskdf/oracle"
	"github.com/wskdf/wskdf/preimage"
)

var logger = logging.GetPackageLogger("search")

// Strategy selects how candidates are enumerated across workers.
type Strategy int

const (
	// Systematic deterministically partitions the candidate space so no
	// two workers ever evaluate the same candidate.
	Systematic Strategy = iota
	// Random has every worker draw independent uniform samples with
	// replacement; duplicates are possible and never deduplicated.
	Random
)

func (s Strategy) String() string {
	switch s {
	case Systematic:
		return "systematic"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

// Kind is the terminal state of a completed search, per spec.md §4.4.5.
type Kind int

const (
	// Unknown is the zero value and never denotes a real terminal state.
	// Run always pairs it with a non-nil error, so callers that check Kind
	// without first checking err can never mistake a zero Outcome for Found.
	Unknown Kind = iota
	// Found means one worker's candidate was accepted by the oracle.
	Found
	// Exhausted means a systematic search covered the whole partitioned
	// space without any acceptance.
	Exhausted
	// OracleFailed means a worker's oracle reported too many consecutive
	// errors.
	OracleFailed
	// Cancelled means the caller's context was cancelled before a result
	// was reached.
	Cancelled
	// OutOfMemory means a worker's Argon2id allocation failed.
	OutOfMemory
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	case OracleFailed:
		return "oracle_failed"
	case Cancelled:
		return "cancelled"
	case OutOfMemory:
		return "out_of_memory"
	default:
		return "unknown"
	}
}

// Outcome is the result of one completed Run.
type Outcome struct {
	Kind     Kind
	Preimage uint64
	Key      [kdf.KeySize]byte
}

// Params configures one search run.
type Params struct {
	NBits    uint8
	Salt     [kdf.SaltSize]byte
	Cost     kdf.Cost
	Strategy Strategy
	Threads  int
	Command  oracle.Command
}

// Validate reports whether p is a runnable search configuration.
func (p Params) Validate() error {
	if err := preimage.ValidateBits(p.NBits); err != nil {
		return err
	}
	if err := p.Cost.Validate(); err != nil {
		return err
	}
	if p.Threads < 1 {
		return apperror.NewErrorf("thread count must be >= 1, got %d", p.Threads)
	}
	if len(p.Command.Argv) == 0 {
		return apperror.NewError("oracle command must not be empty")
	}
	return nil
}

// ErrExhausted is returned when a systematic search covers its whole
// space without finding an accepting candidate.
var ErrExhausted = apperror.NewError("search space exhausted without a match")

// ErrCancelled is returned when the caller's context ends the search
// before a result was reached.
var ErrCancelled = apperror.NewError("search cancelled")

// ErrOutOfMemory is returned when a worker's Argon2id allocation fails.
// Argon2id surfaces allocation failure as a runtime panic rather than a Go
// error, so workers recover it themselves and report it as this sentinel.
var ErrOutOfMemory = apperror.NewError("argon2id allocation failed")

var errFound = errors.New("preimage found")

type foundResult struct {
	preimage uint64
	key      [kdf.KeySize]byte
}

type interval struct {
	start, end uint64 // [start, end)
}

// partition splits [low, high) into up to n contiguous sub-ranges whose
// sizes differ by at most one, per spec.md §4.4.2.
func partition(low, high uint64, n int) []interval {
	size := high - low
	base := size / uint64(n)
	rem := size % uint64(n)

	out := make([]interval, 0, n)
	cur := low
	for i := 0; i < n; i++ {
		width := base
		if uint64(i) < rem {
			width++
		}
		out = append(out, interval{start: cur, end: cur + width})
		cur += width
	}
	return out
}

// Run executes the search engine described in spec.md §4.4 and returns
// its terminal Outcome. The caller's ctx bounds random-mode searches,
// which never self-terminate (§4.4.4).
func Run(ctx context.Context, p Params) (Outcome, error) {
	if err := p.Validate(); err != nil {
		return Outcome{}, err
	}

	runID := uuid.New().String()
	logger.Info().Field("run_id", runID).Field("threads", p.Threads).
		Msgf("Using %d threads", p.Threads)
	logger.Info().Field("run_id", runID).Field("strategy", p.Strategy.String()).
		Msg("Starting parallel search")

	cctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	reg := oracle.NewRegistry()
	stopWatch := reg.WatchContext(cctx)
	defer stopWatch()

	var found atomic.Pointer[foundResult]

	g, gctx := errgroup.WithContext(cctx)

	switch p.Strategy {
	case Systematic:
		for _, r := range partition(preimage.Low(p.NBits), preimage.High(p.NBits), p.Threads) {
			r := r
			g.Go(func() error {
				return protect(func() error {
					return systematicWorker(gctx, cancel, r, p, reg, &found)
				})
			})
		}
	case Random:
		for i := 0; i < p.Threads; i++ {
			g.Go(func() error {
				return protect(func() error {
					return randomWorker(gctx, cancel, p, reg, &found)
				})
			})
		}
	default:
		return Outcome{}, apperror.NewErrorf("unknown search strategy %d", p.Strategy)
	}

	workErr := g.Wait()

	if res := found.Load(); res != nil {
		logger.Info().Field("run_id", runID).Msg("Found key!")
		return Outcome{Kind: Found, Preimage: res.preimage, Key: res.key}, nil
	}

	cause := context.Cause(cctx)
	switch {
	case errors.Is(cause, oracle.ErrUnreliable):
		return Outcome{Kind: OracleFailed}, oracle.ErrUnreliable
	case errors.Is(workErr, ErrOutOfMemory):
		return Outcome{Kind: OutOfMemory}, workErr
	case workErr != nil && !errors.Is(workErr, context.Canceled):
		return Outcome{}, apperror.Wrap(workErr)
	case ctx.Err() != nil:
		return Outcome{Kind: Cancelled}, apperror.Wrap(ErrCancelled).(apperror.Error).AddError(ctx.Err())
	case p.Strategy == Systematic:
		return Outcome{Kind: Exhausted}, ErrExhausted
	default:
		return Outcome{Kind: Cancelled}, ErrCancelled
	}
}

func systematicWorker(ctx context.Context, cancel context.CancelCauseFunc, r interval, p Params, reg *oracle.Registry, found *atomic.Pointer[foundResult]) error {
	var tracker oracle.Tracker
	for cursor := r.start; cursor < r.end; cursor++ {
		if ctx.Err() != nil {
			return nil
		}

		accepted, terminal, err := tryCandidate(ctx, cursor, p, reg, &tracker, found, cancel)
		if err != nil {
			return err
		}
		if accepted || terminal {
			return nil
		}
	}
	return nil
}

func randomWorker(ctx context.Context, cancel context.CancelCauseFunc, p Params, reg *oracle.Registry, found *atomic.Pointer[foundResult]) error {
	rng, err := newWorkerRand()
	if err != nil {
		return apperror.Wrap(err)
	}

	var tracker oracle.Tracker
	for {
		if ctx.Err() != nil {
			return nil
		}

		candidate := preimage.Mask(rng.Uint64(), p.NBits)
		accepted, terminal, err := tryCandidate(ctx, candidate, p, reg, &tracker, found, cancel)
		if err != nil {
			return err
		}
		if accepted || terminal {
			return nil
		}
	}
}

// tryCandidate implements the per-candidate steps of the worker loop in
// spec.md §4.4.3: derive, re-check found, invoke the oracle, and react to
// the verdict.
func tryCandidate(
	ctx context.Context,
	candidate uint64,
	p Params,
	reg *oracle.Registry,
	tracker *oracle.Tracker,
	found *atomic.Pointer[foundResult],
	cancel context.CancelCauseFunc,
) (accepted, terminal bool, err error) {
	enc := preimage.Encode(candidate)
	hexPreimage := preimage.Hex(candidate)
	logger.Info().Msgf("Deriving key for %s", hexPreimage)

	key, derr := kdf.Derive(enc[:], p.Salt, p.Cost)
	if derr != nil {
		return false, false, derr
	}

	if ctx.Err() != nil {
		return false, true, nil
	}

	keyHex := hex.EncodeToString(key[:])
	verdict, oerr := oracle.Run(ctx, reg, p.Command, keyHex)
	switch verdict {
	case oracle.Accept:
		if found.CompareAndSwap(nil, &foundResult{preimage: candidate, key: key}) {
			cancel(errFound)
		}
		return true, true, nil
	case oracle.Reject:
		tracker.Observe(oracle.Reject)
		return false, false, nil
	default: // oracle.Error
		if oerr != nil && errors.Is(oerr, context.Canceled) {
			return false, true, nil
		}
		if tracker.Observe(oracle.Error) {
			cancel(oracle.ErrUnreliable)
			return false, true, oracle.ErrUnreliable
		}
		return false, false, nil
	}
}

// protect recovers a panicking worker (Argon2id reports allocation failure
// this way, not as a Go error) and turns it into ErrOutOfMemory.
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Msgf("worker panic: %v", r)
			err = apperror.Wrap(ErrOutOfMemory).(apperror.Error).
				AddDetail("panic", fmt.Sprintf("%v", r))
		}
	}()
	return fn()
}

func newWorkerRand() (*mathrand.ChaCha8, error) {
	var seed [32]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		return nil, err
	}
	return mathrand.NewChaCha8(seed), nil
}
