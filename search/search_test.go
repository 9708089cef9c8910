package search_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/wskdf/wskdf/kdf"
	"github.com/wskdf/wskdf/oracle"
	"github.com/wskdf/wskdf/preimage"
	"github.com/wskdf/wskdf/search"
)

var cheapCost = kdf.Cost{OpsLimit: kdf.MinOpsLimit, MemLimitKiB: kdf.MinMemLimitKiB}

func alwaysRejectCommand() oracle.Command {
	return oracle.Command{Argv: []string{"false"}}
}

func alwaysAcceptCommand() oracle.Command {
	return oracle.Command{Argv: []string{"true"}}
}

// acceptOnlyCommand builds an oracle that accepts a key iff it matches the
// Argon2id derivation of target under salt/cost, by deriving it itself and
// comparing hex strings via grep.
func acceptOnlyCommand(t *testing.T, target uint64, salt [kdf.SaltSize]byte, cost kdf.Cost) oracle.Command {
	t.Helper()
	enc := preimage.Encode(target)
	key, err := kdf.Derive(enc[:], salt, cost)
	if err != nil {
		t.Fatalf("precompute target key: %v", err)
	}
	keyHex := fmt.Sprintf("%x", key[:])
	return oracle.Command{Argv: []string{"grep", "-qx", keyHex}}
}

func TestRunExhaustsSystematic(t *testing.T) {
	if _, err := os.Stat("/bin/false"); err != nil {
		t.Skip("/bin/false not available")
	}

	var salt [kdf.SaltSize]byte
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out, err := search.Run(ctx, search.Params{
		NBits:    4,
		Salt:     salt,
		Cost:     cheapCost,
		Strategy: search.Systematic,
		Threads:  2,
		Command:  alwaysRejectCommand(),
	})
	if !errors.Is(err, search.ErrExhausted) {
		t.Fatalf("err = %v, want ErrExhausted", err)
	}
	if out.Kind != search.Exhausted {
		t.Fatalf("Kind = %v, want Exhausted", out.Kind)
	}
}

func TestRunFindsAcceptedCandidateSystematic(t *testing.T) {
	var salt [kdf.SaltSize]byte
	copy(salt[:], []byte("0123456789abcdef"))

	const nBits = 6
	target := preimage.Low(nBits) + 5

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	out, err := search.Run(ctx, search.Params{
		NBits:    nBits,
		Salt:     salt,
		Cost:     cheapCost,
		Strategy: search.Systematic,
		Threads:  4,
		Command:  acceptOnlyCommand(t, target, salt, cheapCost),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Kind != search.Found {
		t.Fatalf("Kind = %v, want Found", out.Kind)
	}
	if out.Preimage != target {
		t.Fatalf("Preimage = %d, want %d", out.Preimage, target)
	}

	enc := preimage.Encode(target)
	wantKey, _ := kdf.Derive(enc[:], salt, cheapCost)
	if out.Key != wantKey {
		t.Fatalf("Key mismatch")
	}
}

func TestRunFindsAcceptedCandidateRandom(t *testing.T) {
	var salt [kdf.SaltSize]byte
	copy(salt[:], []byte("fedcba9876543210"))

	const nBits = 8
	target := preimage.Low(nBits) + 3

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	out, err := search.Run(ctx, search.Params{
		NBits:    nBits,
		Salt:     salt,
		Cost:     cheapCost,
		Strategy: search.Random,
		Threads:  4,
		Command:  acceptOnlyCommand(t, target, salt, cheapCost),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Kind != search.Found {
		t.Fatalf("Kind = %v, want Found", out.Kind)
	}
	if out.Preimage != target {
		t.Fatalf("Preimage = %d, want %d", out.Preimage, target)
	}
}

func TestRunRandomStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var salt [kdf.SaltSize]byte
	out, err := search.Run(ctx, search.Params{
		NBits:    40,
		Salt:     salt,
		Cost:     cheapCost,
		Strategy: search.Random,
		Threads:  2,
		Command:  alwaysRejectCommand(),
	})
	if out.Kind != search.Cancelled {
		t.Fatalf("Kind = %v, want Cancelled", out.Kind)
	}
	if err == nil {
		t.Fatal("expected non-nil error on cancellation")
	}
}

func TestRunAcceptOnFirstCandidate(t *testing.T) {
	var salt [kdf.SaltSize]byte
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	out, err := search.Run(ctx, search.Params{
		NBits:    4,
		Salt:     salt,
		Cost:     cheapCost,
		Strategy: search.Systematic,
		Threads:  2,
		Command:  alwaysAcceptCommand(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Kind != search.Found {
		t.Fatalf("Kind = %v, want Found", out.Kind)
	}
}

func TestValidateRejectsBadInputs(t *testing.T) {
	base := search.Params{
		NBits:    10,
		Cost:     cheapCost,
		Strategy: search.Systematic,
		Threads:  1,
		Command:  alwaysRejectCommand(),
	}

	noBits := base
	noBits.NBits = 0
	if err := noBits.Validate(); err == nil {
		t.Error("expected error for NBits=0")
	}

	noThreads := base
	noThreads.Threads = 0
	if err := noThreads.Validate(); err == nil {
		t.Error("expected error for Threads=0")
	}

	noCmd := base
	noCmd.Command = oracle.Command{}
	if err := noCmd.Validate(); err == nil {
		t.Error("expected error for empty command")
	}
}

// TestRunValidationFailureReportsUnknownKind guards against a caller that
// switches on Outcome.Kind without checking err first: an invalid Params
// must never produce a Kind that could be mistaken for search.Found.
func TestRunValidationFailureReportsUnknownKind(t *testing.T) {
	p := search.Params{
		NBits:    0, // invalid: preimage.ValidateBits rejects 0
		Cost:     cheapCost,
		Strategy: search.Systematic,
		Threads:  1,
		Command:  alwaysRejectCommand(),
	}

	outcome, err := search.Run(context.Background(), p)
	if err == nil {
		t.Fatal("expected error for invalid Params")
	}
	if outcome.Kind == search.Found {
		t.Errorf("Outcome.Kind = %v with non-nil err; must never be Found", outcome.Kind)
	}
	if outcome.Kind != search.Unknown {
		t.Errorf("Outcome.Kind = %v, want Unknown", outcome.Kind)
	}
}

func TestStrategyString(t *testing.T) {
	if search.Systematic.String() != "systematic" {
		t.Errorf("Systematic.String() = %q", search.Systematic.String())
	}
	if search.Random.String() != "random" {
		t.Errorf("Random.String() = %q", search.Random.String())
	}
}

func TestKindString(t *testing.T) {
	kinds := []search.Kind{search.Found, search.Exhausted, search.OracleFailed, search.Cancelled, search.OutOfMemory}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "" || s == "unknown" {
			t.Errorf("Kind(%d).String() = %q", k, s)
		}
		seen[s] = true
	}
	if len(seen) != len(kinds) {
		t.Error("Kind strings are not distinct")
	}
}

// TestPartitionCoverageViaExhaustion exercises partition indirectly: run a
// systematic search over a space with threads that don't evenly divide it
// and check that the search ends Exhausted for every thread count. It does
// not count how often each candidate is tried.
func TestPartitionCoverageViaExhaustion(t *testing.T) {
	var salt [kdf.SaltSize]byte
	for _, threads := range []int{1, 3, 5, 7} {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		out, err := search.Run(ctx, search.Params{
			NBits:    5,
			Salt:     salt,
			Cost:     cheapCost,
			Strategy: search.Systematic,
			Threads:  threads,
			Command:  alwaysRejectCommand(),
		})
		cancel()
		if !errors.Is(err, search.ErrExhausted) {
			t.Fatalf("threads=%d: err = %v, want ErrExhausted", threads, err)
		}
		if out.Kind != search.Exhausted {
			t.Fatalf("threads=%d: Kind = %v, want Exhausted", threads, out.Kind)
		}
	}
}
