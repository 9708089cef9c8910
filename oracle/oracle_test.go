package oracle_test

import (
	"context"
	"testing"
	"time"

	"github.com/wskdf/wskdf/oracle"
)

func TestRunAccept(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reg := oracle.NewRegistry()
	v, err := oracle.Run(ctx, reg, oracle.Command{Argv: []string{"true"}}, "ab")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v != oracle.Accept {
		t.Errorf("verdict = %v, want Accept", v)
	}
	if reg.Count() != 0 {
		t.Errorf("registry leaked %d entries", reg.Count())
	}
}

func TestRunReject(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reg := oracle.NewRegistry()
	v, err := oracle.Run(ctx, reg, oracle.Command{Argv: []string{"false"}}, "ab")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v != oracle.Reject {
		t.Errorf("verdict = %v, want Reject", v)
	}
}

func TestRunSpawnFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reg := oracle.NewRegistry()
	v, err := oracle.Run(ctx, reg, oracle.Command{Argv: []string{"/nonexistent/binary/wskdf-oracle-test"}}, "ab")
	if err == nil {
		t.Fatal("expected error for nonexistent binary")
	}
	if v != oracle.Error {
		t.Errorf("verdict = %v, want Error", v)
	}
}

func TestRunEchoesKeyOnStdin(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reg := oracle.NewRegistry()
	// grep exits 0 iff the pattern is found in its stdin.
	v, err := oracle.Run(ctx, reg, oracle.Command{Argv: []string{"grep", "-q", "deadbeef"}}, "deadbeef")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v != oracle.Accept {
		t.Errorf("verdict = %v, want Accept", v)
	}
}

func TestTrackerThreshold(t *testing.T) {
	var tr oracle.Tracker
	for i := 0; i < oracle.ConsecutiveErrorThreshold; i++ {
		if unreliable := tr.Observe(oracle.Error); unreliable {
			t.Fatalf("became unreliable too early at i=%d", i)
		}
	}
	if unreliable := tr.Observe(oracle.Error); !unreliable {
		t.Fatal("expected unreliable after exceeding threshold")
	}
}

func TestTrackerResetsOnReject(t *testing.T) {
	var tr oracle.Tracker
	for i := 0; i < oracle.ConsecutiveErrorThreshold; i++ {
		tr.Observe(oracle.Error)
	}
	tr.Observe(oracle.Reject)
	if unreliable := tr.Observe(oracle.Error); unreliable {
		t.Fatal("counter should have reset after a Reject")
	}
}

func TestRegistryKillAll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reg := oracle.NewRegistry()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = oracle.Run(ctx, reg, oracle.Command{Argv: []string{"sleep", "30"}}, "ab")
	}()

	deadline := time.Now().Add(2 * time.Second)
	for reg.Count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	reg.KillAll()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("oracle child was not terminated by cancellation")
	}
}
