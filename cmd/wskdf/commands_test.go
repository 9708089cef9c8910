package main

import (
	"context"
	"errors"
	"testing"

	"github.com/wskdf/wskdf/fileio"
	"github.com/wskdf/wskdf/kdf"
	"github.com/wskdf/wskdf/oracle"
	"github.com/wskdf/wskdf/preimage"
	"github.com/wskdf/wskdf/search"
)

var errUnclassified = errors.New("some other failure")

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"exhausted", search.ErrExhausted, exitExhausted},
		{"oracle unreliable", oracle.ErrUnreliable, exitOracle},
		{"oracle spawn failed", oracle.ErrSpawnFailed, exitOracle},
		{"cost too low", kdf.ErrCostTooLow, exitDerivation},
		{"out of memory", search.ErrOutOfMemory, exitDerivation},
		{"file io", fileio.ErrIO, exitIO},
		{"invalid hex", fileio.ErrInvalidHex, exitIO},
		{"invalid preimage encoding", preimage.ErrInvalidEncoding, exitIO},
		{"invalid bit length", preimage.ErrInvalidBitLength, exitIO},
		{"unclassified", errUnclassified, exitDerivation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRequireNonEmpty(t *testing.T) {
	if err := requireNonEmpty("a", "--a", "b", "--b"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := requireNonEmpty("a", "--a", "", "--b"); err == nil {
		t.Error("expected error for missing --b")
	}
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]search.Strategy{
		"":            search.Systematic,
		"systematic":  search.Systematic,
		"Systematic":  search.Systematic,
		"random":      search.Random,
		"RANDOM":      search.Random,
	}
	for in, want := range cases {
		got, err := parseStrategy(in)
		if err != nil {
			t.Fatalf("parseStrategy(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("parseStrategy(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := parseStrategy("bogus"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestSaltHexOf(t *testing.T) {
	var salt [kdf.SaltSize]byte
	for i := range salt {
		salt[i] = byte(i)
	}
	got := saltHexOf(salt)
	if len(got) != kdf.SaltSize*2 {
		t.Errorf("saltHexOf length = %d, want %d", len(got), kdf.SaltSize*2)
	}
}

func TestMeasureAvgDerivationTimeMultiThread(t *testing.T) {
	var salt [kdf.SaltSize]byte
	cost := kdf.Cost{OpsLimit: kdf.MinOpsLimit, MemLimitKiB: kdf.MinMemLimitKiB}

	avg, err := measureAvgDerivationTime(context.Background(), 2, 4, salt, cost)
	if err != nil {
		t.Fatalf("measureAvgDerivationTime: %v", err)
	}
	if avg <= 0 {
		t.Errorf("avg = %v, want > 0", avg)
	}
}

func TestScanDebug(t *testing.T) {
	if scanDebug([]string{"-n", "20"}) {
		t.Error("expected false without --debug")
	}
	if !scanDebug([]string{"-n", "20", "--debug"}) {
		t.Error("expected true with --debug")
	}
	if !scanDebug([]string{"-debug"}) {
		t.Error("expected true with -debug")
	}
}
