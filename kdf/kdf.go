// Package kdf wraps Argon2id into the single pure function WSKDF's search
// engine and CLI need: turn a preimage, a salt and a cost into a 32-byte
// key, deterministically.
//
// The derivation itself is grounded on the teacher's security.DeriveArgon2Key,
// generalized so the cost parameters travel with the data instead of being
// hardcoded constants, because WSKDF persists them alongside key material.
package kdf

import (
	"golang.org/x/crypto/argon2"

	"github.com/wskdf/wskdf/apperror"
)

const (
	// SaltSize is the fixed salt length in bytes.
	SaltSize = 16
	// KeySize is the fixed derived key length in bytes.
	KeySize = 32
	// PreimageSize is the fixed big-endian encoded preimage length in bytes.
	PreimageSize = 8

	// Lanes is the Argon2id parallelism parameter. It is fixed at 1 to match
	// the rust-argon2 crate's Config::default() used by the reference
	// implementation this tool was distilled from. Derived keys are not
	// portable across different lane counts, so this must never change.
	Lanes = 1

	// MinMemLimitKiB is the lowest memory cost Argon2id will accept; below
	// this the underlying primitive rejects the parameters.
	MinMemLimitKiB = 8 * Lanes
	// MinOpsLimit is the lowest iteration count Argon2id will accept.
	MinOpsLimit = 1
)

// DefaultCost matches the release-mode defaults documented in spec.md §6:
// roughly 30s per derivation on a 16-core desktop.
var DefaultCost = Cost{OpsLimit: 7, MemLimitKiB: 4 * 1024 * 1024}

// ErrCostTooLow is returned when the cost parameters fall below what
// Argon2id requires to run at all.
var ErrCostTooLow = apperror.NewError("argon2id cost parameters are too low")

// Cost holds the Argon2id time/memory cost parameters. It is serialized
// verbatim into the params JSON file described in spec.md §6.
type Cost struct {
	OpsLimit    uint32 `json:"ops_limit"`
	MemLimitKiB uint32 `json:"mem_limit_kbytes"`
}

// Validate reports whether the cost parameters are within Argon2id's
// operating range.
func (c Cost) Validate() error {
	if c.OpsLimit < MinOpsLimit {
		return apperror.Wrap(ErrCostTooLow).(apperror.Error).
			AddDetail("ops_limit", c.OpsLimit)
	}
	if c.MemLimitKiB < MinMemLimitKiB {
		return apperror.Wrap(ErrCostTooLow).(apperror.Error).
			AddDetail("mem_limit_kbytes", c.MemLimitKiB)
	}
	return nil
}

// Derive computes the Argon2id key for a preimage integer under the given
// salt and cost. It is a pure function: identical inputs always yield an
// identical 32-byte key, on any platform, at any thread count.
//
// preimage is the raw password bytes (the 8-byte big-endian encoding from
// the preimage package), not the integer itself, so this package stays
// agnostic of the encoding contract.
func Derive(preimage []byte, salt [SaltSize]byte, cost Cost) ([KeySize]byte, error) {
	var key [KeySize]byte
	if err := cost.Validate(); err != nil {
		return key, err
	}

	raw := argon2.IDKey(preimage, salt[:], cost.OpsLimit, cost.MemLimitKiB, Lanes, KeySize)
	copy(key[:], raw)
	return key, nil
}
