// Package preimage implements the canonical encoding of WSKDF preimages:
// a fixed 8-byte big-endian integer, and its 16-character lowercase hex
// rendering. The same byte string is later fed to kdf.Derive as the
// Argon2id password.
package preimage

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"math/bits"

	"github.com/wskdf/wskdf/apperror"
)

// Size is the fixed width, in bytes, of an encoded preimage.
const Size = 8

// HexLen is the number of lowercase hex characters an encoded preimage
// renders to.
const HexLen = Size * 2

// MinBits and MaxBits bound the valid preimage bit length. MaxBits is 63,
// not 64, because the reference implementation stores preimages in a
// signed-friendly 64-bit integer; keeping the bound at 63 preserves
// byte-for-byte compatibility with existing preimage files (spec.md §9).
const (
	MinBits = 1
	MaxBits = 63
)

// ErrInvalidEncoding is returned when decoding malformed hex input.
var ErrInvalidEncoding = apperror.NewError("invalid preimage encoding")

// ErrInvalidBitLength is returned when n falls outside [MinBits, MaxBits].
var ErrInvalidBitLength = apperror.NewError("bit length out of range")

// ValidateBits reports whether n is a usable bit length.
func ValidateBits(n uint8) error {
	if n < MinBits || n > MaxBits {
		return apperror.Wrap(ErrInvalidBitLength).(apperror.Error).
			AddDetail("n_bits", n)
	}
	return nil
}

// Encode renders x as its canonical 8-byte big-endian encoding. The
// encoding is fixed-width regardless of n, decoupling serialization from
// the bit length and making hand-copied preimages unambiguous.
func Encode(x uint64) [Size]byte {
	var b [Size]byte
	binary.BigEndian.PutUint64(b[:], x)
	return b
}

// Decode parses the canonical 8-byte encoding back to an integer.
func Decode(b [Size]byte) uint64 {
	return binary.BigEndian.Uint64(b[:])
}

// Hex renders x as exactly HexLen lowercase hex characters.
func Hex(x uint64) string {
	b := Encode(x)
	return hex.EncodeToString(b[:])
}

// DecodeHex parses a HexLen-character lowercase hex string back into the
// encoded integer, failing with ErrInvalidEncoding on length or character
// errors.
func DecodeHex(s string) (uint64, error) {
	if len(s) != HexLen {
		return 0, apperror.Wrap(ErrInvalidEncoding).(apperror.Error).
			AddDetail("length", len(s))
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, apperror.Wrap(ErrInvalidEncoding).(apperror.Error).AddError(err)
	}

	var fixed [Size]byte
	copy(fixed[:], b)
	return Decode(fixed), nil
}

// Low returns the inclusive lower bound 2^(n-1) of the valid candidate
// space for bit length n.
func Low(n uint8) uint64 {
	return uint64(1) << (n - 1)
}

// High returns the exclusive upper bound 2^n of the valid candidate space
// for bit length n.
func High(n uint8) uint64 {
	return uint64(1) << n
}

// SpaceSize returns |S(n)| = 2^(n-1), the number of valid preimages for
// bit length n.
func SpaceSize(n uint8) uint64 {
	return Low(n)
}

// InRange reports whether x is a valid n-bit preimage: MSB n-1 set, no
// bits at or above n set.
func InRange(x uint64, n uint8) bool {
	if n == 64 {
		return true
	}
	return x>>(n-1) == 1
}

// Mask forces x into the valid n-bit candidate space: bit n-1 is set, and
// all bits at or above n are cleared.
func Mask(x uint64, n uint8) uint64 {
	hi := Low(n)
	return (x & (hi - 1)) | hi
}

// Random draws a preimage uniformly from [2^(n-1), 2^n) using a
// cryptographically seeded source, as used by the `output-random-key`
// command and by the search engine's random strategy.
func Random(n uint8) (uint64, error) {
	if err := ValidateBits(n); err != nil {
		return 0, err
	}

	space := SpaceSize(n) // number of valid values, a power of two
	bitsNeeded := bits.Len64(space - 1)
	if space == 1 {
		bitsNeeded = 0
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, apperror.Wrap(err)
	}
	raw := binary.BigEndian.Uint64(buf[:])
	offset := raw
	if bitsNeeded < 64 {
		offset &= (uint64(1) << bitsNeeded) - 1
	}
	if offset >= space {
		offset %= space
	}

	return Low(n) + offset, nil
}
