package preimage_test

import (
	"testing"

	"github.com/wskdf/wskdf/preimage"
)

func TestHexRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 14, 0xdeadbeef, 1<<63 - 1}
	for _, x := range cases {
		h := preimage.Hex(x)
		if len(h) != preimage.HexLen {
			t.Fatalf("Hex(%d) length = %d, want %d", x, len(h), preimage.HexLen)
		}
		got, err := preimage.DecodeHex(h)
		if err != nil {
			t.Fatalf("DecodeHex(%q): %v", h, err)
		}
		if got != x {
			t.Errorf("round trip mismatch: got %d want %d", got, x)
		}
	}
}

func TestHexKnownValue(t *testing.T) {
	if got := preimage.Hex(14); got != "000000000000000e" {
		t.Errorf("Hex(14) = %q, want %q", got, "000000000000000e")
	}
}

func TestDecodeHexInvalid(t *testing.T) {
	tests := []string{
		"",
		"abc",
		"000000000000000g",  // bad char
		"00000000000000000", // too long
	}
	for _, s := range tests {
		if _, err := preimage.DecodeHex(s); err == nil {
			t.Errorf("DecodeHex(%q) expected error, got nil", s)
		}
	}
}

func TestValidateBits(t *testing.T) {
	if err := preimage.ValidateBits(0); err == nil {
		t.Error("expected error for n=0")
	}
	if err := preimage.ValidateBits(64); err == nil {
		t.Error("expected error for n=64")
	}
	for n := uint8(1); n <= 63; n++ {
		if err := preimage.ValidateBits(n); err != nil {
			t.Errorf("ValidateBits(%d) = %v, want nil", n, err)
		}
	}
}

func TestSpaceSizeAndRange(t *testing.T) {
	for n := uint8(1); n <= 20; n++ {
		space := preimage.SpaceSize(n)
		if space != uint64(1)<<(n-1) {
			t.Errorf("SpaceSize(%d) = %d, want %d", n, space, uint64(1)<<(n-1))
		}
		low, high := preimage.Low(n), preimage.High(n)
		if !preimage.InRange(low, n) {
			t.Errorf("InRange(low=%d, %d) = false, want true", low, n)
		}
		if preimage.InRange(high, n) {
			t.Errorf("InRange(high=%d, %d) = true, want false", high, n)
		}
		if preimage.InRange(low-1, n) && low > 0 {
			t.Errorf("InRange(low-1=%d, %d) = true, want false", low-1, n)
		}
	}
}

func TestMask(t *testing.T) {
	for n := uint8(1); n <= 16; n++ {
		for _, x := range []uint64{0, 1, 0xffffffffffffffff, 0x1234} {
			m := preimage.Mask(x, n)
			if !preimage.InRange(m, n) {
				t.Errorf("Mask(%#x, %d) = %#x not in range", x, n, m)
			}
		}
	}
}

func TestRandomRange(t *testing.T) {
	for n := uint8(1); n <= 40; n++ {
		for i := 0; i < 25; i++ {
			p, err := preimage.Random(n)
			if err != nil {
				t.Fatalf("Random(%d): %v", n, err)
			}
			low, high := preimage.Low(n), preimage.High(n)
			if p < low || p >= high {
				t.Fatalf("Random(%d) = %d, want in [%d, %d)", n, p, low, high)
			}
		}
	}
}

func TestRandomInvalidBits(t *testing.T) {
	if _, err := preimage.Random(0); err == nil {
		t.Error("expected error for n=0")
	}
	if _, err := preimage.Random(64); err == nil {
		t.Error("expected error for n=64")
	}
}
