package fileio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wskdf/wskdf/fileio"
	"github.com/wskdf/wskdf/kdf"
)

func TestSaltRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "salt")

	var salt [kdf.SaltSize]byte
	for i := range salt {
		salt[i] = byte(i)
	}

	if err := fileio.WriteSalt(path, salt); err != nil {
		t.Fatalf("WriteSalt: %v", err)
	}
	got, err := fileio.ReadSalt(path)
	if err != nil {
		t.Fatalf("ReadSalt: %v", err)
	}
	if got != salt {
		t.Errorf("round trip mismatch: got %x want %x", got, salt)
	}
}

func TestPreimageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preimage")

	const x = uint64(14)
	if err := fileio.WritePreimage(path, x); err != nil {
		t.Fatalf("WritePreimage: %v", err)
	}
	got, err := fileio.ReadPreimage(path)
	if err != nil {
		t.Fatalf("ReadPreimage: %v", err)
	}
	if got != x {
		t.Errorf("round trip mismatch: got %d want %d", got, x)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key")

	var key [kdf.KeySize]byte
	for i := range key {
		key[i] = byte(255 - i)
	}

	if err := fileio.WriteKey(path, key); err != nil {
		t.Fatalf("WriteKey: %v", err)
	}
	got, err := fileio.ReadKey(path)
	if err != nil {
		t.Fatalf("ReadKey: %v", err)
	}
	if got != key {
		t.Errorf("round trip mismatch: got %x want %x", got, key)
	}
}

func TestReadHexToleratesTrailingWhitespace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preimage")

	raw := "000000000000000e\n\n  "
	if err := writeRaw(t, path, raw); err != nil {
		t.Fatalf("writeRaw: %v", err)
	}

	s, err := fileio.ReadHex(path, fileio.PreimageHexLen)
	if err != nil {
		t.Fatalf("ReadHex: %v", err)
	}
	if s != "000000000000000e" {
		t.Errorf("ReadHex = %q", s)
	}
}

func TestReadHexRejectsWrongLength(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad")
	if err := writeRaw(t, path, "abcd"); err != nil {
		t.Fatalf("writeRaw: %v", err)
	}
	if _, err := fileio.ReadHex(path, fileio.SaltHexLen); err == nil {
		t.Error("expected error for wrong length")
	}
}

func TestReadHexRejectsUppercase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad")
	if err := writeRaw(t, path, "000000000000000E"); err != nil {
		t.Fatalf("writeRaw: %v", err)
	}
	if _, err := fileio.ReadHex(path, fileio.PreimageHexLen); err == nil {
		t.Error("expected error for uppercase hex")
	}
}

func TestWriteHexLeavesNoPartialFileOnRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key")

	var key [kdf.KeySize]byte
	if err := fileio.WriteKey(path, key); err != nil {
		t.Fatalf("WriteKey: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, ".wskdf-*.tmp"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestParamsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.json")

	p := fileio.Params{
		NBits:       20,
		OpsLimit:    7,
		MemLimitKiB: 4 * 1024 * 1024,
		SaltHex:     "000102030405060708090a0b0c0d0e0f",
	}
	if err := fileio.WriteParams(path, p); err != nil {
		t.Fatalf("WriteParams: %v", err)
	}
	got, err := fileio.ReadParams(path)
	if err != nil {
		t.Fatalf("ReadParams: %v", err)
	}
	if got != p {
		t.Errorf("round trip mismatch: got %+v want %+v", got, p)
	}
}

func writeRaw(t *testing.T, path, content string) error {
	t.Helper()
	return os.WriteFile(path, []byte(content), 0640)
}
