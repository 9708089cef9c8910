// Package fileio implements the on-disk file formats of spec.md §6: hex
// files for salts, preimages and keys, the optional JSON params file, and
// the "-" stdin/stdout convention. Reads and writes follow the teacher's
// database package style (os.ReadFile/os.WriteFile over filepath.Clean
// paths, errors wrapped with apperror), with writes additionally staged
// through a temp file and renamed into place so a failed or interrupted
// write never leaves a partial output file (spec.md §7).
package fileio

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wskdf/wskdf/apperror"
	"github.com/wskdf/wskdf/kdf"
	"github.com/wskdf/wskdf/preimage"
)

// Stdio is the path sentinel meaning "read from stdin" / "write to stdout".
const Stdio = "-"

const (
	// SaltHexLen is the length of a hex-encoded salt file's content.
	SaltHexLen = kdf.SaltSize * 2
	// KeyHexLen is the length of a hex-encoded key file's content.
	KeyHexLen = kdf.KeySize * 2
	// PreimageHexLen is the length of a hex-encoded preimage file's content.
	PreimageHexLen = preimage.HexLen
)

// ErrIO wraps any underlying file read/write failure.
var ErrIO = apperror.NewError("file i/o failed")

// ErrInvalidHex is returned when file content does not parse as the
// expected fixed-length lowercase hex string.
var ErrInvalidHex = apperror.NewError("invalid hex file content")

// ReadHex reads path (or stdin if path is Stdio), trims surrounding
// whitespace, and validates the result is exactly wantLen lowercase hex
// characters.
func ReadHex(path string, wantLen int) (string, error) {
	raw, err := readAll(path)
	if err != nil {
		return "", err
	}

	s := strings.TrimSpace(string(raw))
	if len(s) != wantLen {
		return "", apperror.Wrap(ErrInvalidHex).(apperror.Error).
			AddDetail("path", path).AddDetail("length", len(s)).AddDetail("want", wantLen)
	}
	for _, c := range s {
		if !isLowerHex(c) {
			return "", apperror.Wrap(ErrInvalidHex).(apperror.Error).
				AddDetail("path", path).AddDetail("char", string(c))
		}
	}
	return s, nil
}

func isLowerHex(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

// WriteHex writes s followed by a trailing newline to path (or stdout if
// path is Stdio), atomically for regular files.
func WriteHex(path string, s string) error {
	return writeAll(path, []byte(s+"\n"))
}

// ReadSalt reads and decodes a salt file.
func ReadSalt(path string) ([kdf.SaltSize]byte, error) {
	var salt [kdf.SaltSize]byte
	s, err := ReadHex(path, SaltHexLen)
	if err != nil {
		return salt, err
	}
	b, err := decodeFixedHex(s, kdf.SaltSize)
	if err != nil {
		return salt, err
	}
	copy(salt[:], b)
	return salt, nil
}

// WriteSalt writes a salt file.
func WriteSalt(path string, salt [kdf.SaltSize]byte) error {
	return WriteHex(path, hex.EncodeToString(salt[:]))
}

// ReadPreimage reads and decodes a preimage file.
func ReadPreimage(path string) (uint64, error) {
	s, err := ReadHex(path, PreimageHexLen)
	if err != nil {
		return 0, err
	}
	return preimage.DecodeHex(s)
}

// WritePreimage writes a preimage file.
func WritePreimage(path string, x uint64) error {
	return WriteHex(path, preimage.Hex(x))
}

// ReadKey reads and decodes a key file.
func ReadKey(path string) ([kdf.KeySize]byte, error) {
	var key [kdf.KeySize]byte
	s, err := ReadHex(path, KeyHexLen)
	if err != nil {
		return key, err
	}
	b, err := decodeFixedHex(s, kdf.KeySize)
	if err != nil {
		return key, err
	}
	copy(key[:], b)
	return key, nil
}

// WriteKey writes a key file.
func WriteKey(path string, key [kdf.KeySize]byte) error {
	return WriteHex(path, hex.EncodeToString(key[:]))
}

// Params mirrors the optional JSON params file of spec.md §6.
type Params struct {
	NBits       int    `json:"n_bits"`
	OpsLimit    int    `json:"ops_limit"`
	MemLimitKiB int    `json:"mem_limit_kbytes"`
	SaltHex     string `json:"salt_hex"`
}

// ReadParams reads and parses a params JSON file.
func ReadParams(path string) (Params, error) {
	var p Params
	raw, err := readAll(path)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, apperror.Wrap(ErrInvalidHex).(apperror.Error).
			AddDetail("path", path).AddError(err)
	}
	return p, nil
}

// WriteParams writes a params JSON file.
func WriteParams(path string, p Params) error {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return apperror.Wrap(err)
	}
	return writeAll(path, append(raw, '\n'))
}

func readAll(path string) ([]byte, error) {
	if path == Stdio {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, apperror.Wrap(ErrIO).(apperror.Error).AddDetail("path", path).AddError(err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, apperror.Wrap(ErrIO).(apperror.Error).AddDetail("path", path).AddError(err)
	}
	return raw, nil
}

// writeAll writes data to path. For a regular file it stages the content in
// a sibling temp file and renames it into place, so a process that dies
// mid-write never leaves a truncated file at path.
func writeAll(path string, data []byte) error {
	if path == Stdio {
		if _, err := os.Stdout.Write(data); err != nil {
			return apperror.Wrap(ErrIO).(apperror.Error).AddDetail("path", path).AddError(err)
		}
		return nil
	}

	clean := filepath.Clean(path)
	dir := filepath.Dir(clean)

	tmp, err := os.CreateTemp(dir, ".wskdf-*.tmp")
	if err != nil {
		return apperror.Wrap(ErrIO).(apperror.Error).AddDetail("path", path).AddError(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return apperror.Wrap(ErrIO).(apperror.Error).AddDetail("path", path).AddError(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return apperror.Wrap(ErrIO).(apperror.Error).AddDetail("path", path).AddError(err)
	}
	if err := os.Chmod(tmpName, 0640); err != nil {
		_ = os.Remove(tmpName)
		return apperror.Wrap(ErrIO).(apperror.Error).AddDetail("path", path).AddError(err)
	}
	if err := os.Rename(tmpName, clean); err != nil {
		_ = os.Remove(tmpName)
		return apperror.Wrap(ErrIO).(apperror.Error).AddDetail("path", path).AddError(err)
	}
	return nil
}

func decodeFixedHex(s string, size int) ([]byte, error) {
	if len(s) != size*2 {
		return nil, apperror.Wrap(ErrInvalidHex).(apperror.Error).AddDetail("length", len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, apperror.Wrap(ErrInvalidHex).(apperror.Error).AddError(err)
	}
	return b, nil
}
