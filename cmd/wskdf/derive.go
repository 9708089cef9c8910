package main

import (
	"context"
	"encoding/hex"

	"github.com/spf13/pflag"

	"github.com/wskdf/wskdf/apperror"
	"github.com/wskdf/wskdf/fileio"
	"github.com/wskdf/wskdf/flag"
	"github.com/wskdf/wskdf/kdf"
	"github.com/wskdf/wskdf/preimage"
)

// cmdOutputRandomKey implements `wskdf output-random-key`: draws a random
// n-bit preimage, derives its key and writes preimage/key (and optionally
// the params file) to disk, per spec.md §6.
func cmdOutputRandomKey(_ context.Context, args []string) int {
	fs := pflag.NewFlagSet("output-random-key", pflag.ContinueOnError)
	fs.BoolVar(&flag.Debug, "debug", flag.Debug, "enable debug logging")
	var cost costFlags
	cost.register(fs)
	nBits := fs.Uint8P("n-bits", "n", 0, "preimage bit length")
	preimageOut := fs.String("preimage-output", "", "path to write the preimage to")
	keyOut := fs.String("key-output", "", "path to write the derived key to")
	saltIn := fs.String("salt-input", "", "path to read the salt from")
	paramsOut := fs.String("params-output", "", "optional path to write a params JSON file to")
	if err := fs.Parse(args); err != nil {
		return usageError("output-random-key", err)
	}
	if err := requireNonEmpty(*preimageOut, "--preimage-output", *keyOut, "--key-output", *saltIn, "--salt-input"); err != nil {
		return usageError("output-random-key", err)
	}
	if err := preimage.ValidateBits(*nBits); err != nil {
		return usageError("output-random-key", err)
	}

	salt, err := fileio.ReadSalt(*saltIn)
	if err != nil {
		return fail("output-random-key", err)
	}

	x, err := preimage.Random(*nBits)
	if err != nil {
		return fail("output-random-key", err)
	}

	enc := preimage.Encode(x)
	key, err := kdf.Derive(enc[:], salt, cost.cost())
	if err != nil {
		return fail("output-random-key", err)
	}

	if err := fileio.WritePreimage(*preimageOut, x); err != nil {
		return fail("output-random-key", err)
	}
	if err := fileio.WriteKey(*keyOut, key); err != nil {
		return fail("output-random-key", err)
	}
	if *paramsOut != "" {
		p := fileio.Params{
			NBits:       int(*nBits),
			OpsLimit:    int(cost.opsLimit),
			MemLimitKiB: int(cost.memLimitKiB),
			SaltHex:     saltHexOf(salt),
		}
		if err := fileio.WriteParams(*paramsOut, p); err != nil {
			return fail("output-random-key", err)
		}
	}
	return exitOK
}

// cmdDeriveKey implements `wskdf derive-key`: derives a key for a known
// preimage and writes it to disk.
func cmdDeriveKey(_ context.Context, args []string) int {
	fs := pflag.NewFlagSet("derive-key", pflag.ContinueOnError)
	fs.BoolVar(&flag.Debug, "debug", flag.Debug, "enable debug logging")
	var cost costFlags
	cost.register(fs)
	preimageIn := fs.String("preimage-input", "", "path to read the preimage from")
	keyOut := fs.String("key-output", "", "path to write the derived key to")
	saltIn := fs.String("salt-input", "", "path to read the salt from")
	if err := fs.Parse(args); err != nil {
		return usageError("derive-key", err)
	}
	if err := requireNonEmpty(*preimageIn, "--preimage-input", *keyOut, "--key-output", *saltIn, "--salt-input"); err != nil {
		return usageError("derive-key", err)
	}

	salt, err := fileio.ReadSalt(*saltIn)
	if err != nil {
		return fail("derive-key", err)
	}
	x, err := fileio.ReadPreimage(*preimageIn)
	if err != nil {
		return fail("derive-key", err)
	}

	enc := preimage.Encode(x)
	key, err := kdf.Derive(enc[:], salt, cost.cost())
	if err != nil {
		return fail("derive-key", err)
	}

	if err := fileio.WriteKey(*keyOut, key); err != nil {
		return fail("derive-key", err)
	}
	return exitOK
}

// cmdCheckPreimage implements the supplemental `wskdf check-preimage`
// command: re-derives the key for a claimed preimage and reports whether it
// matches a previously recorded key, without invoking an oracle.
func cmdCheckPreimage(_ context.Context, args []string) int {
	fs := pflag.NewFlagSet("check-preimage", pflag.ContinueOnError)
	fs.BoolVar(&flag.Debug, "debug", flag.Debug, "enable debug logging")
	var cost costFlags
	cost.register(fs)
	preimageIn := fs.String("preimage-input", "", "path to read the claimed preimage from")
	keyIn := fs.String("key-input", "", "path to read the expected key from")
	saltIn := fs.String("salt-input", "", "path to read the salt from")
	if err := fs.Parse(args); err != nil {
		return usageError("check-preimage", err)
	}
	if err := requireNonEmpty(*preimageIn, "--preimage-input", *keyIn, "--key-input", *saltIn, "--salt-input"); err != nil {
		return usageError("check-preimage", err)
	}

	salt, err := fileio.ReadSalt(*saltIn)
	if err != nil {
		return fail("check-preimage", err)
	}
	x, err := fileio.ReadPreimage(*preimageIn)
	if err != nil {
		return fail("check-preimage", err)
	}
	wantKey, err := fileio.ReadKey(*keyIn)
	if err != nil {
		return fail("check-preimage", err)
	}

	enc := preimage.Encode(x)
	gotKey, err := kdf.Derive(enc[:], salt, cost.cost())
	if err != nil {
		return fail("check-preimage", err)
	}

	if gotKey != wantKey {
		return fail("check-preimage", apperror.NewError("preimage does not derive the expected key"))
	}
	return exitOK
}

func requireNonEmpty(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i] == "" {
			return apperror.NewErrorf("%s is required", pairs[i+1])
		}
	}
	return nil
}

func saltHexOf(salt [kdf.SaltSize]byte) string {
	return hex.EncodeToString(salt[:])
}
