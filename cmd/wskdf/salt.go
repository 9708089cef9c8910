package main

import (
	"context"
	"crypto/rand"

	"github.com/spf13/pflag"

	"github.com/wskdf/wskdf/apperror"
	"github.com/wskdf/wskdf/fileio"
	"github.com/wskdf/wskdf/flag"
	"github.com/wskdf/wskdf/kdf"
)

// cmdGenerateSalt implements `wskdf generate-salt --output <path>`: writes a
// freshly generated random salt to a hex file.
func cmdGenerateSalt(_ context.Context, args []string) int {
	fs := pflag.NewFlagSet("generate-salt", pflag.ContinueOnError)
	fs.BoolVar(&flag.Debug, "debug", flag.Debug, "enable debug logging")
	output := fs.String("output", "", "path to write the generated salt to (\"-\" for stdout)")
	if err := fs.Parse(args); err != nil {
		return usageError("generate-salt", err)
	}
	if *output == "" {
		return usageError("generate-salt", apperror.NewError("--output is required"))
	}

	var salt [kdf.SaltSize]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return fail("generate-salt", err)
	}

	if err := fileio.WriteSalt(*output, salt); err != nil {
		return fail("generate-salt", err)
	}
	return exitOK
}
