package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vaultpass/pwtool/internal/cli"
	"github.com/vaultpass/pwtool/internal/crypto"
)

func main() {
	name := filepath.Base(os.Args[0])

	opts, err := cli.ParseArgs(name, os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gen := crypto.NewGenerator(crypto.SystemSource())
	if err := cli.Run(opts, gen, os.Stdout); err != nil {
		if errors.Is(err, crypto.ErrEntropyUnavailable) {
			slog.Error("password generation aborted", "error", err)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
