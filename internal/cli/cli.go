// Package cli implements the pwtool command line front end.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/vaultpass/pwtool/internal/crypto"
	"github.com/vaultpass/pwtool/internal/export"
)

var (
	ErrInvalidCount  = errors.New("invalid count")
	ErrInvalidLength = errors.New("invalid length (must be >=16)")
)

// Options holds the parsed command line flags.
type Options struct {
	Count     int
	Length    int
	Specials  string
	NoSpecial bool
	Quiet     bool
	OutTXT    string
	OutCSV    string
}

const usage = `Usage: %s [options]
Options:
  -n <N>          Number of passwords (default 1)
  -l <L>          Password length (16-256, default 16)
  --specials s    Override special characters set
  --nospecial     Exclude special characters entirely
  -txt <file>     Save passwords to a .txt file (one per line)
  -csv <file>     Save passwords to a CSV (Excel-friendly, numbered)
  -q              Quiet mode (only print passwords to stdout)
  -h              Show help
`

// ParseArgs parses args (without the program name) into Options. It returns
// flag.ErrHelp when help was requested.
func ParseArgs(name string, args []string, stderr io.Writer) (Options, error) {
	opts := Options{Count: 1, Length: crypto.MinLength}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprintf(stderr, usage, name) }

	fs.IntVar(&opts.Count, "n", opts.Count, "Number of passwords")
	fs.IntVar(&opts.Length, "l", opts.Length, "Password length")
	fs.StringVar(&opts.Specials, "specials", "", "Override special characters set")
	fs.BoolVar(&opts.NoSpecial, "nospecial", false, "Exclude special characters entirely")
	fs.StringVar(&opts.OutTXT, "txt", "", "Save passwords to a .txt file")
	fs.StringVar(&opts.OutCSV, "csv", "", "Save passwords to a CSV file")
	fs.BoolVar(&opts.Quiet, "q", false, "Quiet mode")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Unknown option: %s\n", fs.Arg(0))
		fs.Usage()
		return Options{}, fmt.Errorf("unknown option: %s", fs.Arg(0))
	}

	if opts.Count < 1 {
		return Options{}, ErrInvalidCount
	}
	if opts.Length < crypto.MinLength || opts.Length > crypto.MaxLength {
		return Options{}, ErrInvalidLength
	}

	return opts, nil
}

// GeneratorOptions converts the flags into generator options.
func (o Options) GeneratorOptions() crypto.GeneratorOptions {
	return crypto.GeneratorOptions{
		Length:    o.Length,
		NoSpecial: o.NoSpecial,
		Specials:  o.Specials,
	}
}

// Run generates the requested passwords, prints them to stdout and writes
// the optional TXT and CSV files. Nothing is printed or written when any
// password in the batch fails.
func Run(opts Options, gen *crypto.Generator, stdout io.Writer) error {
	passwords, err := gen.GenerateBatch(opts.Count, opts.GeneratorOptions())
	if err != nil {
		return err
	}

	if !opts.Quiet {
		suffix := ""
		if opts.NoSpecial {
			suffix = " (no specials)"
		}
		fmt.Fprintf(stdout, "Generated %d password(s) of length %d%s.\n", len(passwords), opts.Length, suffix)
	}

	for _, p := range passwords {
		fmt.Fprintln(stdout, p)
	}

	if opts.OutTXT != "" {
		if err := export.WriteFile(opts.OutTXT, export.FormatTXT, passwords); err != nil {
			return err
		}
		if !opts.Quiet {
			fmt.Fprintf(stdout, "Wrote TXT: %s\n", opts.OutTXT)
		}
	}

	if opts.OutCSV != "" {
		if err := export.WriteFile(opts.OutCSV, export.FormatCSV, passwords); err != nil {
			return err
		}
		if !opts.Quiet {
			fmt.Fprintf(stdout, "Wrote CSV: %s\n", opts.OutCSV)
		}
	}

	return nil
}
