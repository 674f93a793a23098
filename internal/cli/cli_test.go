package cli

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpass/pwtool/internal/crypto"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestParseArgsDefaults(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := ParseArgs("pwtool", nil, &stderr)
	require.NoError(t, err)

	assert.Equal(t, Options{Count: 1, Length: 16}, opts)
	assert.Empty(t, stderr.String())
}

func TestParseArgsAllFlags(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := ParseArgs("pwtool", []string{
		"-n", "5", "-l", "24", "--specials", "#%", "-txt", "out.txt", "-csv", "out.csv", "-q",
	}, &stderr)
	require.NoError(t, err)

	assert.Equal(t, Options{
		Count:    5,
		Length:   24,
		Specials: "#%",
		Quiet:    true,
		OutTXT:   "out.txt",
		OutCSV:   "out.csv",
	}, opts)
}

func TestParseArgsNoSpecial(t *testing.T) {
	opts, err := ParseArgs("pwtool", []string{"--nospecial"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.True(t, opts.NoSpecial)
	assert.True(t, opts.GeneratorOptions().NoSpecial)
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "zero count", args: []string{"-n", "0"}, wantErr: ErrInvalidCount},
		{name: "short length", args: []string{"-l", "15"}, wantErr: ErrInvalidLength},
		{name: "long length", args: []string{"-l", "257"}, wantErr: ErrInvalidLength},
		{name: "help", args: []string{"-h"}, wantErr: flag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs("pwtool", tt.args, &bytes.Buffer{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseArgsUnknown(t *testing.T) {
	var stderr bytes.Buffer

	_, err := ParseArgs("pwtool", []string{"-bogus"}, &stderr)
	assert.Error(t, err)
	assert.Contains(t, stderr.String(), "Usage: pwtool")

	stderr.Reset()
	_, err = ParseArgs("pwtool", []string{"extra"}, &stderr)
	assert.Error(t, err)
	assert.Contains(t, stderr.String(), "Unknown option: extra")
}

func TestParseArgsMissingValue(t *testing.T) {
	_, err := ParseArgs("pwtool", []string{"-n"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	var stdout bytes.Buffer
	gen := crypto.NewGenerator(crypto.SystemSource())

	require.NoError(t, Run(Options{Count: 3, Length: 20}, gen, &stdout))

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Generated 3 password(s) of length 20.", lines[0])
	for _, l := range lines[1:] {
		assert.Len(t, l, 20)
	}
}

func TestRunQuietNoSpecial(t *testing.T) {
	var stdout bytes.Buffer
	gen := crypto.NewGenerator(crypto.SystemSource())

	require.NoError(t, Run(Options{Count: 2, Length: 16, NoSpecial: true, Quiet: true}, gen, &stdout))

	lines := strings.Fields(stdout.String())
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Regexp(t, `^[A-Za-z0-9]{16}$`, l)
	}
}

func TestRunNoSpecialBanner(t *testing.T) {
	var stdout bytes.Buffer
	gen := crypto.NewGenerator(crypto.SystemSource())

	require.NoError(t, Run(Options{Count: 1, Length: 16, NoSpecial: true}, gen, &stdout))
	assert.True(t, strings.HasPrefix(stdout.String(), "Generated 1 password(s) of length 16 (no specials).\n"))
}

func TestRunWritesFiles(t *testing.T) {
	dir := t.TempDir()
	txtPath := filepath.Join(dir, "out.txt")
	csvPath := filepath.Join(dir, "out.csv")

	var stdout bytes.Buffer
	gen := crypto.NewGenerator(crypto.SystemSource())
	require.NoError(t, Run(Options{Count: 2, Length: 16, OutTXT: txtPath, OutCSV: csvPath}, gen, &stdout))

	assert.Contains(t, stdout.String(), "Wrote TXT: "+txtPath)
	assert.Contains(t, stdout.String(), "Wrote CSV: "+csvPath)

	txt, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(txt), "\r\n"))

	csv, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csv), "\xEF\xBB\xBF#,Password\r\n"))
}

func TestRunEntropyFailurePrintsNothing(t *testing.T) {
	var stdout bytes.Buffer
	gen := crypto.NewGenerator(crypto.NewReaderSource(failingReader{}))

	err := Run(Options{Count: 2, Length: 16}, gen, &stdout)
	assert.ErrorIs(t, err, crypto.ErrEntropyUnavailable)
	assert.Empty(t, stdout.String())
}
