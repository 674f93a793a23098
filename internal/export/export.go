// Package export serializes generated passwords to TXT and CSV documents.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Format names a supported export format.
type Format string

const (
	FormatTXT Format = "txt"
	FormatCSV Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatTXT:
		return FormatTXT, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Write serializes passwords to w in the given format.
func Write(f Format, w io.Writer, passwords []string) error {
	switch f {
	case FormatTXT:
		return WriteTXT(w, passwords)
	case FormatCSV:
		return WriteCSV(w, passwords)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// WriteTXT writes one password per line, each terminated with CRLF.
func WriteTXT(w io.Writer, passwords []string) error {
	for _, p := range passwords {
		if _, err := io.WriteString(w, p+"\r\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes a spreadsheet friendly CSV: UTF-8 BOM, a "#,Password"
// header and rows numbered from 1.
func WriteCSV(w io.Writer, passwords []string) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())

	cw := csv.NewWriter(bw)
	cw.UseCRLF = true

	if err := cw.Write([]string{"#", "Password"}); err != nil {
		return err
	}
	for i, p := range passwords {
		if err := cw.Write([]string{strconv.Itoa(i + 1), p}); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Close()
}

// WriteFile creates or truncates path and writes passwords in format f.
func WriteFile(path string, f Format, passwords []string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening %s file for writing: %w", strings.ToUpper(string(f)), err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return Write(f, file, passwords)
}
