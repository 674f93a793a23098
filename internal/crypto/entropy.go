package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

var ErrEntropyUnavailable = errors.New("secure random source unavailable")

// EntropySource fills buffers with cryptographically secure random bytes.
// Implementations must be safe for concurrent use and keep no shared buffer.
type EntropySource interface {
	Fill(buf []byte) error
}

// ReaderSource adapts an io.Reader into an EntropySource.
type ReaderSource struct {
	r io.Reader
}

// NewReaderSource creates a ReaderSource reading from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// SystemSource returns an EntropySource backed by the operating system CSPRNG.
func SystemSource() *ReaderSource {
	return NewReaderSource(rand.Reader)
}

// Fill reads exactly len(buf) bytes. Any failure, including a short read,
// is reported as ErrEntropyUnavailable and is not retried.
func (s *ReaderSource) Fill(buf []byte) error {
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return nil
}
