package crypto

import "errors"

// byteDomain is the number of distinct values a single entropy byte can take.
const byteDomain = 256

var ErrInvalidDomain = errors.New("sample domain must be between 1 and 256")

// Sampler draws unbiased indexes from an EntropySource.
type Sampler struct {
	src EntropySource
}

// NewSampler creates a Sampler reading from src.
func NewSampler(src EntropySource) *Sampler {
	return &Sampler{src: src}
}

// UniformIndex returns an index in [0, n) with probability exactly 1/n each.
// Bytes at or above the largest multiple of n that fits in a byte are
// rejected and redrawn, so reducing with b % n carries no modulo bias.
func (s *Sampler) UniformIndex(n int) (int, error) {
	if n <= 0 || n > byteDomain {
		return 0, ErrInvalidDomain
	}

	limit := byteDomain - byteDomain%n
	var b [1]byte
	for {
		if err := s.src.Fill(b[:]); err != nil {
			return 0, err
		}
		if int(b[0]) < limit {
			return int(b[0]) % n, nil
		}
	}
}

// Shuffle permutes data in place with a Fisher-Yates pass driven by UniformIndex.
func (s *Sampler) Shuffle(data []byte) error {
	for i := len(data); i > 1; i-- {
		j, err := s.UniformIndex(i)
		if err != nil {
			return err
		}
		data[i-1], data[j] = data[j], data[i-1]
	}
	return nil
}
