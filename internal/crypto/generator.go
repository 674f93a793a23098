package crypto

import "errors"

const (
	MinLength   = 16
	MinPerClass = 2

	// MaxLength keeps every shuffle index inside the single byte sampling domain.
	MaxLength = byteDomain
)

var (
	ErrInvalidLength = errors.New("password length must be between 16 and 256")
	ErrInvalidCount  = errors.New("password count must be at least 1")
)

// GeneratorOptions configures the password generator.
type GeneratorOptions struct {
	Length    int
	NoSpecial bool
	Specials  string
}

// DefaultOptions returns 16 characters with all four classes enabled.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{Length: MinLength}
}

// ClassSet returns the character classes selected by the options.
func (o GeneratorOptions) ClassSet() ClassSet {
	return ClassSet{NoSpecial: o.NoSpecial, Specials: o.Specials}
}

// Generator builds passwords with guaranteed class coverage.
type Generator struct {
	sampler *Sampler
}

// NewGenerator creates a Generator drawing from src.
func NewGenerator(src EntropySource) *Generator {
	return &Generator{sampler: NewSampler(src)}
}

// Generate creates a password of opts.Length characters containing at least
// MinPerClass characters of every active class, uniformly shuffled.
func (g *Generator) Generate(opts GeneratorOptions) (string, error) {
	if opts.Length < MinLength || opts.Length > MaxLength {
		return "", ErrInvalidLength
	}

	set := opts.ClassSet()
	if err := set.Validate(); err != nil {
		return "", err
	}

	result := make([]byte, 0, opts.Length)

	// Guarantee the minimum from each class before filling from the full pool.
	for _, class := range set.Classes() {
		charset := set.Alphabet(class)
		for k := 0; k < MinPerClass && len(result) < opts.Length; k++ {
			ch, err := g.randChar(charset)
			if err != nil {
				return "", err
			}
			result = append(result, ch)
		}
	}

	pool := set.Combined()
	for len(result) < opts.Length {
		ch, err := g.randChar(pool)
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}

	if err := g.sampler.Shuffle(result); err != nil {
		return "", err
	}

	return string(result), nil
}

// GenerateBatch creates count independent passwords in order. On failure it
// returns the passwords completed before the error alongside it.
func (g *Generator) GenerateBatch(count int, opts GeneratorOptions) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}

	passwords := make([]string, 0, count)
	for i := 0; i < count; i++ {
		pw, err := g.Generate(opts)
		if err != nil {
			return passwords, err
		}
		passwords = append(passwords, pw)
	}
	return passwords, nil
}

// randChar picks a character from charset with UniformIndex.
func (g *Generator) randChar(charset string) (byte, error) {
	idx, err := g.sampler.UniformIndex(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[idx], nil
}

// IsValidationError reports whether err was caused by caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrInvalidSpecials) ||
		errors.Is(err, ErrInvalidCount)
}
