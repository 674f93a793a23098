package crypto

import "errors"

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars     = "0123456789"

	// DefaultSpecials is the special alphabet used when no override is given.
	DefaultSpecials = "!@#$%^&*()-_=+[]{};:,.?"
)

var ErrInvalidSpecials = errors.New("special characters must be printable ASCII and fit the 256 character alphabet")

// Class identifies one character class. Classes are always processed in
// declaration order.
type Class int

const (
	Upper Class = iota
	Lower
	Digit
	Special
)

func (c Class) String() string {
	switch c {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	case Digit:
		return "digit"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

// ClassSet selects the classes active for a generation run. Upper, Lower and
// Digit are always active. An empty Specials keeps DefaultSpecials.
type ClassSet struct {
	NoSpecial bool
	Specials  string
}

// Classes returns the active classes in fixed order.
func (cs ClassSet) Classes() []Class {
	if cs.NoSpecial {
		return []Class{Upper, Lower, Digit}
	}
	return []Class{Upper, Lower, Digit, Special}
}

// Alphabet returns the characters of class c under this set.
func (cs ClassSet) Alphabet(c Class) string {
	switch c {
	case Upper:
		return uppercaseChars
	case Lower:
		return lowercaseChars
	case Digit:
		return digitChars
	case Special:
		if cs.Specials != "" {
			return cs.Specials
		}
		return DefaultSpecials
	default:
		return ""
	}
}

// Combined concatenates the active alphabets. Characters shared between
// classes are kept, so an override overlapping another class is sampled
// more often.
func (cs ClassSet) Combined() string {
	var all string
	for _, c := range cs.Classes() {
		all += cs.Alphabet(c)
	}
	return all
}

// Validate checks the special override. It is ignored when specials are disabled.
func (cs ClassSet) Validate() error {
	if cs.NoSpecial || cs.Specials == "" {
		return nil
	}
	for i := 0; i < len(cs.Specials); i++ {
		if cs.Specials[i] < 0x20 || cs.Specials[i] > 0x7e {
			return ErrInvalidSpecials
		}
	}
	if len(cs.Combined()) > byteDomain {
		return ErrInvalidSpecials
	}
	return nil
}
