// Package casemap implements the case mappings IRC servers advertise through
// the CASEMAPPING isupport token. Nicknames and channel names are compared
// and keyed under the active mapping.
package casemap

// A Mapping folds strings into their canonical form. Two names refer to the
// same entity if and only if their folds are byte-identical.
type Mapping interface {
	// Name returns the CASEMAPPING token value this mapping implements.
	Name() string

	// Fold returns the canonical form of s. Folding is idempotent.
	Fold(s string) string

	// Equal reports whether a and b fold to the same string, without
	// allocating.
	Equal(a, b string) bool
}

// RFC1459 is the default mapping: a-z fold to A-Z, and the characters
// {}|~ fold to []\^ since they are considered the lowercase forms of the
// latter in the original protocol.
var RFC1459 Mapping = rfc1459{}

// ASCII folds a-z to A-Z and nothing else.
var ASCII Mapping = ascii{}

// ByName returns the mapping for a CASEMAPPING token value, or the RFC1459
// default if the value is not recognized.
func ByName(name string) Mapping {
	if name == "ascii" {
		return ASCII
	}
	return RFC1459
}

type rfc1459 struct{}

func (rfc1459) Name() string { return "rfc1459" }

func (rfc1459) Fold(s string) string {
	return fold(s, foldRFC1459)
}

func (rfc1459) Equal(a, b string) bool {
	return equal(a, b, foldRFC1459)
}

type ascii struct{}

func (ascii) Name() string { return "ascii" }

func (ascii) Fold(s string) string {
	return fold(s, foldASCII)
}

func (ascii) Equal(a, b string) bool {
	return equal(a, b, foldASCII)
}

func foldRFC1459(c byte) byte {
	switch c {
	case '{':
		return '['
	case '}':
		return ']'
	case '|':
		return '\\'
	case '~':
		return '^'
	}

	return foldASCII(c)
}

func foldASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}

	return c
}

func fold(s string, f func(byte) byte) string {
	for i := 0; i < len(s); i++ {
		if f(s[i]) == s[i] {
			continue
		}

		b := []byte(s)
		for j := i; j < len(b); j++ {
			b[j] = f(b[j])
		}

		return string(b)
	}

	return s
}

func equal(a, b string, f func(byte) byte) bool {
	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a); i++ {
		if f(a[i]) != f(b[i]) {
			return false
		}
	}

	return true
}
