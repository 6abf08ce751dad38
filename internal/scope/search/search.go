// Package search provides the Rabin-Karp substring matcher used to filter inventory lines.
package search

// DefaultModulus is the hash modulus used when none is configured.
const DefaultModulus = 101

// MaxModulus bounds the modulus so that hash products stay within int64.
const MaxModulus = 1<<31 - 1

// polyBase is the radix of the polynomial hash (one digit per byte value).
const polyBase = 256

// HashKind selects the rolling hash used as the candidate filter
type HashKind int

const (
	// HashAdditive sums byte values modulo P. Insensitive to byte order.
	HashAdditive HashKind = iota
	// HashPolynomial weights each byte by its position in the window.
	HashPolynomial
)

// String returns the configuration name of the hash kind
func (k HashKind) String() string {
	switch k {
	case HashPolynomial:
		return "polynomial"
	default:
		return "additive"
	}
}

// ParseHashKind maps a configuration name to a HashKind
func ParseHashKind(name string) (HashKind, bool) {
	switch name {
	case "", "additive":
		return HashAdditive, true
	case "polynomial":
		return HashPolynomial, true
	default:
		return HashAdditive, false
	}
}

// Matcher finds exact occurrences of a pattern in a text line.
// A Matcher holds only its configuration and is safe for concurrent use.
type Matcher struct {
	modulus int64
	hash    HashKind
}

// Option configures a Matcher
type Option func(*Matcher)

// WithModulus sets the hash modulus. Values outside [2, MaxModulus] keep the default.
func WithModulus(p int) Option {
	return func(m *Matcher) {
		if p >= 2 && p <= MaxModulus {
			m.modulus = int64(p)
		}
	}
}

// WithHash sets the rolling hash kind
func WithHash(k HashKind) Option {
	return func(m *Matcher) {
		if k == HashPolynomial {
			m.hash = HashPolynomial
			return
		}
		m.hash = HashAdditive
	}
}

// NewMatcher creates a matcher with the given options
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		modulus: DefaultModulus,
		hash:    HashAdditive,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultMatcher = NewMatcher()

// Default returns the shared matcher with modulus 101 and the additive hash.
func Default() *Matcher {
	return defaultMatcher
}

// Search returns the offsets of pattern in text using the default matcher.
func Search(text, pattern string) []int {
	return defaultMatcher.Search(text, pattern)
}

// Modulus returns the configured modulus
func (m *Matcher) Modulus() int {
	return int(m.modulus)
}

// Hash returns the configured hash kind
func (m *Matcher) Hash() HashKind {
	return m.hash
}

// Search returns every offset i, ascending, where text[i:i+len(pattern)] == pattern.
// Overlapping occurrences are all reported. An empty pattern, or one longer
// than text, yields no offsets.
func (m *Matcher) Search(text, pattern string) []int {
	var offsets []int
	m.scan(text, pattern, func(i int) bool {
		offsets = append(offsets, i)
		return true
	})
	return offsets
}

// Contains reports whether pattern occurs in text. It stops at the first verified hit.
func (m *Matcher) Contains(text, pattern string) bool {
	found := false
	m.scan(text, pattern, func(int) bool {
		found = true
		return false
	})
	return found
}

// scan slides a window over text and calls emit for each verified match
// until emit returns false.
func (m *Matcher) scan(text, pattern string, emit func(int) bool) {
	plen, tlen := len(pattern), len(text)
	if plen == 0 || plen > tlen {
		return
	}

	pow := m.lead(plen)
	patternHash := m.seed(pattern)
	textHash := m.seed(text[:plen])

	for i := 0; i <= tlen-plen; i++ {
		// Hash equality is only a candidate; verify byte by byte.
		if patternHash == textHash && verify(text, pattern, i) {
			if !emit(i) {
				return
			}
		}
		if i < tlen-plen {
			textHash = m.roll(textHash, pow, text[i], text[i+plen])
		}
	}
}

func verify(text, pattern string, at int) bool {
	for j := 0; j < len(pattern); j++ {
		if text[at+j] != pattern[j] {
			return false
		}
	}
	return true
}

// seed hashes s from scratch
func (m *Matcher) seed(s string) int64 {
	var h int64
	for i := 0; i < len(s); i++ {
		if m.hash == HashPolynomial {
			h = (h*polyBase + int64(s[i])) % m.modulus
		} else {
			h = (h + int64(s[i])) % m.modulus
		}
	}
	return h
}

// lead returns the weight of the outgoing byte: polyBase^(n-1) mod P for
// the polynomial hash, 1 for the additive hash.
func (m *Matcher) lead(n int) int64 {
	if m.hash != HashPolynomial {
		return 1
	}
	w := int64(1)
	for i := 1; i < n; i++ {
		w = (w * polyBase) % m.modulus
	}
	return w
}

// roll drops out from the window hash h and appends in.
// The result is always in [0, modulus).
func (m *Matcher) roll(h, pow int64, out, in byte) int64 {
	h = (h - int64(out)*pow) % m.modulus
	if h < 0 {
		h += m.modulus
	}
	if m.hash == HashPolynomial {
		return (h*polyBase + int64(in)) % m.modulus
	}
	return (h + int64(in)) % m.modulus
}
