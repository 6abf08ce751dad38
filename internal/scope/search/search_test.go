package search

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteForce is the reference oracle for Search.
func bruteForce(text, pattern string) []int {
	var out []int
	if pattern == "" {
		return out
	}
	for i := 0; i+len(pattern) <= len(text); i++ {
		if text[i:i+len(pattern)] == pattern {
			out = append(out, i)
		}
	}
	return out
}

func TestSearchScenarios(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		want    []int
	}{
		{"two occurrences", "abracadabra", "abra", []int{0, 7}},
		{"overlapping", "aaaa", "aa", []int{0, 1, 2}},
		{"not found", "hello", "world", nil},
		{"empty text", "", "a", nil},
		{"inventory line", "widget,12", "widget", []int{0}},
		{"empty pattern", "anything", "", nil},
		{"empty both", "", "", nil},
		{"pattern longer than text", "ab", "abc", nil},
		{"whole text", "bolt", "bolt", []int{0}},
		{"suffix", "hex bolt", "bolt", []int{4}},
		{"case sensitive", "Widget", "widget", nil},
		{"single byte", "banana", "a", []int{1, 3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, m := range []*Matcher{Default(), NewMatcher(WithHash(HashPolynomial))} {
				got := m.Search(tt.text, tt.pattern)
				assert.Equal(t, tt.want, got, "hash=%s", m.Hash())
				assert.Equal(t, len(tt.want) > 0, m.Contains(tt.text, tt.pattern))
			}
		})
	}
}

func TestSearchPackageLevel(t *testing.T) {
	assert.Equal(t, []int{0, 7}, Search("abracadabra", "abra"))
}

func TestSearchAnagramCollision(t *testing.T) {
	// "ab" and "ba" hash equally under the additive hash; verification must reject "ba".
	m := NewMatcher()
	require.Equal(t, m.seed("ab"), m.seed("ba"))
	assert.Equal(t, []int{2}, m.Search("baab", "ab"))
}

func TestSearchTinyModulusStillExact(t *testing.T) {
	// Modulus 2 makes roughly half of all windows candidates.
	m := NewMatcher(WithModulus(2))
	assert.Equal(t, 2, m.Modulus())
	assert.Equal(t, []int{3}, m.Search("xyzabc", "abc"))
}

func TestWithModulusOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		p    int
		want int
	}{
		{"zero", 0, DefaultModulus},
		{"one", 1, DefaultModulus},
		{"negative", -7, DefaultModulus},
		{"too large", MaxModulus + 1, DefaultModulus},
		{"max", MaxModulus, MaxModulus},
		{"prime", 997, 997},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMatcher(WithModulus(tt.p)).Modulus())
		})
	}
}

func TestParseHashKind(t *testing.T) {
	k, ok := ParseHashKind("polynomial")
	assert.True(t, ok)
	assert.Equal(t, HashPolynomial, k)

	k, ok = ParseHashKind("")
	assert.True(t, ok)
	assert.Equal(t, HashAdditive, k)

	_, ok = ParseHashKind("sha256")
	assert.False(t, ok)

	assert.Equal(t, "polynomial", HashPolynomial.String())
	assert.Equal(t, "additive", HashAdditive.String())
}

func TestSearchMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	matchers := []*Matcher{
		NewMatcher(),
		NewMatcher(WithModulus(2)),
		NewMatcher(WithModulus(MaxModulus)),
		NewMatcher(WithHash(HashPolynomial)),
		NewMatcher(WithHash(HashPolynomial), WithModulus(3)),
	}
	// Tiny alphabet forces frequent collisions and overlapping matches.
	const alphabet = "ab,\xff"

	randString := func(n int) string {
		var sb strings.Builder
		for i := 0; i < n; i++ {
			sb.WriteByte(alphabet[rng.Intn(len(alphabet))])
		}
		return sb.String()
	}

	for iter := 0; iter < 2000; iter++ {
		text := randString(rng.Intn(40))
		pattern := randString(rng.Intn(6))
		want := bruteForce(text, pattern)
		for _, m := range matchers {
			got := m.Search(text, pattern)
			require.Equal(t, want, got, "text=%q pattern=%q modulus=%d hash=%s",
				text, pattern, m.Modulus(), m.Hash())
			for k := 1; k < len(got); k++ {
				require.Less(t, got[k-1], got[k])
			}
		}
	}
}

func TestRollStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, m := range []*Matcher{
		NewMatcher(),
		NewMatcher(WithModulus(2)),
		NewMatcher(WithModulus(MaxModulus)),
		NewMatcher(WithHash(HashPolynomial)),
		NewMatcher(WithHash(HashPolynomial), WithModulus(MaxModulus)),
	} {
		buf := make([]byte, 200)
		for i := range buf {
			buf[i] = byte(rng.Intn(256))
		}
		text := string(buf)

		for _, width := range []int{1, 3, 17} {
			pow := m.lead(width)
			h := m.seed(text[:width])
			for i := 0; i+width < len(text); i++ {
				h = m.roll(h, pow, text[i], text[i+width])
				require.GreaterOrEqual(t, h, int64(0))
				require.Less(t, h, m.modulus)
				// The rolled hash must equal a fresh hash of the same window.
				require.Equal(t, m.seed(text[i+1:i+1+width]), h)
			}
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	text := strings.Repeat("hex bolt m8,250\n", 64)
	m := Default()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Search(text, "m8,")
	}
}
