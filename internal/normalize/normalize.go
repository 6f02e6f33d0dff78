// Package normalize turns raw ASCII document and query text into the ordered
// term sequences the rest of the system indexes and searches over.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS TEXT NORMALIZATION?
// ═══════════════════════════════════════════════════════════════════════════════
// Before a document can be indexed, its text has to be reduced to a sequence
// of bare terms: no punctuation, no case distinctions, no stopwords. The
// inverted index and every ranking model downstream assume their input has
// already gone through this pipeline — they never see raw prose.
//
// PIPELINE:
// ---------
//  1. Punctuation rewriting  → rewrite punctuation to spaces, with a few
//     context-sensitive exceptions (decimals, hyphenated compounds,
//     thousands separators, abbreviation periods dropped outright)
//  2. Casefolding            → "Quick" -> "quick"
//  3. Whitespace cleanup     → collapse runs of whitespace to single spaces
//  4. Stopword removal       → drop words in the supplied stopword set
//  5. Word n-gramming        → emit n consecutive words joined by a space
//     (n=1 reproduces the plain term sequence; n>1 produces phrase terms)
//
// Stemming is NOT part of the default pipeline: the worked examples this
// system is tested against ("a b a c", "alpha beta gamma") assume the surface
// form survives normalization unchanged. It is available as an opt-in stage
// for callers that want it (see Config.EnableStemming).
// ═══════════════════════════════════════════════════════════════════════════════
package normalize

import (
	"strings"

	snowballeng "github.com/kljensen/snowball/english"
)

// StopSet is a set of lowercase stopwords to remove during normalization.
type StopSet map[string]struct{}

// NewStopSet builds a StopSet from a slice of words.
func NewStopSet(words []string) StopSet {
	s := make(StopSet, len(words))
	for _, w := range words {
		s[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return s
}

// Contains reports whether word (already lowercased) is a stopword.
func (s StopSet) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s[word]
	return ok
}

// Config controls the normalization pipeline.
type Config struct {
	// NGram is the word n-gram size emitted as terms. Defaults to 1.
	NGram int
	// EnableStemming applies a Porter/Snowball-style English stem to every
	// unigram after stopword removal. Off by default.
	EnableStemming bool
}

// DefaultConfig returns the standard normalization configuration: unigrams,
// no stemming.
func DefaultConfig() Config {
	return Config{NGram: 1}
}

// Normalize is the single pure entry point external callers depend on:
// normalize(text, stopwords) -> [term]. It never touches a filesystem or
// holds state between calls.
func Normalize(text string, stopwords StopSet) []string {
	return NormalizeWithConfig(text, stopwords, DefaultConfig())
}

// NormalizeWithConfig runs the full pipeline with an explicit configuration.
func NormalizeWithConfig(text string, stopwords StopSet, cfg Config) []string {
	text = handlePunctuation(text)
	text = strings.ToLower(text)
	words := cleanWhitespace(text)
	words = stopwordFilter(words, stopwords)

	n := cfg.NGram
	if n <= 0 {
		n = 1
	}

	if n == 1 {
		if cfg.EnableStemming {
			words = stemFilter(words)
		}
		return words
	}

	return wordNGrams(words, n)
}

// cleanWhitespace splits already-punctuation-handled text on whitespace,
// dropping empty fields — equivalent to collapsing runs of spaces.
func cleanWhitespace(text string) []string {
	return strings.Fields(text)
}

func stopwordFilter(words []string, stop StopSet) []string {
	if len(stop) == 0 {
		return words
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !stop.Contains(w) {
			out = append(out, w)
		}
	}
	return out
}

func stemFilter(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = snowballeng.Stem(w, false)
	}
	return out
}

// wordNGrams builds n-word terms out of consecutive words, joined by a
// single space, the way the original corpus's word_ngrams() does.
func wordNGrams(words []string, n int) []string {
	if len(words) < n {
		return nil
	}
	grams := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		grams = append(grams, strings.Join(words[i:i+n], " "))
	}
	return grams
}

// IsNumeric reports whether text is composed entirely of ASCII digits. Used
// by the snippet generator to exclude purely numeric tokens from
// significant-word consideration.
func IsNumeric(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
