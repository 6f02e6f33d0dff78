// Package config loads cacmir.toml, the file supplying default parameters
// for every ranking model and the snippet/evaluator stages. The CLI has no
// per-parameter flags; the loaded values are used as they are.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/wizenheimer/cacmir/internal/eval"
	"github.com/wizenheimer/cacmir/internal/rank"
	"github.com/wizenheimer/cacmir/internal/snippet"
)

// BM25 mirrors rank.BM25Config for TOML decoding.
type BM25 struct {
	K1 float64 `toml:"k1"`
	K2 float64 `toml:"k2"`
	B  float64 `toml:"b"`
}

// QLM mirrors rank.QLMConfig for TOML decoding.
type QLM struct {
	Lambda             float64 `toml:"lambda"`
	CorpusLengthSource string  `toml:"corpus_length_source"`
}

// Proximity mirrors rank.ProximityConfig for TOML decoding.
type Proximity struct {
	Window int `toml:"window"`
}

// PRF mirrors rank.PRFConfig for TOML decoding.
type PRF struct {
	FeedbackSize int     `toml:"feedback_size"`
	ExtraTerms   int     `toml:"extra_terms"`
	Alpha        float64 `toml:"alpha"`
	Beta         float64 `toml:"beta"`
	Gamma        float64 `toml:"gamma"`
}

// Snippet mirrors snippet.Config for TOML decoding.
type Snippet struct {
	Lambda        float64 `toml:"lambda"`
	TopR          int     `toml:"top_r"`
	MaxExtraWords int     `toml:"max_extra_words"`
	MaxWords      int     `toml:"max_words"`
	ContextWords  int     `toml:"context_words"`
}

// Eval mirrors eval.Config for TOML decoding.
type Eval struct {
	RelevanceDocIDPrefixLen int `toml:"relevance_docid_prefix_len"`
}

// Config is the root of cacmir.toml.
type Config struct {
	BM25      BM25      `toml:"bm25"`
	QLM       QLM       `toml:"qlm"`
	Proximity Proximity `toml:"proximity"`
	PRF       PRF       `toml:"prf"`
	Snippet   Snippet   `toml:"snippet"`
	Eval      Eval      `toml:"eval"`
}

// Default returns a Config whose fields match every package's own
// Default...Config(), so an absent cacmir.toml is equivalent to one that
// spells out every default explicitly.
func Default() Config {
	bm25 := rank.DefaultBM25Config()
	qlm := rank.DefaultQLMConfig()
	prox := rank.DefaultProximityConfig()
	prf := rank.DefaultPRFConfig()
	snip := snippet.DefaultConfig()
	ev := eval.DefaultConfig()

	corpusLengthSource := "n"
	if qlm.CorpusLengthSource == rank.CorpusLengthTotalTokens {
		corpusLengthSource = "total_tokens"
	}

	return Config{
		BM25:      BM25{K1: bm25.K1, K2: bm25.K2, B: bm25.B},
		QLM:       QLM{Lambda: qlm.Lambda, CorpusLengthSource: corpusLengthSource},
		Proximity: Proximity{Window: prox.Window},
		PRF: PRF{
			FeedbackSize: prf.FeedbackSize,
			ExtraTerms:   prf.ExtraTerms,
			Alpha:        prf.Alpha,
			Beta:         prf.Beta,
			Gamma:        prf.Gamma,
		},
		Snippet: Snippet{
			Lambda:        snip.Lambda,
			TopR:          snip.TopR,
			MaxExtraWords: snip.MaxExtraWords,
			MaxWords:      snip.MaxWords,
			ContextWords:  snip.ContextWords,
		},
		Eval: Eval{RelevanceDocIDPrefixLen: ev.RelevanceDocIDPrefixLen},
	}
}

// Load reads and decodes a cacmir.toml file at path, starting from Default()
// so any field the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BM25Config converts c's BM25 section to a rank.BM25Config.
func (c Config) BM25Config() rank.BM25Config {
	return rank.BM25Config{K1: c.BM25.K1, K2: c.BM25.K2, B: c.BM25.B}
}

// QLMConfig converts c's QLM section to a rank.QLMConfig.
func (c Config) QLMConfig() rank.QLMConfig {
	source := rank.CorpusLengthN
	if c.QLM.CorpusLengthSource == "total_tokens" {
		source = rank.CorpusLengthTotalTokens
	}
	return rank.QLMConfig{Lambda: c.QLM.Lambda, CorpusLengthSource: source}
}

// ProximityConfig converts c's Proximity section to a rank.ProximityConfig.
func (c Config) ProximityConfig() rank.ProximityConfig {
	return rank.ProximityConfig{Window: c.Proximity.Window}
}

// PRFConfig converts c's PRF section to a rank.PRFConfig, embedding the
// shared BM25 parameters.
func (c Config) PRFConfig() rank.PRFConfig {
	return rank.PRFConfig{
		BM25:         c.BM25Config(),
		FeedbackSize: c.PRF.FeedbackSize,
		ExtraTerms:   c.PRF.ExtraTerms,
		Alpha:        c.PRF.Alpha,
		Beta:         c.PRF.Beta,
		Gamma:        c.PRF.Gamma,
	}
}

// SnippetConfig converts c's Snippet section to a snippet.Config.
func (c Config) SnippetConfig() snippet.Config {
	return snippet.Config{
		Lambda:        c.Snippet.Lambda,
		TopR:          c.Snippet.TopR,
		MaxExtraWords: c.Snippet.MaxExtraWords,
		MaxWords:      c.Snippet.MaxWords,
		ContextWords:  c.Snippet.ContextWords,
	}
}

// EvalConfig converts c's Eval section to an eval.Config.
func (c Config) EvalConfig() eval.Config {
	return eval.Config{RelevanceDocIDPrefixLen: c.Eval.RelevanceDocIDPrefixLen}
}
