package rank

import (
	"math"

	"github.com/wizenheimer/cacmir/internal/index"
	"github.com/wizenheimer/cacmir/internal/stats"
)

// CorpusLengthSource selects what |C| means in the QLM formula's collection
// term, per the open question recorded in DESIGN.md: the specification's
// literal text says document count N; the original source actually reads
// corpus size (total token count) here instead.
type CorpusLengthSource int

const (
	// CorpusLengthN uses document count N as |C| — the specification's
	// literal, stated default.
	CorpusLengthN CorpusLengthSource = iota
	// CorpusLengthTotalTokens uses total corpus token count (CorpusSize)
	// as |C| — reproduces the original source's actual (divergent) behavior.
	CorpusLengthTotalTokens
)

// QLMConfig holds the Jelinek-Mercer smoothing parameter and the |C|
// interpretation.
type QLMConfig struct {
	Lambda             float64
	CorpusLengthSource CorpusLengthSource
}

// DefaultQLMConfig returns {Lambda: 0.35, CorpusLengthSource: CorpusLengthN}.
func DefaultQLMConfig() QLMConfig {
	return QLMConfig{Lambda: 0.35, CorpusLengthSource: CorpusLengthN}
}

// QLMModel scores documents using a Jelinek-Mercer smoothed query
// likelihood: document log-score is the sum of log p(t|d) over query terms
// with nonzero corpus frequency.
type QLMModel struct {
	idx   *index.Index
	stats *stats.GlobalStatistics
	cfg   QLMConfig
}

// NewQLM constructs a QLM scorer over idx and stats with cfg.
func NewQLM(idx *index.Index, st *stats.GlobalStatistics, cfg QLMConfig) *QLMModel {
	return &QLMModel{idx: idx, stats: st, cfg: cfg}
}

// Search scores every query in queries independently.
func (m *QLMModel) Search(queries []Query) []ResultSet {
	out := make([]ResultSet, len(queries))
	for i, q := range queries {
		out[i] = m.SearchQuery(q)
	}
	return out
}

// SearchQuery runs one query against the index and returns its ResultSet.
func (m *QLMModel) SearchQuery(q Query) ResultSet {
	queryTerms := filterIndexed(m.idx, q.Terms())
	uniqueTerms := termFrequencies(queryTerms)

	docIDs := m.idx.DocIDsContainingAny(queryTerms)

	docscores := make([]DocumentScore, 0, len(docIDs))
	for _, docID := range docIDs {
		var score float64
		for t := range uniqueTerms {
			score += m.TermScore(t, docID)
		}
		docscores = append(docscores, DocumentScore{DocID: docID, Score: score, Model: "QLM"})
	}

	return buildResultSet(q, docscores, DefaultMaxRank)
}

// TermScore computes log p(t|d) for one query term, or 0 if the term never
// occurs in the corpus.
func (m *QLMModel) TermScore(term string, docID int) float64 {
	collecf := m.idx.CorpusFrequency(term)
	if collecf == 0 {
		return 0
	}

	doctf := 0
	if p, ok := m.idx.DocumentPosting(term, docID); ok {
		doctf = p.TF
	}

	dl, _ := m.stats.DocLength(docID)

	var c float64
	switch m.cfg.CorpusLengthSource {
	case CorpusLengthTotalTokens:
		c = float64(m.stats.CorpusSize)
	default:
		c = float64(m.stats.N)
	}

	l := m.cfg.Lambda
	p := (1-l)*(float64(doctf)/float64(dl)) + l*(float64(collecf)/c)
	return math.Log(p)
}
