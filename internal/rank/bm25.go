package rank

import (
	"math"

	"github.com/wizenheimer/cacmir/internal/index"
	"github.com/wizenheimer/cacmir/internal/stats"
)

// BM25Config holds the three tunable Okapi BM25 parameters. Defaults match
// the literal worked example in the specification (k1=1.2), not the more
// commonly cited k1=1.5 — callers that want the latter pass their own config.
type BM25Config struct {
	K1 float64
	K2 float64
	B  float64
}

// DefaultBM25Config returns {K1: 1.2, K2: 100, B: 0.75}.
func DefaultBM25Config() BM25Config {
	return BM25Config{K1: 1.2, K2: 100, B: 0.75}
}

// BM25Model scores documents against a query using the Okapi BM25 formula.
type BM25Model struct {
	idx   *index.Index
	stats *stats.GlobalStatistics
	cfg   BM25Config
}

// NewBM25 constructs a BM25 scorer over idx and stats with cfg.
func NewBM25(idx *index.Index, st *stats.GlobalStatistics, cfg BM25Config) *BM25Model {
	return &BM25Model{idx: idx, stats: st, cfg: cfg}
}

// Search scores every query in queries independently.
func (m *BM25Model) Search(queries []Query) []ResultSet {
	out := make([]ResultSet, len(queries))
	for i, q := range queries {
		out[i] = m.SearchQuery(q)
	}
	return out
}

// SearchQuery runs one query against the index and returns its ResultSet.
func (m *BM25Model) SearchQuery(q Query) ResultSet {
	queryTerms := filterIndexed(m.idx, q.Terms())
	qtfDict := termFrequencies(queryTerms)

	docIDs := m.idx.DocIDsContainingAny(queryTerms)

	docscores := make([]DocumentScore, 0, len(docIDs))
	for _, docID := range docIDs {
		var score float64
		for qt, qtf := range qtfDict {
			score += m.TermScore(qt, docID, qtf)
		}
		docscores = append(docscores, DocumentScore{DocID: docID, Score: score, Model: "BM25"})
	}

	return buildResultSet(q, docscores, DefaultMaxRank)
}

// TermScore computes one query term's BM25 contribution to docID, using
// qtf as the term's frequency within the query itself. Exported so the
// proximity model can reuse it as its base-score component.
func (m *BM25Model) TermScore(term string, docID int, qtf int) float64 {
	p, ok := m.idx.DocumentPosting(term, docID)
	if !ok {
		return 0
	}
	doctf := p.TF

	dl, _ := m.stats.DocLength(docID)
	avdl := m.stats.Avdl
	n := m.stats.N
	nqt := len(m.idx.Postings(term))

	bim := bimScore(n, nqt)
	tf := tfScore(doctf, dl, avdl, m.cfg.K1, m.cfg.B)
	qf := qfScore(qtf, m.cfg.K2)

	return bim * tf * qf
}

// bimScore is the Binary Independence Model component: log((N-nt+0.5)/(nt+0.5)).
func bimScore(n, nt int) float64 {
	idfLike := (float64(n) - float64(nt) + 0.5) / (float64(nt) + 0.5)
	return math.Log(idfLike)
}

// tfScore is BM25's document term-frequency saturation component.
func tfScore(doctf, dl int, avdl, k1, b float64) float64 {
	k := k1 * ((1.0 - b) + b*(float64(dl)/avdl))
	return ((k1 + 1.0) * float64(doctf)) / (k + float64(doctf))
}

// qfScore is BM25's query term-frequency saturation component.
func qfScore(qtf int, k2 float64) float64 {
	return ((k2 + 1.0) * float64(qtf)) / (k2 + float64(qtf))
}

// filterIndexed returns the subset of terms present in idx, preserving
// duplicates and order — callers that need raw term-frequency counts over
// the filtered set depend on duplicates surviving.
func filterIndexed(idx *index.Index, terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if idx.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}
