package rank

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/wizenheimer/cacmir/internal/index"
	"github.com/wizenheimer/cacmir/internal/stats"
)

// PRFConfig holds pseudo-relevance feedback's tunables. FeedbackSize is the
// hard-coded constant 10 in the original source's BIM_R formula, exposed
// here so the formula and the pass-1 cutoff can never drift apart.
type PRFConfig struct {
	BM25         BM25Config
	FeedbackSize int // R: size of the pseudo-relevant set from pass 1
	ExtraTerms   int // number of expansion terms appended to the query
	Alpha        float64
	Beta         float64
	Gamma        float64
}

// DefaultPRFConfig returns the literal Rocchio weights from the
// specification: FeedbackSize=10, ExtraTerms=15, Alpha=1, Beta=0.75,
// Gamma=0.15, over a default BM25 base.
func DefaultPRFConfig() PRFConfig {
	return PRFConfig{
		BM25:         DefaultBM25Config(),
		FeedbackSize: 10,
		ExtraTerms:   15,
		Alpha:        1.0,
		Beta:         0.75,
		Gamma:        0.15,
	}
}

// PRFModel implements two-pass Rocchio pseudo-relevance feedback over BM25:
// an initial BM25 pass identifies a pseudo-relevant document set, which
// drives a Rocchio query expansion; a second pass re-scores with a
// feedback-adjusted BIM term.
type PRFModel struct {
	idx   *index.Index
	stats *stats.GlobalStatistics
	cfg   PRFConfig
}

// NewPRF constructs a pseudo-relevance feedback scorer over idx and stats.
func NewPRF(idx *index.Index, st *stats.GlobalStatistics, cfg PRFConfig) *PRFModel {
	return &PRFModel{idx: idx, stats: st, cfg: cfg}
}

// Search runs the two-pass PRF pipeline independently for every query.
func (m *PRFModel) Search(queries []Query) []ResultSet {
	out := make([]ResultSet, len(queries))
	for i, q := range queries {
		out[i] = m.SearchQuery(q)
	}
	return out
}

// SearchQuery runs pass 1 (plain BM25), derives the pseudo-relevant set and
// expanded query, then runs pass 2 with the feedback-adjusted BIM_R score.
func (m *PRFModel) SearchQuery(q Query) ResultSet {
	base := NewBM25(m.idx, m.stats, m.cfg.BM25)
	pass1 := base.SearchQuery(q)

	feedbackSet := topDocIDs(pass1, m.cfg.FeedbackSize)
	expandedText := m.expandQuery(q, feedbackSet)
	expanded := Query{QID: q.QID, QueryText: expandedText}

	return m.searchWithFeedback(expanded, feedbackSet)
}

// topDocIDs returns the docIDs of the top n results of rs, in rank order.
func topDocIDs(rs ResultSet, n int) []int {
	if n > len(rs.Results) {
		n = len(rs.Results)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = rs.Results[i].DocID
	}
	return out
}

// ExpandedQueryText runs Rocchio expansion and returns the resulting query
// string, exported so callers can inspect expansion independent of scoring.
func (m *PRFModel) ExpandedQueryText(q Query, feedbackSet []int) string {
	return m.expandQuery(q, feedbackSet)
}

// expandQuery implements Rocchio query expansion: builds rel/nonRel term
// vectors over the pseudo-relevant set, computes q'[t], and appends the
// ExtraTerms highest-weighted terms to the original query text. Purely
// numeric terms are given weight zero; they are not removed from the
// candidate list.
func (m *PRFModel) expandQuery(q Query, feedbackSet []int) string {
	queryTerms := q.Terms()
	queryVector := termFrequencies(queryTerms)

	rel := make(map[string]int)
	nonRel := make(map[string]int)

	for _, docID := range feedbackSet {
		terms, err := m.documentTerms(docID)
		if err != nil {
			continue
		}
		for _, term := range terms {
			if _, ok := queryVector[term]; !ok {
				queryVector[term] = 0
			}
			doctf := 0
			if p, ok := m.idx.DocumentPosting(term, docID); ok {
				doctf = p.TF
			}
			rel[term] += doctf
			nonRel[term] += m.idx.CorpusFrequency(term) - doctf
		}
	}

	for term := range queryVector {
		if isNumericOrBlank(term) {
			rel[term] = 0
			nonRel[term] = 0
			queryVector[term] = 0
		}
	}

	magRel := vectorMagnitude(rel)
	magNonRel := vectorMagnitude(nonRel)

	type weighted struct {
		term   string
		weight float64
	}
	weights := make([]weighted, 0, len(queryVector))
	for term, qVal := range queryVector {
		w := m.cfg.Alpha * float64(qVal)
		if magRel > 0 {
			w += m.cfg.Beta * (1 / magRel) * float64(rel[term])
		}
		if magNonRel > 0 {
			w -= m.cfg.Gamma * (1 / magNonRel) * float64(nonRel[term])
		}
		weights = append(weights, weighted{term: term, weight: w})
	}

	sort.Slice(weights, func(i, j int) bool {
		if weights[i].weight != weights[j].weight {
			return weights[i].weight > weights[j].weight
		}
		return weights[i].term < weights[j].term
	})

	n := m.cfg.ExtraTerms
	if n > len(weights) {
		n = len(weights)
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(q.QueryText))
	for i := 0; i < n; i++ {
		b.WriteByte(' ')
		b.WriteString(weights[i].term)
	}
	return b.String()
}

// documentTerms returns every distinct term the index recorded anywhere for
// docID, derived from the posting lists rather than re-reading corpus files
// (the original source's partialindexer re-tokenizes the raw document; the
// index already holds the same information).
func (m *PRFModel) documentTerms(docID int) ([]string, error) {
	var terms []string
	for _, term := range m.idx.Terms() {
		if _, ok := m.idx.DocumentPosting(term, docID); ok {
			terms = append(terms, term)
		}
	}
	return terms, nil
}

func isNumericOrBlank(term string) bool {
	if term == "" || term == " " {
		return true
	}
	if _, err := strconv.Atoi(term); err == nil {
		return true
	}
	return false
}

func vectorMagnitude(vec map[string]int) float64 {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	return math.Sqrt(sumSquares)
}

// searchWithFeedback runs pass 2: scores the expanded query against the
// full candidate set using BIM_R in place of plain BIM.
func (m *PRFModel) searchWithFeedback(q Query, feedbackSet []int) ResultSet {
	queryTerms := filterIndexed(m.idx, q.Terms())
	qtfDict := termFrequencies(queryTerms)

	docIDs := m.idx.DocIDsContainingAny(queryTerms)

	docscores := make([]DocumentScore, 0, len(docIDs))
	for _, docID := range docIDs {
		var score float64
		for qt, qtf := range qtfDict {
			score += m.termScoreR(qt, docID, qtf, feedbackSet)
		}
		docscores = append(docscores, DocumentScore{DocID: docID, Score: score, Model: "PRF"})
	}

	return buildResultSet(q, docscores, DefaultMaxRank)
}

// termScoreR computes one query term's BIM_R-weighted BM25 contribution.
func (m *PRFModel) termScoreR(term string, docID int, qtf int, feedbackSet []int) float64 {
	p, ok := m.idx.DocumentPosting(term, docID)
	if !ok {
		return 0
	}
	doctf := p.TF

	dl, _ := m.stats.DocLength(docID)
	avdl := m.stats.Avdl
	n := m.stats.N
	nqt := len(m.idx.Postings(term))
	rt := m.relevantCount(term, feedbackSet)

	bim := bimScoreR(n, nqt, m.cfg.FeedbackSize, rt)
	tf := tfScore(doctf, dl, avdl, m.cfg.BM25.K1, m.cfg.BM25.B)
	qf := qfScore(qtf, m.cfg.BM25.K2)

	return bim * tf * qf
}

// relevantCount returns r_t: the number of documents in the pseudo-relevant
// set that contain term.
func (m *PRFModel) relevantCount(term string, feedbackSet []int) int {
	count := 0
	for _, docID := range feedbackSet {
		if p, ok := m.idx.DocumentPosting(term, docID); ok && p.TF > 0 {
			count++
		}
	}
	return count
}

// bimScoreR is the feedback-adjusted Binary Independence Model term:
//
//	log( ((N-nt+0.5-R+rt)*(rt+0.5)) / ((nt-rt+0.5)*(R-rt+0.5)) )
func bimScoreR(n, nt, feedbackSize, rt int) float64 {
	numerator := (float64(n) - float64(nt) + 0.5 - float64(feedbackSize) + float64(rt)) * (float64(rt) + 0.5)
	denominator := (float64(nt) - float64(rt) + 0.5) * (float64(feedbackSize) - float64(rt) + 0.5)
	return math.Log(numerator / denominator)
}
