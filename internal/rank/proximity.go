package rank

import (
	"sort"

	"github.com/wizenheimer/cacmir/internal/index"
	"github.com/wizenheimer/cacmir/internal/stats"
)

// ProximityWindow is the default proximity window: adjacent query terms at
// most ProximityWindow-1 positions apart earn a reward.
const ProximityWindow = 5

// ProximityConfig holds the proximity model's one tunable: the window
// within which adjacent query terms are rewarded for co-occurring.
type ProximityConfig struct {
	Window int
}

// DefaultProximityConfig returns {Window: 5}.
func DefaultProximityConfig() ProximityConfig {
	return ProximityConfig{Window: ProximityWindow}
}

// proximityTermScore records one occurrence of a query term at a specific
// document position: its base BM25 score and its accumulated proximity
// adjustment.
type proximityTermScore struct {
	term           string
	pos            int
	baseScore      float64
	proximityScore float64
}

// ProximityModel re-scores BM25 results by rewarding query terms that
// appear in the same relative order and close together, and penalizing
// query-term occurrences with no nearby neighbor from the query.
type ProximityModel struct {
	idx  *index.Index
	base *BM25Model
	cfg  ProximityConfig
}

// NewProximity constructs a proximity-weighted scorer layered on a BM25
// base model.
func NewProximity(idx *index.Index, st *stats.GlobalStatistics, cfg ProximityConfig, bm25Cfg BM25Config) *ProximityModel {
	return &ProximityModel{
		idx:  idx,
		base: NewBM25(idx, st, bm25Cfg),
		cfg:  cfg,
	}
}

// Search scores every query in queries independently.
func (m *ProximityModel) Search(queries []Query) []ResultSet {
	out := make([]ResultSet, len(queries))
	for i, q := range queries {
		out[i] = m.SearchQuery(q)
	}
	return out
}

// SearchQuery runs one query against the index and returns its ResultSet.
func (m *ProximityModel) SearchQuery(q Query) ResultSet {
	queryTerms := q.Terms()
	indexedTerms := filterIndexed(m.idx, queryTerms)
	qtfDict := termFrequencies(indexedTerms)

	docIDs := m.idx.DocIDsContainingAny(indexedTerms)
	successors := adjacencyMap(queryTerms)

	docscores := make([]DocumentScore, 0, len(docIDs))
	for _, docID := range docIDs {
		baseScores := make(map[string]float64, len(qtfDict))
		for t, qtf := range qtfDict {
			baseScores[t] = m.base.TermScore(t, docID, qtf)
		}

		positions := m.initTermScores(indexedTerms, docID, baseScores)
		scoreForProximity(positions, successors, m.cfg.Window)

		var docScore float64
		for _, pts := range positions {
			docScore += pts.baseScore + pts.proximityScore
		}

		docscores = append(docscores, DocumentScore{DocID: docID, Score: docScore, Model: "PROXIMITY"})
	}

	return buildResultSet(q, docscores, DefaultMaxRank)
}

// initTermScores builds the position -> proximityTermScore table for every
// occurrence of terms in docID, seeded with each term's base BM25 score.
func (m *ProximityModel) initTermScores(terms []string, docID int, baseScores map[string]float64) map[int]*proximityTermScore {
	positions := make(map[int]*proximityTermScore)
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}

		p, ok := m.idx.DocumentPosting(term, docID)
		if !ok {
			continue
		}
		for _, pos := range p.Positions {
			positions[pos] = &proximityTermScore{
				term:      term,
				pos:       pos,
				baseScore: baseScores[term],
			}
		}
	}
	return positions
}

// adjacencyMap records, for each query term, the ordered list of terms that
// immediately follow it anywhere in the query's word sequence.
func adjacencyMap(queryTerms []string) map[string][]string {
	adj := make(map[string][]string, len(queryTerms))
	for _, t := range queryTerms {
		if _, ok := adj[t]; !ok {
			adj[t] = nil
		}
	}
	for i := 0; i < len(queryTerms)-1; i++ {
		t, next := queryTerms[i], queryTerms[i+1]
		adj[t] = append(adj[t], next)
	}
	return adj
}

// scoreForProximity walks positions left to right, rewarding each term for
// its nearest in-window successor occurrence and propagating the full reward,
// plus the term's proximity score from before this step, forward to that
// successor, then penalizing terms whose proximity
// contribution from this pass is exactly zero.
func scoreForProximity(positions map[int]*proximityTermScore, successors map[string][]string, window int) {
	sorted := make([]int, 0, len(positions))
	for pos := range positions {
		sorted = append(sorted, pos)
	}
	sort.Ints(sorted)

	for _, pos := range sorted {
		pts := positions[pos]
		prePro := pts.proximityScore

		for _, adjTerm := range successors[pts.term] {
			offset := termOffsetInWindow(positions, pos, adjTerm, window)
			if offset == -1 {
				continue
			}

			adjPts := positions[pos+offset]
			reward := float64(window-offset) * pts.baseScore * adjPts.baseScore

			pts.proximityScore += reward
			adjPts.proximityScore += prePro + reward
		}

		if pts.proximityScore == 0 {
			pts.proximityScore -= float64(window) * pts.baseScore
		}
	}
}

// termOffsetInWindow finds the smallest offset o in [1, window-1] such that
// position pos+o holds term, returning -1 if no such position exists.
func termOffsetInWindow(positions map[int]*proximityTermScore, pos int, term string, window int) int {
	for i := pos + 1; i < pos+window; i++ {
		pts, ok := positions[i]
		if !ok || pts.term != term {
			continue
		}
		return i - pos
	}
	return -1
}
