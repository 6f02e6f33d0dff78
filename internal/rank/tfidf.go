package rank

import (
	"github.com/wizenheimer/cacmir/internal/index"
)

// TFIDFModel scores documents by plain term-frequency inverse-document-
// frequency: f_{t,d} · (1/n_t), summed over query terms.
type TFIDFModel struct {
	idx *index.Index
}

// NewTFIDF constructs a TF·IDF scorer over idx.
func NewTFIDF(idx *index.Index) *TFIDFModel {
	return &TFIDFModel{idx: idx}
}

// Search scores every query in queries independently.
func (m *TFIDFModel) Search(queries []Query) []ResultSet {
	out := make([]ResultSet, len(queries))
	for i, q := range queries {
		out[i] = m.SearchQuery(q)
	}
	return out
}

// SearchQuery runs one query against the index and returns its ResultSet.
func (m *TFIDFModel) SearchQuery(q Query) ResultSet {
	queryTerms := filterIndexed(m.idx, q.Terms())
	uniqueTerms := termFrequencies(queryTerms)

	docIDs := m.idx.DocIDsContainingAny(queryTerms)

	docscores := make([]DocumentScore, 0, len(docIDs))
	for _, docID := range docIDs {
		var score float64
		for t := range uniqueTerms {
			score += m.TermScore(t, docID)
		}
		docscores = append(docscores, DocumentScore{DocID: docID, Score: score, Model: "TFIDF"})
	}

	return buildResultSet(q, docscores, DefaultMaxRank)
}

// TermScore computes one query term's tf·idf contribution to docID.
func (m *TFIDFModel) TermScore(term string, docID int) float64 {
	p, ok := m.idx.DocumentPosting(term, docID)
	if !ok {
		return 0
	}
	nqt := float64(len(m.idx.Postings(term)))
	return float64(p.TF) * (1.0 / nqt)
}
