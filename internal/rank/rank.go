// Package rank implements the five retrieval models laid over the inverted
// index: BM25, TF·IDF, a Jelinek-Mercer query-likelihood model, a
// proximity-weighted re-scoring of BM25, and Rocchio pseudo-relevance
// feedback. Every model shares the same query-driving shape: normalize the
// query into term frequencies, restrict to indexed terms, score the
// resulting candidate document set, and sort descending.
package rank

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultMaxRank bounds how many results a ResultSet keeps per query.
const DefaultMaxRank = 100

// Query is a single already-normalized search query: its text is split on
// single spaces into terms, matching the corpus's normalized-token
// convention.
type Query struct {
	QID       int
	QueryText string
}

// Terms splits QueryText into its term sequence, preserving duplicates and
// order — callers that need adjacency (the proximity model) depend on this.
func (q Query) Terms() []string {
	if q.QueryText == "" {
		return nil
	}
	return strings.Fields(q.QueryText)
}

// DocumentScore is one document's score for one query under one model.
type DocumentScore struct {
	DocID int
	Score float64
	Model string
}

// Result is a DocumentScore with its assigned rank inside a ResultSet.
type Result struct {
	QID   int
	DocID int
	Rank  int
	Score float64
	Model string
}

// TRECString renders r in TREC result-line format: "qid Q0 docId rank score
// model".
func (r Result) TRECString() string {
	return fmt.Sprintf("%d Q0 %d %d %v %s", r.QID, r.DocID, r.Rank, r.Score, r.Model)
}

// ResultSet is a query's ranked results, descending by score and truncated
// to DefaultMaxRank.
type ResultSet struct {
	Query   Query
	Results []Result
}

// TRECStrings renders every result in rs as a TREC result line, in rank
// order.
func (rs ResultSet) TRECStrings() []string {
	lines := make([]string, len(rs.Results))
	for i, r := range rs.Results {
		lines[i] = r.TRECString()
	}
	return lines
}

// buildResultSet sorts docscores descending by score (ties broken by
// ascending docID for a stable, reproducible ordering), truncates to
// maxRank, and assigns 1-based ranks.
func buildResultSet(q Query, docscores []DocumentScore, maxRank int) ResultSet {
	sort.Slice(docscores, func(i, j int) bool {
		if docscores[i].Score != docscores[j].Score {
			return docscores[i].Score > docscores[j].Score
		}
		return docscores[i].DocID < docscores[j].DocID
	})

	if maxRank > 0 && len(docscores) > maxRank {
		docscores = docscores[:maxRank]
	}

	results := make([]Result, len(docscores))
	for i, ds := range docscores {
		results[i] = Result{
			QID:   q.QID,
			DocID: ds.DocID,
			Rank:  i + 1,
			Score: ds.Score,
			Model: ds.Model,
		}
	}
	return ResultSet{Query: q, Results: results}
}

// termFrequencies counts occurrences of each term in terms, preserving the
// first-seen order is not required — callers iterate the map.
func termFrequencies(terms []string) map[string]int {
	tf := make(map[string]int, len(terms))
	for _, t := range terms {
		tf[t]++
	}
	return tf
}
