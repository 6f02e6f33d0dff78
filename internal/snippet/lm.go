// Package snippet builds human-readable result snippets: a relevance
// language model picks significant words from the top-ranked documents,
// then a Luhn-style segment scorer picks and assembles the sentences of
// each individual document that best cover those words.
package snippet

import (
	"errors"
	"math"
	"sort"

	"github.com/wizenheimer/cacmir/internal/index"
	"github.com/wizenheimer/cacmir/internal/normalize"
	"github.com/wizenheimer/cacmir/internal/stats"
)

var ErrWordNotIndexed = errors.New("snippet: word not indexed")

// Config holds the relevance language model and Luhn segmentation
// parameters.
type Config struct {
	Lambda        float64 // Jelinek-Mercer background-model weight
	TopR          int     // number of top-ranked documents considered relevant
	MaxExtraWords int     // max non-query significant words admitted
	MaxWords      int     // target word budget for the assembled snippet
	ContextWords  int     // context tokens kept on each side of a significant segment
}

// DefaultConfig returns {Lambda: 0.10, TopR: 10, MaxExtraWords: 10,
// MaxWords: 50, ContextWords: 3}, matching the specification's literals.
func DefaultConfig() Config {
	return Config{
		Lambda:        0.10,
		TopR:          10,
		MaxExtraWords: 10,
		MaxWords:      50,
		ContextWords:  3,
	}
}

// ContentProvider supplies the two text views a document can be read from:
// its normalized, indexed content (for relevance scoring) and its raw
// source text plus filename (for sentence extraction). Injected so the
// snippet component never has its own idea of where documents live on
// disk.
type ContentProvider interface {
	NormalizedContent(docID int) (string, error)
	RawContent(docID int) (text string, filename string, err error)
}

// RelevanceLM estimates, for the top-ranked documents of a query, which
// corpus words are most indicative of relevance beyond the query's own
// terms.
type RelevanceLM struct {
	idx     *index.Index
	stats   *stats.GlobalStatistics
	content ContentProvider
	cfg     Config
}

// NewRelevanceLM constructs a relevance language model over idx/stats,
// reading document text through content.
func NewRelevanceLM(idx *index.Index, st *stats.GlobalStatistics, content ContentProvider, cfg Config) *RelevanceLM {
	return &RelevanceLM{idx: idx, stats: st, content: content, cfg: cfg}
}

// PWordGivenDocument computes p(word|docID) under Jelinek-Mercer smoothing:
// (1-λ)·f_{w,d}/dl_d + λ·f_{w,C}/N. word must be indexed.
func (r *RelevanceLM) PWordGivenDocument(word string, docID int) (float64, error) {
	if !r.idx.Contains(word) {
		return 0, ErrWordNotIndexed
	}

	fwd := 0
	if p, ok := r.idx.DocumentPosting(word, docID); ok {
		fwd = p.TF
	}
	dl, _ := r.stats.DocLength(docID)
	fwc := r.idx.CorpusFrequency(word)
	n := r.stats.N

	return (1-r.cfg.Lambda)*(float64(fwd)/float64(dl)) + r.cfg.Lambda*(float64(fwc)/float64(n)), nil
}

// ScoreWordsByRelevance scores every candidate word by the relevance
// language model formula:
//
//	S(w) = Σ_{d in topR} [ log p(w|d) + Σ_{qi} log p(qi|d) ]
//
// The inner query-term sum is independent of w and is cached per document.
func (r *RelevanceLM) ScoreWordsByRelevance(words []string, queryTerms []string, rankedDocIDs []int) map[string]float64 {
	indexedQueryTerms := make([]string, 0, len(queryTerms))
	for _, qt := range queryTerms {
		if r.idx.Contains(qt) {
			indexedQueryTerms = append(indexedQueryTerms, qt)
		}
	}

	topN := r.cfg.TopR
	if topN > len(rankedDocIDs) {
		topN = len(rankedDocIDs)
	}
	topDocs := rankedDocIDs[:topN]

	pqd := make(map[int]float64, len(topDocs))
	for _, docID := range topDocs {
		var sum float64
		for _, qt := range indexedQueryTerms {
			p, err := r.PWordGivenDocument(qt, docID)
			if err != nil {
				continue
			}
			sum += math.Log(p)
		}
		pqd[docID] = sum
	}

	scores := make(map[string]float64, len(words))
	for _, w := range words {
		if !r.idx.Contains(w) {
			continue
		}
		var score float64
		for _, docID := range topDocs {
			p, err := r.PWordGivenDocument(w, docID)
			if err != nil {
				continue
			}
			score += math.Log(p) + pqd[docID]
		}
		scores[w] = score
	}
	return scores
}

// WordSetInTopN collects the distinct normalized-content tokens across the
// top n of rankedDocIDs.
func (r *RelevanceLM) WordSetInTopN(rankedDocIDs []int, n int) (map[string]struct{}, error) {
	if n > len(rankedDocIDs) {
		n = len(rankedDocIDs)
	}

	words := make(map[string]struct{})
	for _, docID := range rankedDocIDs[:n] {
		content, err := r.content.NormalizedContent(docID)
		if err != nil {
			return nil, err
		}
		for _, w := range normalize.Normalize(content, nil) {
			words[w] = struct{}{}
		}
	}
	return words, nil
}

// SignificantWords returns the query terms plus up to MaxExtraWords
// non-query words from the top-ranked documents with the highest relevance
// score, excluding stopwords and purely numeric tokens.
func (r *RelevanceLM) SignificantWords(queryTerms []string, rankedDocIDs []int, stopwords normalize.StopSet) ([]string, error) {
	if len(queryTerms) == 0 || len(rankedDocIDs) == 0 {
		return queryTerms, nil
	}

	wordSet, err := r.WordSetInTopN(rankedDocIDs, r.cfg.TopR)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, len(wordSet))
	for w := range wordSet {
		if stopwords != nil && stopwords.Contains(w) {
			continue
		}
		if normalize.IsNumeric(w) {
			continue
		}
		words = append(words, w)
	}

	scores := r.ScoreWordsByRelevance(words, queryTerms, rankedDocIDs)

	sort.Slice(words, func(i, j int) bool {
		if scores[words[i]] != scores[words[j]] {
			return scores[words[i]] > scores[words[j]]
		}
		return words[i] < words[j]
	})

	sigWords := make([]string, 0, len(queryTerms)+r.cfg.MaxExtraWords)
	seen := make(map[string]struct{}, len(queryTerms))
	for _, qt := range queryTerms {
		sigWords = append(sigWords, qt)
		seen[qt] = struct{}{}
	}

	extra := 0
	for _, w := range words {
		if extra >= r.cfg.MaxExtraWords {
			break
		}
		if _, dup := seen[w]; dup {
			continue
		}
		sigWords = append(sigWords, w)
		seen[w] = struct{}{}
		extra++
	}

	return sigWords, nil
}
