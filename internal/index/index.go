// Package index implements the inverted index at the heart of the system:
// a mapping from term to an ordered list of positional postings, built once
// during indexing and thereafter treated as read-only.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS AN INVERTED INDEX?
// ═══════════════════════════════════════════════════════════════════════════════
// An inverted index is like the index at the back of a book, but for search
// engines.
//
// Example: Given these documents:
//   Doc 1: "a b a c"
//
// The inverted index looks like:
//   "a" → [(doc=1, tf=2, positions=[0,2])]
//   "b" → [(doc=1, tf=1, positions=[1])]
//   "c" → [(doc=1, tf=1, positions=[3])]
//
// This lets every ranking model answer "which documents contain this term,
// how often, and where" without ever re-scanning the corpus.
// ═══════════════════════════════════════════════════════════════════════════════
package index

import (
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ERROR DEFINITIONS
// ═══════════════════════════════════════════════════════════════════════════════
var (
	ErrTermNotFound       = errors.New("index: term not found")
	ErrMalformedIndexFile = errors.New("index: malformed index file")
	ErrSanityCheckFailed  = errors.New("index: sanity check failed")
)

// Posting records one term's occurrence in one document: how many times it
// appeared (TF) and at which token positions.
//
// Invariants: len(Positions) == TF; Positions is strictly ascending; a
// Posting with TF == 0 is never materialized — its absence from a
// PostingList IS the "term doesn't occur in this document" signal.
type Posting struct {
	DocID     int
	TF        int
	Positions []int
}

// PostingList is the ordered sequence of postings for one term, strictly
// ascending by DocID with no duplicate DocIDs.
type PostingList []Posting

// Index maps terms to posting lists. It is mutable only during the indexing
// phase (guarded by mu); every read-path method used during ranking and
// snippet generation takes no lock, matching its read-only lifecycle once
// sealed.
type Index struct {
	mu    sync.Mutex
	terms map[string]PostingList
	log   *slog.Logger
}

// New creates an empty index ready for building.
func New() *Index {
	return &Index{
		terms: make(map[string]PostingList),
		log:   slog.Default(),
	}
}

// SetLogger overrides the index's logger (default: slog.Default()).
func (idx *Index) SetLogger(l *slog.Logger) {
	idx.log = l
}

// Contains reports whether t has been indexed.
func (idx *Index) Contains(t string) bool {
	_, ok := idx.terms[t]
	return ok
}

// Postings returns t's posting list. The caller must have already checked
// Contains(t); calling Postings for an absent term is a programming error
// per the LookupError contract, not a recoverable one — callers that want a
// safe variant should use TryPostings.
func (idx *Index) Postings(t string) PostingList {
	pl, ok := idx.terms[t]
	if !ok {
		panic(ErrTermNotFound)
	}
	return pl
}

// TryPostings is the error-returning counterpart of Postings, for callers
// that haven't already tested Contains.
func (idx *Index) TryPostings(t string) (PostingList, error) {
	pl, ok := idx.terms[t]
	if !ok {
		return nil, ErrTermNotFound
	}
	return pl, nil
}

// DocumentPosting binary-searches t's posting list for docID, returning
// (posting, true) if present, or (zero, false) otherwise.
func (idx *Index) DocumentPosting(t string, docID int) (Posting, bool) {
	pl, ok := idx.terms[t]
	if !ok {
		return Posting{}, false
	}
	i := postingIndex(pl, docID)
	if i == -1 {
		return Posting{}, false
	}
	return pl[i], true
}

// postingIndex is the single binary-search primitive every model and the
// index itself builds on: a canonical three-way comparison over a
// DocID-ascending PostingList, returning the matching index or -1.
func postingIndex(pl PostingList, docID int) int {
	left, right := 0, len(pl)-1
	for left <= right {
		mid := (left + right) / 2
		switch {
		case pl[mid].DocID == docID:
			return mid
		case pl[mid].DocID < docID:
			left = mid + 1
		default:
			right = mid - 1
		}
	}
	return -1
}

// Update records one occurrence of term t at position tpos in document
// docID. If a posting for (t, docID) already exists its position list is
// extended (positions are guaranteed ascending because the indexer visits
// documents in increasing position order); otherwise a new Posting is
// inserted in sorted order. The insertion search starts from the end of the
// list since the indexer feeds increasing docIDs.
func (idx *Index) Update(t string, tpos int, docID int) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	pl, ok := idx.terms[t]
	if !ok {
		idx.terms[t] = PostingList{{DocID: docID, TF: 1, Positions: []int{tpos}}}
		return
	}

	pidx := postingIndex(pl, docID)
	if pidx != -1 {
		p := &pl[pidx]
		p.Positions = append(p.Positions, tpos)
		p.TF++
		idx.terms[t] = pl
		return
	}

	insertAt := 0
	for i := len(pl) - 1; i >= 0; i-- {
		if pl[i].DocID < docID {
			insertAt = i + 1
			break
		}
	}

	pl = append(pl, Posting{})
	copy(pl[insertAt+1:], pl[insertAt:])
	pl[insertAt] = Posting{DocID: docID, TF: 1, Positions: []int{tpos}}
	idx.terms[t] = pl
}

// IndexDocument indexes every term of an already-normalized token sequence
// against docID, recording each term's position in the sequence.
func (idx *Index) IndexDocument(docID int, tokens []string) {
	idx.log.Info("indexing document", slog.Int("docID", docID), slog.Int("tokens", len(tokens)))
	for pos, tok := range tokens {
		idx.Update(tok, pos, docID)
	}
}

// MiniIndex returns the subset of the index restricted to terms
// (deduplicated). Terms not present in the index are skipped.
func (idx *Index) MiniIndex(terms []string) map[string]PostingList {
	mini := make(map[string]PostingList)
	for _, t := range terms {
		if _, seen := mini[t]; seen {
			continue
		}
		if pl, ok := idx.terms[t]; ok {
			mini[t] = pl
		}
	}
	return mini
}

// DocIDsContainingAny returns the union of docIDs across the postings of
// terms (deduplicated set), skipping terms absent from the index.
func (idx *Index) DocIDsContainingAny(terms []string) []int {
	bm := idx.DocIDBitmapContainingAny(terms)
	out := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// DocIDBitmapContainingAny is the roaring-bitmap view of the same union:
// a compressed derived index over whichever terms are asked for, rebuilt on
// demand from the positional posting lists rather than maintained as a
// second parallel structure.
func (idx *Index) DocIDBitmapContainingAny(terms []string) *roaring.Bitmap {
	bm := roaring.NewBitmap()
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		pl, ok := idx.terms[t]
		if !ok {
			continue
		}
		for _, p := range pl {
			bm.Add(uint32(p.DocID))
		}
	}
	return bm
}

// CorpusFrequency returns the sum of TF across every posting for term —
// how many times the term occurs anywhere in the corpus.
func (idx *Index) CorpusFrequency(term string) int {
	pl := idx.terms[term]
	total := 0
	for _, p := range pl {
		total += p.TF
	}
	return total
}

// TermFrequencies returns a table of corpus-wide term frequency per term.
func (idx *Index) TermFrequencies() map[string]int {
	out := make(map[string]int, len(idx.terms))
	for t, pl := range idx.terms {
		tf := 0
		for _, p := range pl {
			tf += p.TF
		}
		out[t] = tf
	}
	return out
}

// DocumentFrequencies returns, per term, the list of docIDs containing it.
func (idx *Index) DocumentFrequencies() map[string][]int {
	out := make(map[string][]int, len(idx.terms))
	for t, pl := range idx.terms {
		ids := make([]int, len(pl))
		for i, p := range pl {
			ids[i] = p.DocID
		}
		out[t] = ids
	}
	return out
}

// Terms returns every indexed term, in no particular order.
func (idx *Index) Terms() []string {
	out := make([]string, 0, len(idx.terms))
	for t := range idx.terms {
		out = append(out, t)
	}
	return out
}

// SortedTerms returns every indexed term in ascending order, the order the
// persisted index file is written in.
func (idx *Index) SortedTerms() []string {
	out := idx.Terms()
	sort.Strings(out)
	return out
}

// SanityCheck verifies the invariants every PostingList must hold: strictly
// ascending, unique DocIDs; TF > 0; Positions strictly ascending with
// len(Positions) == TF. It is checked before every persist and after every
// load, per the DataInvariantError contract.
func (idx *Index) SanityCheck() error {
	for term, pl := range idx.terms {
		for i, p := range pl {
			if p.DocID < 0 {
				return wrapSanity(term, "negative docID")
			}
			if i > 0 && pl[i-1].DocID >= p.DocID {
				return wrapSanity(term, "posting list not strictly ascending by docID")
			}
			if p.TF <= 0 {
				return wrapSanity(term, "non-positive term frequency")
			}
			if len(p.Positions) != p.TF {
				return wrapSanity(term, "positions length does not match tf")
			}
			for j := 1; j < len(p.Positions); j++ {
				if p.Positions[j-1] >= p.Positions[j] {
					return wrapSanity(term, "positions not strictly ascending")
				}
			}
		}
	}
	return nil
}

func wrapSanity(term, reason string) error {
	return errors.Join(ErrSanityCheckFailed, errors.New(term+": "+reason))
}
