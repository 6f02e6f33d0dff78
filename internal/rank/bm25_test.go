package rank

import (
	"math"
	"testing"

	"github.com/wizenheimer/cacmir/internal/index"
	"github.com/wizenheimer/cacmir/internal/stats"
)

func TestBM25_SingleTermSingleDoc(t *testing.T) {
	idx := index.New()
	idx.IndexDocument(1, []string{"a", "b", "a", "c"})

	st, err := stats.Build(map[int]int{1: 4})
	if err != nil {
		t.Fatalf("stats.Build: %v", err)
	}

	m := NewBM25(idx, st, DefaultBM25Config())
	rs := m.SearchQuery(Query{QID: 1, QueryText: "a"})

	if len(rs.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(rs.Results))
	}

	want := -1.5105
	got := rs.Results[0].Score
	if math.Abs(got-want) > 1e-3 {
		t.Errorf("score = %f, want ≈ %f", got, want)
	}
	if rs.Results[0].Model != "BM25" {
		t.Errorf("model = %q, want BM25", rs.Results[0].Model)
	}
}

func TestBM25_ZeroTermFrequencyContributesZero(t *testing.T) {
	idx := index.New()
	idx.IndexDocument(1, []string{"a"})
	idx.IndexDocument(2, []string{"b"})

	st, _ := stats.Build(map[int]int{1: 1, 2: 1})
	m := NewBM25(idx, st, DefaultBM25Config())

	score := m.TermScore("b", 1, 1)
	if score != 0 {
		t.Errorf("expected 0 contribution for absent term, got %f", score)
	}
}

func TestBM25_CommonTermPenalty(t *testing.T) {
	idx := index.New()
	idx.IndexDocument(1, []string{"the"})
	idx.IndexDocument(2, []string{"the"})

	st, _ := stats.Build(map[int]int{1: 1, 2: 1})
	m := NewBM25(idx, st, DefaultBM25Config())

	bim := bimScore(st.N, len(idx.Postings("the")))
	if bim >= 0 {
		t.Errorf("expected negative BIM when n_t == N > 1, got %f", bim)
	}
}

func TestBM25_EmptyQueryYieldsEmptyResultSet(t *testing.T) {
	idx := index.New()
	idx.IndexDocument(1, []string{"a"})
	st, _ := stats.Build(map[int]int{1: 1})

	m := NewBM25(idx, st, DefaultBM25Config())
	rs := m.SearchQuery(Query{QID: 1, QueryText: "nowhere-to-be-found"})

	if len(rs.Results) != 0 {
		t.Errorf("expected empty result set, got %d results", len(rs.Results))
	}
}

func TestBM25_ResultsSortedDescending(t *testing.T) {
	idx := index.New()
	idx.IndexDocument(1, []string{"a"})
	idx.IndexDocument(2, []string{"a", "a", "a"})

	st, _ := stats.Build(map[int]int{1: 1, 2: 3})
	m := NewBM25(idx, st, DefaultBM25Config())

	rs := m.SearchQuery(Query{QID: 1, QueryText: "a"})
	for i := 1; i < len(rs.Results); i++ {
		if rs.Results[i-1].Score < rs.Results[i].Score {
			t.Fatalf("results not sorted descending: %+v", rs.Results)
		}
	}
	for i, r := range rs.Results {
		if r.Rank != i+1 {
			t.Errorf("rank at position %d = %d, want %d", i, r.Rank, i+1)
		}
	}
}
