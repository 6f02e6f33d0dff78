package eval

import (
	"strings"
	"testing"
)

func TestParseTRECLine(t *testing.T) {
	r, err := ParseTRECLine("1 Q0 42 1 3.14159 BM25")
	if err != nil {
		t.Fatalf("ParseTRECLine: %v", err)
	}
	want := TRECResult{QID: 1, DocID: 42, Rank: 1, Score: 3.14159, System: "BM25"}
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
}

func TestParseTRECLine_Malformed(t *testing.T) {
	if _, err := ParseTRECLine("1 Q0 42"); err == nil {
		t.Error("expected error for short line")
	}
	if _, err := ParseTRECLine("abc Q0 42 1 3.0 BM25"); err == nil {
		t.Error("expected error for bad qid")
	}
}

func TestParseTRECFile(t *testing.T) {
	data := "1 Q0 10 1 5.0 BM25\n1 Q0 20 2 4.0 BM25\n\n2 Q0 30 1 9.0 BM25\n"
	results, err := ParseTRECFile(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseTRECFile: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
}

func TestParseRelevanceFile(t *testing.T) {
	data := "1 0 CACM-0010 1\n1 0 CACM-0020 1\n2 0 CACM-0030 1\n"
	rel, err := ParseRelevanceFile(strings.NewReader(data), DefaultConfig())
	if err != nil {
		t.Fatalf("ParseRelevanceFile: %v", err)
	}

	if _, ok := rel[1][10]; !ok {
		t.Errorf("expected doc 10 relevant for query 1, got %v", rel[1])
	}
	if _, ok := rel[1][20]; !ok {
		t.Errorf("expected doc 20 relevant for query 1, got %v", rel[1])
	}
	if _, ok := rel[2][30]; !ok {
		t.Errorf("expected doc 30 relevant for query 2, got %v", rel[2])
	}
}

func TestParseRelevanceFile_Malformed(t *testing.T) {
	if _, err := ParseRelevanceFile(strings.NewReader("1 0\n"), DefaultConfig()); err == nil {
		t.Error("expected error for short line")
	}
	if _, err := ParseRelevanceFile(strings.NewReader("1 0 AB 1\n"), DefaultConfig()); err == nil {
		t.Error("expected error for docId field shorter than prefix length")
	}
}

func TestEvaluate_PrecisionRecallAndReciprocalRank(t *testing.T) {
	results := []TRECResult{
		{QID: 1, DocID: 10, Rank: 1, Score: 5.0, System: "BM25"},
		{QID: 1, DocID: 99, Rank: 2, Score: 4.0, System: "BM25"},
		{QID: 1, DocID: 20, Rank: 3, Score: 3.0, System: "BM25"},
	}
	rel := RelevanceJudgements{
		1: {10: struct{}{}, 20: struct{}{}},
	}

	ev := NewEvaluator(DefaultConfig())
	perQuery, global := ev.Evaluate(results, rel)

	qm, ok := perQuery[1]
	if !ok {
		t.Fatalf("expected metrics for query 1")
	}

	if qm.ReciprocalRank != 1.0 {
		t.Errorf("ReciprocalRank = %f, want 1.0 (first hit at rank 1)", qm.ReciprocalRank)
	}

	// AP = (precision@1 + precision@3)/|relevant| = (1/1 + 2/3)/2
	wantAP := (1.0 + 2.0/3.0) / 2.0
	if diff := qm.AveragePrecision - wantAP; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("AveragePrecision = %f, want %f", qm.AveragePrecision, wantAP)
	}

	if global.NumQueries != 1 {
		t.Errorf("NumQueries = %d, want 1", global.NumQueries)
	}
	if global.MAP != qm.AveragePrecision {
		t.Errorf("MAP = %f, want %f", global.MAP, qm.AveragePrecision)
	}
	if global.MRR != qm.ReciprocalRank {
		t.Errorf("MRR = %f, want %f", global.MRR, qm.ReciprocalRank)
	}
}

func TestEvaluate_QueryWithNoRelevantHitsScoresZero(t *testing.T) {
	results := []TRECResult{
		{QID: 1, DocID: 99, Rank: 1, Score: 5.0, System: "BM25"},
	}
	rel := RelevanceJudgements{1: {10: struct{}{}}}

	ev := NewEvaluator(DefaultConfig())
	perQuery, _ := ev.Evaluate(results, rel)

	qm := perQuery[1]
	if qm.ReciprocalRank != 0 {
		t.Errorf("ReciprocalRank = %f, want 0", qm.ReciprocalRank)
	}
	if qm.AveragePrecision != 0 {
		t.Errorf("AveragePrecision = %f, want 0", qm.AveragePrecision)
	}
}

func TestEvaluate_QueriesAbsentFromRelevanceAreIgnored(t *testing.T) {
	results := []TRECResult{
		{QID: 7, DocID: 1, Rank: 1, Score: 1.0, System: "BM25"},
	}
	rel := RelevanceJudgements{}

	ev := NewEvaluator(DefaultConfig())
	perQuery, global := ev.Evaluate(results, rel)

	if len(perQuery) != 0 {
		t.Errorf("expected no per-query metrics, got %v", perQuery)
	}
	if global.NumQueries != 0 {
		t.Errorf("NumQueries = %d, want 0", global.NumQueries)
	}
}

func TestEvaluate_PrecisionAt5And20(t *testing.T) {
	var results []TRECResult
	rel := RelevanceJudgements{1: {1: {}, 2: {}, 3: {}, 4: {}, 5: {}}}
	for i := 1; i <= 20; i++ {
		results = append(results, TRECResult{QID: 1, DocID: i, Rank: i, Score: float64(100 - i), System: "BM25"})
	}

	ev := NewEvaluator(DefaultConfig())
	perQuery, _ := ev.Evaluate(results, rel)
	qm := perQuery[1]

	if qm.PrecisionAt5 != 1.0 {
		t.Errorf("PrecisionAt5 = %f, want 1.0", qm.PrecisionAt5)
	}
	if qm.PrecisionAt20 != 0.25 {
		t.Errorf("PrecisionAt20 = %f, want 0.25", qm.PrecisionAt20)
	}
}

func TestEvaluate_RanksOrderedByTRECRankFieldNotFileOrder(t *testing.T) {
	results := []TRECResult{
		{QID: 1, DocID: 20, Rank: 2, Score: 3.0, System: "BM25"},
		{QID: 1, DocID: 10, Rank: 1, Score: 5.0, System: "BM25"},
	}
	rel := RelevanceJudgements{1: {10: {}}}

	ev := NewEvaluator(DefaultConfig())
	perQuery, _ := ev.Evaluate(results, rel)
	qm := perQuery[1]

	if qm.ReciprocalRank != 1.0 {
		t.Errorf("expected rank-field ordering to put doc 10 first, got RR=%f", qm.ReciprocalRank)
	}
}
