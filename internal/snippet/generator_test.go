package snippet

import (
	"fmt"
	"strings"
	"testing"
)

type fakeContent struct {
	normalized map[int]string
	raw        map[int]string
	filenames  map[int]string
}

func (f fakeContent) NormalizedContent(docID int) (string, error) {
	c, ok := f.normalized[docID]
	if !ok {
		return "", fmt.Errorf("no normalized content for %d", docID)
	}
	return c, nil
}

func (f fakeContent) RawContent(docID int) (string, string, error) {
	c, ok := f.raw[docID]
	if !ok {
		return "", "", fmt.Errorf("no raw content for %d", docID)
	}
	return c, f.filenames[docID], nil
}

func TestSentences_SplitsParagraphsAndSentences(t *testing.T) {
	text := "First sentence. Second sentence.\n\nThird paragraph sentence."
	got := Sentences(text)
	want := []string{"First sentence", "Second sentence.", "Third paragraph sentence."}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSigSegment_ExtendsContext(t *testing.T) {
	sentence := "a b c compiler d e f"
	sig := map[string]struct{}{"compiler": {}}

	got := SigSegment(sentence, sig)
	want := "a b c compiler d e f"
	if got != want {
		t.Errorf("SigSegment = %q, want %q", got, want)
	}
}

func TestSigSegment_NoSignificantWord(t *testing.T) {
	got := SigSegment("nothing relevant here", map[string]struct{}{"compiler": {}})
	if got != "" {
		t.Errorf("expected empty segment, got %q", got)
	}
}

func TestSegmentScore(t *testing.T) {
	sig := map[string]struct{}{"compiler": {}, "code": {}}
	segment := "a compiler translates source code"
	// sig word count = 2 ("compiler", "code"); total words = 5
	want := 4.0 / 5.0
	got := SegmentScore(segment, sig)
	if got != want {
		t.Errorf("SegmentScore = %f, want %f", got, want)
	}
}

func TestSegmentScore_EmptySegment(t *testing.T) {
	if got := SegmentScore("", map[string]struct{}{"a": {}}); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestHighlight_UppercasesSignificantWords(t *testing.T) {
	sig := map[string]struct{}{"compiler": {}}
	text := "A compiler translates source code."
	got := Highlight(sig, text)
	if !strings.Contains(got, "COMPILER") {
		t.Errorf("expected COMPILER in %q", got)
	}
}

func TestGenerator_CompilerScenario(t *testing.T) {
	content := fakeContent{
		raw: map[int]string{
			1: "A compiler translates source code.",
		},
		filenames: map[int]string{1: "doc1.txt"},
	}

	g := NewGenerator(content, DefaultConfig())
	sigWords := []string{"compiler"}
	queryWords := []string{"compiler"}

	got, err := g.Generate(1, sigWords, queryWords)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(got, "COMPILER") {
		t.Errorf("expected highlighted COMPILER in snippet %q", got)
	}
	for _, tok := range []string{"translates", "source", "code"} {
		if !strings.Contains(got, tok) {
			t.Errorf("expected token %q in snippet %q", tok, got)
		}
	}
	if !strings.HasPrefix(got, "doc1.txt") {
		t.Errorf("expected snippet to be prefixed with filename, got %q", got)
	}
}

func TestGenerator_ShortDocumentYieldsEmptyBody(t *testing.T) {
	content := fakeContent{
		raw:       map[int]string{1: "irrelevant unrelated text"},
		filenames: map[int]string{1: "doc1.txt"},
	}
	g := NewGenerator(content, DefaultConfig())

	got, err := g.Generate(1, []string{"compiler"}, []string{"compiler"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(got, "doc1.txt") {
		t.Errorf("expected filename prefix even with no matching segments, got %q", got)
	}
}
