package snippet

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/wizenheimer/cacmir/internal/normalize"
)

var (
	paragraphSplit = regexp.MustCompile(`\n\n`)
	sentenceSplit  = regexp.MustCompile(`\.\s`)
)

// Generator assembles one document's snippet from its raw text and a set
// of significant words, following Luhn's segment-scoring approach.
type Generator struct {
	content ContentProvider
	cfg     Config
}

// NewGenerator constructs a snippet generator reading document text
// through content.
func NewGenerator(content ContentProvider, cfg Config) *Generator {
	return &Generator{content: content, cfg: cfg}
}

// segmentScore pairs a raw sentence segment with its Luhn score and its
// original position, so segments can be re-ordered after selection.
type segmentScore struct {
	index   int
	segment string
	score   float64
}

// Generate builds docID's snippet given the query's significant words and
// the original (already-normalized) query words to highlight.
func (g *Generator) Generate(docID int, sigWords []string, queryWords []string) (string, error) {
	rawText, filename, err := g.content.RawContent(docID)
	if err != nil {
		return "", err
	}

	sigSet := make(map[string]struct{}, len(sigWords))
	for _, w := range sigWords {
		sigSet[w] = struct{}{}
	}

	sentences := Sentences(rawText)

	scored := make([]segmentScore, 0, len(sentences))
	for i, sentence := range sentences {
		sentence = cleanWhitespace(sentence)
		seg := sigSegment(sentence, sigSet, g.cfg.ContextWords)
		score := SegmentScore(seg, sigSet)
		scored = append(scored, segmentScore{index: i, segment: seg, score: score})
	}

	snippetBody := Assemble(filepath.Base(filename), scored, g.cfg.MaxWords)

	highlightSet := make(map[string]struct{}, len(queryWords))
	for _, w := range queryWords {
		highlightSet[w] = struct{}{}
	}
	return Highlight(highlightSet, snippetBody), nil
}

// Sentences splits raw document text into paragraphs (blank-line
// separated), then each paragraph into sentences (period-then-whitespace
// separated).
func Sentences(text string) []string {
	paragraphs := paragraphSplit.Split(text, -1)
	var out []string
	for _, p := range paragraphs {
		out = append(out, sentenceSplit.Split(p, -1)...)
	}
	return out
}

// cleanWhitespace collapses any run of whitespace in s to a single space.
func cleanWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SigSegment returns the substring of sentence spanning its first to last
// significant word, extended by up to 3 tokens of context on each side.
// If sentence has no significant word, it returns "".
func SigSegment(sentence string, sigWords map[string]struct{}) string {
	return sigSegment(sentence, sigWords, 3)
}

// sigSegment is SigSegment with an explicit number of context tokens kept
// on each side.
func sigSegment(sentence string, sigWords map[string]struct{}, context int) string {
	words := strings.Split(sentence, " ")

	start, end := -1, -1
	for i, w := range words {
		if isSignificant(w, sigWords) {
			start = i
			break
		}
	}
	for i := len(words) - 1; i >= 0; i-- {
		if isSignificant(words[i], sigWords) {
			end = i
			break
		}
	}

	if start == -1 && end == -1 {
		return ""
	}

	if start-context < 0 {
		start = 0
	} else {
		start -= context
	}
	end += context + 1
	if end > len(words) {
		end = len(words)
	}
	return strings.Join(words[start:end], " ")
}

// isSignificant normalizes w (punctuation/case) and checks it against
// sigWords.
func isSignificant(w string, sigWords map[string]struct{}) bool {
	norm := normalizeWord(w)
	if norm == "" {
		return false
	}
	_, ok := sigWords[norm]
	return ok
}

// normalizeWord applies the same normalization pipeline a single word
// would receive were it part of a larger normalized document, without
// removing stopwords (callers decide significance separately).
func normalizeWord(w string) string {
	tokens := normalize.Normalize(w, nil)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// SegmentScore is Luhn's score for a segment: (significant word count)^2 /
// (total word count). An empty segment scores 0.
func SegmentScore(segment string, sigWords map[string]struct{}) float64 {
	if segment == "" {
		return 0
	}
	words := strings.Split(segment, " ")
	sigCount := 0
	for _, w := range words {
		if isSignificant(w, sigWords) {
			sigCount++
		}
	}
	return float64(sigCount*sigCount) / float64(len(words))
}

// Assemble picks the highest-scoring nonzero segments up to a maxWords
// budget, reorders the chosen segments back to their original document
// position, and concatenates them with " ... ", prefixed by docName.
func Assemble(docName string, scored []segmentScore, maxWords int) string {
	ordered := make([]segmentScore, len(scored))
	copy(ordered, scored)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].score > ordered[j].score })

	var chosen []segmentScore
	wordsInSnippet := 0
	for _, s := range ordered {
		if wordsInSnippet > maxWords {
			break
		}
		if s.score == 0 {
			continue
		}
		chosen = append(chosen, s)
		wordsInSnippet += len(strings.Fields(s.segment))
	}

	sort.Slice(chosen, func(i, j int) bool { return chosen[i].index < chosen[j].index })

	var b strings.Builder
	for _, s := range chosen {
		b.WriteString(s.segment)
		b.WriteString(" ... ")
	}

	return fmt.Sprintf("%s\n%s\n", docName, strings.TrimSpace(b.String()))
}

// Highlight uppercases every token of text whose normalized form is in
// sigWords.
func Highlight(sigWords map[string]struct{}, text string) string {
	words := strings.Split(text, " ")
	for i, w := range words {
		if isSignificant(w, sigWords) {
			words[i] = strings.ToUpper(w)
		}
	}
	return strings.Join(words, " ")
}
