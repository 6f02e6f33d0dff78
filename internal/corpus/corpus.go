// Package corpus turns a raw CACM stem file into the on-disk corpus this
// system indexes: one normalized text file per document plus the docID map
// that ties each document back to its source paths. Grounded on
// original_source/corpus_stem.py, corpus_rw.py and docid_mapper.py.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/wizenheimer/cacmir/internal/docmap"
	"github.com/wizenheimer/cacmir/internal/normalize"
)

var ErrMalformedStemFile = errors.New("corpus: malformed stem file")

const (
	// DocPrefix names a document derived from a stem file, matching
	// corpus_stem.py's "CACM_<docid>" fake document name.
	DocPrefix = "CACM_"
	// NormalizedExtension is the suffix on a document's normalized,
	// indexed text file.
	NormalizedExtension = ".txt"
	// RawExtension is the suffix on a document's raw (pre-normalization)
	// text file, read by the snippet generator for sentence extraction.
	RawExtension = ".raw.txt"
)

// SplitStemFile parses a cacm_stem.txt-format reader into a docID -> raw
// content map. Lines of the form "# <docid>" mark a document boundary; every
// line until the next marker belongs to the preceding docID.
func SplitStemFile(r io.Reader) (map[int]string, error) {
	contents := make(map[int]string)
	order := make([]int, 0)

	docID := -1
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "#") {
			idStr := strings.TrimSpace(strings.TrimPrefix(line, "#"))
			id, err := strconv.Atoi(idStr)
			if err != nil {
				return nil, fmt.Errorf("%w: bad document marker %q", ErrMalformedStemFile, line)
			}
			docID = id
			if _, exists := contents[docID]; !exists {
				contents[docID] = ""
				order = append(order, docID)
			}
			continue
		}

		if line == "" {
			continue
		}
		if docID == -1 {
			return nil, fmt.Errorf("%w: content before any document marker", ErrMalformedStemFile)
		}
		if contents[docID] == "" {
			contents[docID] = line
		} else {
			contents[docID] = contents[docID] + " " + line
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return contents, nil
}

// BuildResult is the outcome of materializing a corpus directory: the docID
// map and each document's token count, ready to feed stats.Build.
type BuildResult struct {
	DocMap     *docmap.DocIDMap
	DocLengths map[int]int
}

// BuildFromStemFile splits stemFile (read via stemReader) into per-document
// content, writes a normalized text file and a raw text file per document
// under corpusDir, and returns the resulting docID map and document
// lengths. stemFilePath is not used; stemReader supplies the content.
func BuildFromStemFile(stemReader io.Reader, stemFilePath, corpusDir string, stopwords normalize.StopSet, cfg normalize.Config) (*BuildResult, error) {
	rawByDoc, err := SplitStemFile(stemReader)
	if err != nil {
		return nil, err
	}

	docIDs := make([]int, 0, len(rawByDoc))
	for id := range rawByDoc {
		docIDs = append(docIDs, id)
	}
	sort.Ints(docIDs)

	m := docmap.New()
	docLengths := make(map[int]int, len(docIDs))

	for _, docID := range docIDs {
		raw := rawByDoc[docID]
		tokens := normalize.NormalizeWithConfig(raw, stopwords, cfg)

		docName := fmt.Sprintf("%s%d", DocPrefix, docID)
		normalizedPath := filepath.Join(corpusDir, docName+NormalizedExtension)
		rawPath := filepath.Join(corpusDir, docName+RawExtension)

		if err := os.WriteFile(normalizedPath, []byte(strings.Join(tokens, " ")), 0o644); err != nil {
			return nil, err
		}
		if err := os.WriteFile(rawPath, []byte(cleanRawContent(raw)), 0o644); err != nil {
			return nil, err
		}

		m.Set(docID, normalizedPath, rawPath)
		docLengths[docID] = len(tokens)
	}

	return &BuildResult{DocMap: m, DocLengths: docLengths}, nil
}

// cleanRawContent collapses a stem document's content to single-space
// separated words, matching corpus_stem.py's own word-rejoin step.
func cleanRawContent(content string) string {
	return strings.Join(strings.Fields(content), " ")
}

// FileContentProvider reads per-document text from disk via a docID map,
// implementing snippet.ContentProvider without that package needing any
// notion of a filesystem layout.
type FileContentProvider struct {
	docs *docmap.DocIDMap
}

// NewFileContentProvider constructs a FileContentProvider over docs.
func NewFileContentProvider(docs *docmap.DocIDMap) *FileContentProvider {
	return &FileContentProvider{docs: docs}
}

// NormalizedContent returns docID's normalized (indexed) text.
func (p *FileContentProvider) NormalizedContent(docID int) (string, error) {
	path, err := p.docs.CorpusPath(docID)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RawContent returns docID's raw text plus the base name of the file it was
// read from, for display in an assembled snippet.
func (p *FileContentProvider) RawContent(docID int) (string, string, error) {
	path, err := p.docs.DocumentPath(docID)
	if err != nil {
		return "", "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(b), filepath.Base(path), nil
}

// NormalizeQueryFile reads one query per line from r and writes "qid
// normalizedText" lines to w, assigning 1-based sequential query IDs the way
// format_stem_queries.py assigns them, but additionally normalizing each
// query's text through the same pipeline documents go through (the source
// program left queries pre-stemmed externally; this keeps query and
// document normalization as a single shared code path).
func NormalizeQueryFile(r io.Reader, w io.Writer, stopwords normalize.StopSet, cfg normalize.Config) error {
	scanner := bufio.NewScanner(r)
	qid := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		qid++
		tokens := normalize.NormalizeWithConfig(line, stopwords, cfg)
		if _, err := fmt.Fprintf(w, "%d %s\n", qid, strings.Join(tokens, " ")); err != nil {
			return err
		}
	}
	return scanner.Err()
}
