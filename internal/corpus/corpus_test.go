package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wizenheimer/cacmir/internal/normalize"
)

func TestSplitStemFile(t *testing.T) {
	data := "# 1\nThe Quick Brown Fox\nJumps Over\n# 2\nLazy Dog Sleeps\n"
	got, err := SplitStemFile(strings.NewReader(data))
	if err != nil {
		t.Fatalf("SplitStemFile: %v", err)
	}

	if got[1] != "The Quick Brown Fox Jumps Over" {
		t.Errorf("doc 1 = %q", got[1])
	}
	if got[2] != "Lazy Dog Sleeps" {
		t.Errorf("doc 2 = %q", got[2])
	}
}

func TestSplitStemFile_ContentBeforeMarker(t *testing.T) {
	if _, err := SplitStemFile(strings.NewReader("orphan line\n# 1\nbody\n")); err == nil {
		t.Error("expected error for content before any marker")
	}
}

func TestSplitStemFile_BadMarker(t *testing.T) {
	if _, err := SplitStemFile(strings.NewReader("# not-a-number\nbody\n")); err == nil {
		t.Error("expected error for non-numeric marker")
	}
}

func TestBuildFromStemFile(t *testing.T) {
	dir := t.TempDir()
	data := "# 1\nCompilers translate source code\n# 2\nOperating systems manage memory\n"

	result, err := BuildFromStemFile(strings.NewReader(data), "cacm_stem.txt", dir, nil, normalize.DefaultConfig())
	if err != nil {
		t.Fatalf("BuildFromStemFile: %v", err)
	}

	if result.DocMap.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", result.DocMap.Len())
	}
	if result.DocLengths[1] == 0 {
		t.Errorf("expected nonzero doc length for doc 1")
	}

	normalizedPath, err := result.DocMap.CorpusPath(1)
	if err != nil {
		t.Fatalf("CorpusPath: %v", err)
	}
	if filepath.Dir(normalizedPath) != dir {
		t.Errorf("expected file under %q, got %q", dir, normalizedPath)
	}
	b, err := os.ReadFile(normalizedPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(b), "Compilers") {
		t.Errorf("expected casefolded normalized content, got %q", b)
	}
}

func TestFileContentProvider(t *testing.T) {
	dir := t.TempDir()
	data := "# 1\nCompilers translate source code\n"
	result, err := BuildFromStemFile(strings.NewReader(data), "cacm_stem.txt", dir, nil, normalize.DefaultConfig())
	if err != nil {
		t.Fatalf("BuildFromStemFile: %v", err)
	}

	provider := NewFileContentProvider(result.DocMap)

	norm, err := provider.NormalizedContent(1)
	if err != nil {
		t.Fatalf("NormalizedContent: %v", err)
	}
	if !strings.Contains(norm, "compilers") {
		t.Errorf("expected normalized content to contain lowercased token, got %q", norm)
	}

	raw, filename, err := provider.RawContent(1)
	if err != nil {
		t.Fatalf("RawContent: %v", err)
	}
	if !strings.Contains(raw, "Compilers") {
		t.Errorf("expected raw content to preserve case, got %q", raw)
	}
	if filename == "" {
		t.Error("expected non-empty filename")
	}
}

func TestNormalizeQueryFile(t *testing.T) {
	input := "Compiler Design\nOperating Systems\n"
	var out strings.Builder

	if err := NormalizeQueryFile(strings.NewReader(input), &out, nil, normalize.DefaultConfig()); err != nil {
		t.Fatalf("NormalizeQueryFile: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	if lines[0] != "1 compiler design" {
		t.Errorf("line 1 = %q", lines[0])
	}
	if lines[1] != "2 operating systems" {
		t.Errorf("line 2 = %q", lines[1])
	}
}

func TestNormalizeQueryFile_SkipsBlankLines(t *testing.T) {
	input := "first query\n\nsecond query\n"
	var out strings.Builder

	if err := NormalizeQueryFile(strings.NewReader(input), &out, nil, normalize.DefaultConfig()); err != nil {
		t.Fatalf("NormalizeQueryFile: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	if !strings.HasPrefix(lines[1], "2 ") {
		t.Errorf("expected second line to be qid 2, got %q", lines[1])
	}
}
