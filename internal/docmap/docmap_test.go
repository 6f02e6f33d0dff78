package docmap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetAndLookup(t *testing.T) {
	m := New()
	m.Set(1, "/corpus/cacm.all", "/normalized/1.txt")

	e, ok := m.Lookup(1)
	if !ok {
		t.Fatal("expected entry for docID 1")
	}
	if e.CorpusPath != "/corpus/cacm.all" || e.DocumentPath != "/normalized/1.txt" {
		t.Errorf("unexpected entry: %+v", e)
	}

	if _, ok := m.Lookup(99); ok {
		t.Error("expected no entry for unknown docID")
	}
}

func TestCorpusPathAndDocumentPath(t *testing.T) {
	m := New()
	m.Set(1, "/corpus/cacm.all", "/normalized/1.txt")

	cp, err := m.CorpusPath(1)
	if err != nil || cp != "/corpus/cacm.all" {
		t.Errorf("CorpusPath = (%q, %v)", cp, err)
	}
	dp, err := m.DocumentPath(1)
	if err != nil || dp != "/normalized/1.txt" {
		t.Errorf("DocumentPath = (%q, %v)", dp, err)
	}

	if _, err := m.CorpusPath(99); err == nil {
		t.Error("expected error for unknown docID")
	}
}

func TestDocIDs_Sorted(t *testing.T) {
	m := New()
	m.Set(3, "a", "a")
	m.Set(1, "b", "b")
	m.Set(2, "c", "c")

	got := m.DocIDs()
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestRoundTrip(t *testing.T) {
	m := New()
	m.Set(1, "/corpus/cacm.all", "/normalized/1.txt")
	m.Set(2, "/corpus/cacm.all", "/normalized/2.txt")

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	if err := m.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	reloaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if reloaded.Len() != m.Len() {
		t.Fatalf("reloaded has %d entries, want %d", reloaded.Len(), m.Len())
	}
	for _, id := range m.DocIDs() {
		want, _ := m.Lookup(id)
		got, ok := reloaded.Lookup(id)
		if !ok || got != want {
			t.Errorf("docID %d: got %+v, want %+v", id, got, want)
		}
	}
}

func TestReadFile_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("not-enough-fields\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadFile(path); err == nil {
		t.Error("expected ReadFile to reject a malformed map file")
	}
}
