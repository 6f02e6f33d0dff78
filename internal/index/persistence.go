package index

// ═══════════════════════════════════════════════════════════════════════════════
// PERSISTENCE: Saving and Loading the Index
// ═══════════════════════════════════════════════════════════════════════════════
// The on-disk format is one line per term:
//
//   term|docId tf p1 p2 … p_tf ,docId tf p1 … ,…\n
//
// A '|' separates the term from its posting stream; postings are separated
// by ','; within a posting, docId/tf/positions are whitespace-separated.
// Terms are written in ascending order so persistence is idempotent given
// the same in-memory index.
// ═══════════════════════════════════════════════════════════════════════════════

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// IndexFileName is the canonical file name an indexstore directory carries
// the persisted index under.
const IndexFileName = "index.idx"

// WriteFile persists idx to path, atomically: it writes to a temporary file
// in the same directory and renames it into place on success, so a crash or
// error never leaves a partially written index file behind.
func (idx *Index) WriteFile(path string) error {
	if err := idx.SanityCheck(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".index-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	w := bufio.NewWriter(tmp)
	if err := idx.encode(w); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

func (idx *Index) encode(w io.Writer) error {
	for _, term := range idx.SortedTerms() {
		if _, err := io.WriteString(w, term); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "|"); err != nil {
			return err
		}

		pl := idx.terms[term]
		postingStrs := make([]string, len(pl))
		for i, p := range pl {
			var b strings.Builder
			b.WriteString(strconv.Itoa(p.DocID))
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(p.TF))
			for _, pos := range p.Positions {
				b.WriteByte(' ')
				b.WriteString(strconv.Itoa(pos))
			}
			postingStrs[i] = b.String()
		}

		if _, err := io.WriteString(w, strings.Join(postingStrs, ",")); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile loads a persisted index from path, running SanityCheck on the
// result before returning it. A malformed file is a fatal ParseError.
func ReadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	idx := New()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := idx.decodeLine(line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := idx.SanityCheck(); err != nil {
		return nil, err
	}

	return idx, nil
}

func (idx *Index) decodeLine(line string) error {
	sep := strings.IndexByte(line, '|')
	if sep < 0 {
		return fmt.Errorf("%w: missing '|' separator", ErrMalformedIndexFile)
	}

	term := line[:sep]
	postingsPart := line[sep+1:]

	var pl PostingList
	for _, postingStr := range strings.Split(postingsPart, ",") {
		postingStr = strings.TrimSpace(postingStr)
		if postingStr == "" {
			continue
		}
		fields := strings.Fields(postingStr)
		if len(fields) < 2 {
			return fmt.Errorf("%w: malformed posting %q", ErrMalformedIndexFile, postingStr)
		}

		docID, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("%w: bad docID in %q", ErrMalformedIndexFile, postingStr)
		}
		tf, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("%w: bad tf in %q", ErrMalformedIndexFile, postingStr)
		}
		if len(fields) != tf+2 {
			return fmt.Errorf("%w: tf/positions mismatch in %q", ErrMalformedIndexFile, postingStr)
		}

		positions := make([]int, tf)
		for i, f := range fields[2:] {
			pos, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("%w: bad position in %q", ErrMalformedIndexFile, postingStr)
			}
			positions[i] = pos
		}

		pl = append(pl, Posting{DocID: docID, TF: tf, Positions: positions})
	}

	idx.terms[term] = pl
	return nil
}
