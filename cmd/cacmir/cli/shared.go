package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/wizenheimer/cacmir/internal/normalize"
	"github.com/wizenheimer/cacmir/internal/rank"
)

// errConfigUsage flags a missing/invalid flag combination: a ConfigError per
// spec.md's exit-code taxonomy.
var errConfigUsage = errors.New("usage")

// readQueryFile reads a post-normalization query file (one "qid text" line
// per query) into a Query slice, in file order.
func readQueryFile(path string) ([]rank.Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var queries []rank.Query
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("query file: malformed line %q", line)
		}
		var qid int
		if _, err := fmt.Sscanf(parts[0], "%d", &qid); err != nil {
			return nil, fmt.Errorf("query file: bad qid %q", parts[0])
		}
		queries = append(queries, rank.Query{QID: qid, QueryText: parts[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return queries, nil
}

// loadStopwords reads one stopword per line from path. An empty path yields
// a nil StopSet (no stopword removal).
func loadStopwords(path string) (normalize.StopSet, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w != "" {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return normalize.NewStopSet(words), nil
}
