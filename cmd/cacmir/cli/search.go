package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/cacmir/internal/cliutil"
	"github.com/wizenheimer/cacmir/internal/index"
	"github.com/wizenheimer/cacmir/internal/rank"
	"github.com/wizenheimer/cacmir/internal/stats"
)

// modelSearcher is satisfied by every rank.*Model: one query in, one
// ranked ResultSet out.
type modelSearcher interface {
	SearchQuery(q rank.Query) rank.ResultSet
}

func newSearchCmd() *cobra.Command {
	var indexDir, queryFile, outFile, model string

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Rank every query in --query-file against the index under one retrieval model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if indexDir == "" || queryFile == "" {
				return fmt.Errorf("%w: --index-dir and --query-file are required", errConfigUsage)
			}

			idx, err := index.ReadFile(filepath.Join(indexDir, index.IndexFileName))
			if err != nil {
				return err
			}
			st, err := stats.ReadFile(filepath.Join(indexDir, stats.FileName))
			if err != nil {
				return err
			}

			searcher, err := buildModel(model, idx, st)
			if err != nil {
				return err
			}

			queries, err := readQueryFile(queryFile)
			if err != nil {
				return err
			}

			var w *bufio.Writer
			if outFile == "" {
				w = bufio.NewWriter(cmd.OutOrStdout())
			} else {
				f, err := os.Create(outFile)
				if err != nil {
					return err
				}
				defer f.Close()
				w = bufio.NewWriter(f)
			}

			for _, q := range queries {
				rs := searcher.SearchQuery(q)
				for _, line := range rs.TRECStrings() {
					if _, err := fmt.Fprintln(w, line); err != nil {
						return err
					}
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			cliutil.Done(cmd.ErrOrStderr(), "search", fmt.Sprintf("%s: %d queries", model, len(queries)))
			return nil
		},
	}

	searchCmd.Flags().StringVar(&indexDir, "index-dir", "", "directory containing index.idx and global.stat")
	searchCmd.Flags().StringVar(&queryFile, "query-file", "", "normalized query file (qid<space>text per line)")
	searchCmd.Flags().StringVar(&outFile, "out", "", "path to write TREC result lines to (defaults to stdout)")
	searchCmd.Flags().StringVar(&model, "model", "bm25", "ranking model: bm25|tfidf|qlm|proximity|prf")

	return searchCmd
}

func buildModel(name string, idx *index.Index, st *stats.GlobalStatistics) (modelSearcher, error) {
	switch name {
	case "bm25":
		return rank.NewBM25(idx, st, cfg.BM25Config()), nil
	case "tfidf":
		return rank.NewTFIDF(idx), nil
	case "qlm":
		return rank.NewQLM(idx, st, cfg.QLMConfig()), nil
	case "proximity":
		return rank.NewProximity(idx, st, cfg.ProximityConfig(), cfg.BM25Config()), nil
	case "prf":
		return rank.NewPRF(idx, st, cfg.PRFConfig()), nil
	default:
		return nil, fmt.Errorf("%w: unknown model %q", errConfigUsage, name)
	}
}
