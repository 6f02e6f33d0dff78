package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/cacmir/internal/cliutil"
	"github.com/wizenheimer/cacmir/internal/corpus"
	"github.com/wizenheimer/cacmir/internal/docmap"
	"github.com/wizenheimer/cacmir/internal/eval"
	"github.com/wizenheimer/cacmir/internal/index"
	"github.com/wizenheimer/cacmir/internal/rank"
	"github.com/wizenheimer/cacmir/internal/snippet"
	"github.com/wizenheimer/cacmir/internal/stats"
)

func newSnippetCmd() *cobra.Command {
	var indexDir, corpusDir, queryFile, trecFile, outFile, stopwordsFile string

	snippetCmd := &cobra.Command{
		Use:   "snippet",
		Short: "Generate a query-biased snippet for every ranked result in --trec-file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if indexDir == "" || corpusDir == "" || queryFile == "" || trecFile == "" {
				return fmt.Errorf("%w: --index-dir, --corpus-dir, --query-file and --trec-file are required", errConfigUsage)
			}

			idx, err := index.ReadFile(filepath.Join(indexDir, index.IndexFileName))
			if err != nil {
				return err
			}
			st, err := stats.ReadFile(filepath.Join(indexDir, stats.FileName))
			if err != nil {
				return err
			}
			docs, err := docmap.ReadFile(filepath.Join(corpusDir, docmap.FileName))
			if err != nil {
				return err
			}
			stopwords, err := loadStopwords(stopwordsFile)
			if err != nil {
				return err
			}

			queries, err := readQueryFile(queryFile)
			if err != nil {
				return err
			}
			queryByQID := make(map[int]rank.Query, len(queries))
			for _, q := range queries {
				queryByQID[q.QID] = q
			}

			trecFileHandle, err := os.Open(trecFile)
			if err != nil {
				return err
			}
			defer trecFileHandle.Close()

			results, err := eval.ParseTRECFile(trecFileHandle)
			if err != nil {
				return err
			}

			rankedByQID := make(map[int][]eval.TRECResult)
			for _, r := range results {
				rankedByQID[r.QID] = append(rankedByQID[r.QID], r)
			}

			content := corpus.NewFileContentProvider(docs)
			service := snippet.NewService(idx, st, content, cfg.SnippetConfig())

			var w *os.File
			if outFile == "" {
				w = os.Stdout
			} else {
				w, err = os.Create(outFile)
				if err != nil {
					return err
				}
				defer w.Close()
			}

			qids := make([]int, 0, len(rankedByQID))
			for qid := range rankedByQID {
				qids = append(qids, qid)
			}
			sort.Ints(qids)

			for _, qid := range qids {
				group := rankedByQID[qid]
				sort.Slice(group, func(i, j int) bool { return group[i].Rank < group[j].Rank })

				rankedDocIDs := make([]int, len(group))
				for i, r := range group {
					rankedDocIDs[i] = r.DocID
				}

				q := queryByQID[qid]
				snippets, err := service.Snippets(q.Terms(), rankedDocIDs, stopwords)
				if err != nil {
					return err
				}

				for _, docID := range rankedDocIDs {
					fmt.Fprintf(w, "query %d, doc %d:\n%s\n", qid, docID, snippets[docID])
				}
			}

			cliutil.Done(cmd.ErrOrStderr(), "snippet", fmt.Sprintf("%d queries", len(qids)))
			return nil
		},
	}

	snippetCmd.Flags().StringVar(&indexDir, "index-dir", "", "directory containing index.idx and global.stat")
	snippetCmd.Flags().StringVar(&corpusDir, "corpus-dir", "", "directory containing docid.map")
	snippetCmd.Flags().StringVar(&queryFile, "query-file", "", "normalized query file (qid<space>text per line)")
	snippetCmd.Flags().StringVar(&trecFile, "trec-file", "", "TREC result file to generate snippets for")
	snippetCmd.Flags().StringVar(&outFile, "out", "", "path to write snippets to (defaults to stdout)")
	snippetCmd.Flags().StringVar(&stopwordsFile, "stopwords", "", "optional path to a stopword list (one word per line)")

	return snippetCmd
}
