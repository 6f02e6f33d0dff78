package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/cacmir/internal/cliutil"
	"github.com/wizenheimer/cacmir/internal/docmap"
	"github.com/wizenheimer/cacmir/internal/index"
	"github.com/wizenheimer/cacmir/internal/stats"
)

func newIndexCmd() *cobra.Command {
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Build the inverted index and global statistics over a corpus directory",
	}
	indexCmd.AddCommand(newIndexBuildCmd())
	return indexCmd
}

func newIndexBuildCmd() *cobra.Command {
	var corpusDir, outDir string

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Read docid.map and every normalized corpus file, writing index.idx and global.stat",
		RunE: func(cmd *cobra.Command, args []string) error {
			if corpusDir == "" {
				return fmt.Errorf("%w: --corpus-dir is required", errConfigUsage)
			}
			if outDir == "" {
				outDir = corpusDir
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			m, err := docmap.ReadFile(filepath.Join(corpusDir, docmap.FileName))
			if err != nil {
				return err
			}

			idx := index.New()
			docLengths := make(map[int]int, m.Len())

			docIDs := m.DocIDs()
			sort.Ints(docIDs)
			for _, docID := range docIDs {
				corpusPath, err := m.CorpusPath(docID)
				if err != nil {
					return err
				}
				b, err := os.ReadFile(corpusPath)
				if err != nil {
					return err
				}
				tokens := strings.Fields(string(b))
				idx.IndexDocument(docID, tokens)
				docLengths[docID] = len(tokens)
			}

			st, err := stats.Build(docLengths)
			if err != nil {
				return err
			}

			if err := idx.WriteFile(filepath.Join(outDir, index.IndexFileName)); err != nil {
				return err
			}
			if err := st.WriteFile(filepath.Join(outDir, stats.FileName)); err != nil {
				return err
			}

			cliutil.Done(cmd.OutOrStdout(), "index build", fmt.Sprintf("%d documents, %d terms -> %s", len(docIDs), len(idx.Terms()), outDir))
			return nil
		},
	}

	buildCmd.Flags().StringVar(&corpusDir, "corpus-dir", "", "directory containing docid.map and normalized corpus files")
	buildCmd.Flags().StringVar(&outDir, "out", "", "directory to write index.idx and global.stat into (defaults to --corpus-dir)")

	return buildCmd
}
