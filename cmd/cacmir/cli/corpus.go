package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/cacmir/internal/cliutil"
	"github.com/wizenheimer/cacmir/internal/corpus"
	"github.com/wizenheimer/cacmir/internal/docmap"
	"github.com/wizenheimer/cacmir/internal/normalize"
)

func newCorpusCmd() *cobra.Command {
	corpusCmd := &cobra.Command{
		Use:   "corpus",
		Short: "Build the normalized corpus and document ID map",
	}
	corpusCmd.AddCommand(newCorpusBuildCmd())
	return corpusCmd
}

func newCorpusBuildCmd() *cobra.Command {
	var stemFile, outDir, stopwordsFile string
	var stem bool

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Split a CACM stem file into per-document corpus files plus docid.map",
		RunE: func(cmd *cobra.Command, args []string) error {
			if stemFile == "" || outDir == "" {
				return fmt.Errorf("%w: --stem-file and --out are required", errConfigUsage)
			}

			stopwords, err := loadStopwords(stopwordsFile)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			f, err := os.Open(stemFile)
			if err != nil {
				return err
			}
			defer f.Close()

			normCfg := normalize.DefaultConfig()
			normCfg.EnableStemming = stem

			result, err := corpus.BuildFromStemFile(f, stemFile, outDir, stopwords, normCfg)
			if err != nil {
				return err
			}

			if err := result.DocMap.WriteFile(filepath.Join(outDir, docmap.FileName)); err != nil {
				return err
			}

			cliutil.Done(cmd.OutOrStdout(), "corpus build", fmt.Sprintf("%d documents -> %s", result.DocMap.Len(), outDir))
			return nil
		},
	}

	buildCmd.Flags().StringVar(&stemFile, "stem-file", "", "path to cacm_stem.txt")
	buildCmd.Flags().StringVar(&outDir, "out", "", "directory to write normalized corpus files and docid.map into")
	buildCmd.Flags().StringVar(&stopwordsFile, "stopwords", "", "optional path to a stopword list (one word per line)")
	buildCmd.Flags().BoolVar(&stem, "stem", false, "apply English stemming during normalization")

	return buildCmd
}
