package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/cacmir/internal/cliutil"
	"github.com/wizenheimer/cacmir/internal/corpus"
	"github.com/wizenheimer/cacmir/internal/normalize"
)

func newQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Normalize a raw query file into the qid/text format every model reads",
	}
	queryCmd.AddCommand(newQueryNormalizeCmd())
	return queryCmd
}

func newQueryNormalizeCmd() *cobra.Command {
	var in, out, stopwordsFile string
	var stem bool

	normalizeCmd := &cobra.Command{
		Use:   "normalize",
		Short: "Assign sequential query IDs and normalize each line's text",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" || out == "" {
				return fmt.Errorf("%w: --in and --out are required", errConfigUsage)
			}

			stopwords, err := loadStopwords(stopwordsFile)
			if err != nil {
				return err
			}

			inFile, err := os.Open(in)
			if err != nil {
				return err
			}
			defer inFile.Close()

			outFile, err := os.Create(out)
			if err != nil {
				return err
			}
			defer outFile.Close()

			cfg := normalize.DefaultConfig()
			cfg.EnableStemming = stem

			if err := corpus.NormalizeQueryFile(inFile, outFile, stopwords, cfg); err != nil {
				return err
			}

			cliutil.Done(cmd.OutOrStdout(), "query normalize", out)
			return nil
		},
	}

	normalizeCmd.Flags().StringVar(&in, "in", "", "path to the raw query file, one query per line")
	normalizeCmd.Flags().StringVar(&out, "out", "", "path to write the normalized qid/text query file to")
	normalizeCmd.Flags().StringVar(&stopwordsFile, "stopwords", "", "optional path to a stopword list (one word per line)")
	normalizeCmd.Flags().BoolVar(&stem, "stem", false, "apply English stemming during normalization")

	return normalizeCmd
}
