// Package cli wires the cobra command tree for the cacmir binary: one
// subcommand per pipeline stage (corpus, index, query, search, snippet,
// evaluate), mirroring the CLI surface spec.md names informally.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/cacmir/internal/cliutil"
	"github.com/wizenheimer/cacmir/internal/config"
)

var (
	configPath string
	cfg        config.Config
)

// Execute runs the cacmir root command and returns the process exit code
// the spec's error taxonomy assigns to whatever happened.
func Execute(ctx context.Context) int {
	rootCmd := &cobra.Command{
		Use:   "cacmir",
		Short: "cacmir - a small-scale information retrieval engine",
		Long: `cacmir builds a persistent inverted index over a fixed document
corpus and answers keyword queries under five ranking models (BM25, TF-IDF,
query-likelihood, proximity-weighted BM25, Rocchio pseudo-relevance
feedback), generates query-biased snippets, and scores a ranking against a
relevance judgement file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				cfg = config.Default()
				return nil
			}
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to cacmir.toml (built-in defaults if omitted)")

	rootCmd.AddCommand(
		newCorpusCmd(),
		newIndexCmd(),
		newQueryCmd(),
		newSearchCmd(),
		newSnippetCmd(),
		newEvaluateCmd(),
	)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return cliutil.ExitOK
	}
	return cliutil.Fail(rootCmd.ErrOrStderr(), rootCmd.CalledAs(), err)
}
