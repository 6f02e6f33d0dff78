package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/cacmir/internal/cliutil"
	"github.com/wizenheimer/cacmir/internal/eval"
)

func newEvaluateCmd() *cobra.Command {
	evaluateCmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a TREC result file against a relevance judgement file",
	}
	evaluateCmd.AddCommand(newEvaluateRunCmd())
	return evaluateCmd
}

func newEvaluateRunCmd() *cobra.Command {
	var trecFile, relevanceFile string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Compute per-query precision/recall and global MAP/MRR",
		RunE: func(cmd *cobra.Command, args []string) error {
			if trecFile == "" || relevanceFile == "" {
				return fmt.Errorf("%w: --trec-file and --relevance-file are required", errConfigUsage)
			}

			trecHandle, err := os.Open(trecFile)
			if err != nil {
				return err
			}
			defer trecHandle.Close()
			results, err := eval.ParseTRECFile(trecHandle)
			if err != nil {
				return err
			}

			relHandle, err := os.Open(relevanceFile)
			if err != nil {
				return err
			}
			defer relHandle.Close()
			rel, err := eval.ParseRelevanceFile(relHandle, cfg.EvalConfig())
			if err != nil {
				return err
			}

			evaluator := eval.NewEvaluator(cfg.EvalConfig())
			perQuery, global := evaluator.Evaluate(results, rel)

			qids := make([]int, 0, len(perQuery))
			for qid := range perQuery {
				qids = append(qids, qid)
			}
			sort.Ints(qids)

			w := cmd.OutOrStdout()
			eval.RenderPAtKTable(w, perQuery, qids)
			eval.RenderGlobalTable(w, global)

			cliutil.Done(cmd.ErrOrStderr(), "evaluate", fmt.Sprintf("%d queries, MAP=%.4f MRR=%.4f", global.NumQueries, global.MAP, global.MRR))
			return nil
		},
	}

	runCmd.Flags().StringVar(&trecFile, "trec-file", "", "TREC result file to score")
	runCmd.Flags().StringVar(&relevanceFile, "relevance-file", "", "relevance judgement file")

	return runCmd
}
