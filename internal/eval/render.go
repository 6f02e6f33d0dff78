package eval

import (
	"io"

	"github.com/rodaine/table"
)

// RenderPerQueryTable writes qm's rank-by-rank precision/recall table to w,
// in the tabular style the CLI uses across the rest of the corpus's output.
func RenderPerQueryTable(w io.Writer, qm QueryMetrics) {
	tbl := table.New("Rank", "Document_Id", "Precision", "Recall")
	tbl.WithWriter(w)
	for _, rm := range qm.PerRank {
		tbl.AddRow(rm.Rank, rm.DocID, rm.Precision, rm.Recall)
	}
	tbl.Print()
}

// RenderGlobalTable writes the corpus-wide MAP/MRR summary to w.
func RenderGlobalTable(w io.Writer, gm GlobalMetrics) {
	tbl := table.New("Metric", "Value")
	tbl.WithWriter(w)
	tbl.AddRow("MAP", gm.MAP)
	tbl.AddRow("MRR", gm.MRR)
	tbl.AddRow("Queries", gm.NumQueries)
	tbl.Print()
}

// RenderPAtKTable writes the P@5/P@20 summary for every query in metrics,
// ordered by qid, mirroring original_source/evaluation.py's p@k.txt output.
func RenderPAtKTable(w io.Writer, metrics map[int]QueryMetrics, qids []int) {
	tbl := table.New("Query", "P@5", "P@20")
	tbl.WithWriter(w)
	for _, qid := range qids {
		qm, ok := metrics[qid]
		if !ok {
			continue
		}
		tbl.AddRow(qid, qm.PrecisionAt5, qm.PrecisionAt20)
	}
	tbl.Print()
}
