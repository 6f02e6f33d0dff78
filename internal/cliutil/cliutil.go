// Package cliutil holds the small pieces of ambient scaffolding shared by
// every cmd/cacmir subcommand: exit-code classification and colored
// diagnostic printing, mirroring the progress/diagnostic printing style
// spec.md calls out as an external-but-present concern.
package cliutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/wizenheimer/cacmir/internal/corpus"
	"github.com/wizenheimer/cacmir/internal/docmap"
	"github.com/wizenheimer/cacmir/internal/eval"
	"github.com/wizenheimer/cacmir/internal/index"
	"github.com/wizenheimer/cacmir/internal/stats"
)

// Exit codes, matching spec.md §7's error taxonomy.
const (
	ExitOK                 = 0
	ExitConfigError        = 1
	ExitParseError         = 2
	ExitDataInvariantError = 3
)

var (
	fatalLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	okLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	stageLabel = color.New(color.FgCyan).SprintFunc()
)

// Fail writes a one-line colored diagnostic for err, prefixed by stage, to w
// and returns the process exit code the spec's error taxonomy assigns it.
func Fail(w io.Writer, stage string, err error) int {
	fmt.Fprintf(w, "%s %s: %v\n", fatalLabel("FATAL"), stageLabel(stage), err)
	return Classify(err)
}

// Done writes a one-line colored confirmation for a successfully completed
// stage.
func Done(w io.Writer, stage, detail string) {
	fmt.Fprintf(w, "%s %s: %s\n", okLabel("OK"), stageLabel(stage), detail)
}

// Classify maps err to the exit code its originating taxonomy bucket
// carries: DataInvariantError (3), ParseError (2), or ConfigError (1) for
// anything unrecognized.
func Classify(err error) int {
	switch {
	case errors.Is(err, index.ErrSanityCheckFailed), errors.Is(err, stats.ErrInvalidStats):
		return ExitDataInvariantError
	case errors.Is(err, index.ErrMalformedIndexFile),
		errors.Is(err, stats.ErrMalformedStatsFile),
		errors.Is(err, docmap.ErrMalformedMapFile),
		errors.Is(err, corpus.ErrMalformedStemFile),
		errors.Is(err, eval.ErrMalformedTREC),
		errors.Is(err, eval.ErrMalformedRelevance):
		return ExitParseError
	default:
		return ExitConfigError
	}
}
