// Command cacmir is the CLI front end for the information-retrieval engine:
// corpus construction, indexing, query normalization, search under five
// ranking models, snippet generation, and TREC-style evaluation.
package main

import (
	"context"
	"os"

	"github.com/wizenheimer/cacmir/cmd/cacmir/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
