// Command idxstore runs scenario checks, find benchmarks and an interactive
// shell over the in-memory indexed record store.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/idxstore/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
