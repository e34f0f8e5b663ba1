// Command egisf runs the feasibility gate: the HTTP API (egisf serve) and
// one-shot evaluation and reporting commands.
package main

import (
	"os"

	"github.com/egisf/egisf/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
