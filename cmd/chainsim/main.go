// Command chainsim runs the emergency-registry contract simulator.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/chainsim/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Subcommands silence cobra's own error printing.
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
