// Package cmd wires vega's cobra command tree to the internal packages
// implementing the object store, index, history, and merge engine.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vega",
	Short: "vega is a local, Git-compatible-in-spirit version control engine",
	Long: `vega snapshots a working tree into content-addressed objects, arranges
those snapshots as a commit DAG with named branches, and merges divergent
histories with three-way conflict detection. It operates entirely locally:
no remote transport, no packed objects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and exits non-zero on any error, after
// printing it in vega's git-phrased style.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", friendlyMessage(err))
		os.Exit(1)
	}
}
