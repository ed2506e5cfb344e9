package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/bekucukakin/vega/internal/repo"
	"github.com/spf13/cobra"
)

const defaultBranch = "master"

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a new, empty vega repository",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		r, err := repo.Init(dir, defaultBranch)
		if err != nil {
			return err
		}
		fmt.Printf("Initialized empty vega repository in %s\n", filepath.Join(r.Root, repo.MetaDirName))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
