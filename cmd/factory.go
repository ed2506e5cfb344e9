package cmd

import (
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/spf13/cobra"
)

// HandlerFunc is the signature every repository-scoped command handler
// implements.
type HandlerFunc func(r *repo.Repository, args []string) error

// NewRepoCommand builds a cobra.Command that discovers the repository
// rooted at the current directory before invoking handler, so individual
// command files never repeat the lookup-or-fail boilerplate.
func NewRepoCommand(use, short string, handler HandlerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.FindFromCWD()
			if err != nil {
				return err
			}
			return handler(r, args)
		},
	}
}
