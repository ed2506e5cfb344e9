package cmd

import (
	"fmt"

	"github.com/bekucukakin/vega/internal/refs"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/validate"
	"github.com/bekucukakin/vega/internal/vcserr"
)

func BranchHandler(r *repo.Repository, args []string) error {
	if err := validate.FileOperations(r); err != nil {
		return err
	}
	if len(args) == 0 {
		return listBranches(r)
	}
	return createBranch(r, args[0])
}

func listBranches(r *repo.Repository) error {
	names, err := refs.ListBranches(r.Meta)
	if err != nil {
		return err
	}
	current, ok, err := refs.CurrentBranch(r.Meta)
	if err != nil {
		return err
	}
	for _, name := range names {
		if ok && name == current {
			fmt.Printf("* %s\n", name)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}

func createBranch(r *repo.Repository, name string) error {
	if err := validate.BranchCreation(r, name); err != nil {
		return err
	}
	hash, ok, err := r.HeadCommit()
	if err != nil {
		return err
	}
	if !ok {
		return vcserr.New(vcserr.MissingRef, "cannot create a branch before the first commit", nil)
	}
	if err := refs.CreateBranch(r.Meta, name, hash); err != nil {
		return err
	}
	fmt.Printf("created branch %s\n", name)
	return nil
}

func init() {
	rootCmd.AddCommand(NewRepoCommand("branch [<name>]", "List or create branches", BranchHandler))
}
