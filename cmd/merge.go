package cmd

import (
	"fmt"
	"time"

	"github.com/bekucukakin/vega/internal/merge"
	"github.com/bekucukakin/vega/internal/refs"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/status"
	"github.com/bekucukakin/vega/internal/validate"
	"github.com/bekucukakin/vega/internal/vcserr"
)

var (
	mergeAbort    bool
	mergeContinue bool
)

func MergeHandler(r *repo.Repository, args []string) error {
	if err := validate.FileOperations(r); err != nil {
		return err
	}

	if mergeAbort {
		if !merge.InProgress(r.Meta) {
			return vcserr.New(vcserr.NoMergeInProgress, "no merge in progress", nil)
		}
		return merge.Abort(r.Meta)
	}

	if mergeContinue {
		return mergeContinueCmd(r)
	}

	if len(args) != 1 {
		return fmt.Errorf("usage: vega merge <branch>")
	}
	branchName := args[0]

	current, _, err := r.HeadCommit()
	if err != nil {
		return err
	}
	currentBranch, _, err := refs.CurrentBranch(r.Meta)
	if err != nil {
		return err
	}

	snap, err := computeStatus(r)
	if err != nil {
		return err
	}
	if err := validate.Merge(r, branchName, currentBranch, snap); err != nil {
		return err
	}

	targetHash, ok, err := refs.ReadRef(r.Meta, refs.BranchRefPath(branchName))
	if err != nil {
		return err
	}
	if !ok {
		return vcserr.New(vcserr.MissingRef, fmt.Sprintf("branch %q has no commits", branchName), nil)
	}

	result, err := merge.Start(r, current, targetHash, commitAuthor(r), time.Now().Unix(),
		fmt.Sprintf("Merge branch %q", branchName))
	if err != nil {
		return err
	}

	switch {
	case result.AlreadyUpToDate:
		fmt.Println("Already up to date.")
	case result.FastForwarded:
		fmt.Printf("Fast-forward to %s\n", shortHash(result.CommitHash))
	case len(result.Conflicted) > 0:
		fmt.Println("Automatic merge failed; fix conflicts and then commit the result.")
		for _, p := range result.Conflicted {
			fmt.Printf("  conflicted: %s\n", p)
		}
	default:
		fmt.Printf("Merge made by the three-way merge strategy: %s\n", shortHash(result.CommitHash))
	}
	return nil
}

func mergeContinueCmd(r *repo.Repository) error {
	if !merge.InProgress(r.Meta) {
		return vcserr.New(vcserr.NoMergeInProgress, "no merge in progress", nil)
	}
	current, _, err := r.HeadCommit()
	if err != nil {
		return err
	}
	snap, err := computeStatus(r)
	if err != nil {
		return err
	}
	conflicted := snap.Paths(status.Conflicted)

	commitHash, err := merge.Continue(r, current, conflicted, commitAuthor(r), time.Now().Unix())
	if err != nil {
		return err
	}
	fmt.Printf("Merge completed: %s\n", shortHash(commitHash))
	return nil
}

func init() {
	mergeCmd := NewRepoCommand("merge <branch>", "Join two or more development histories together", MergeHandler)
	mergeCmd.Flags().BoolVar(&mergeAbort, "abort", false, "abort the current in-progress merge")
	mergeCmd.Flags().BoolVar(&mergeContinue, "continue", false, "complete the current in-progress merge")
	rootCmd.AddCommand(mergeCmd)
}
