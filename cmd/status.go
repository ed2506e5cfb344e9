package cmd

import (
	"fmt"

	"github.com/bekucukakin/vega/internal/index"
	"github.com/bekucukakin/vega/internal/present"
	"github.com/bekucukakin/vega/internal/refs"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/status"
	"github.com/bekucukakin/vega/internal/validate"
)

func StatusHandler(r *repo.Repository, args []string) error {
	if err := validate.FileOperations(r); err != nil {
		return err
	}

	snap, err := computeStatus(r)
	if err != nil {
		return err
	}

	if branch, ok, err := refs.CurrentBranch(r.Meta); err == nil && ok {
		fmt.Printf("On branch %s\n", branch)
	} else if err == nil {
		hash, headOK, _ := r.HeadCommit()
		if headOK {
			fmt.Printf("HEAD detached at %s\n", shortHash(hash))
		}
	}

	printed := false
	if paths := snap.Paths(status.Staged); len(paths) > 0 {
		fmt.Println("Changes to be committed:")
		for _, p := range paths {
			fmt.Println("  " + present.Added("staged: %s", p))
		}
		printed = true
	}
	if paths := snap.Paths(status.Deleted); len(paths) > 0 {
		fmt.Println("Changes to be committed:")
		for _, p := range paths {
			fmt.Println("  " + present.Deleted("deleted: %s", p))
		}
		printed = true
	}
	var notStaged []string
	for _, e := range snap.Entries {
		if e.State == status.Modified || (e.State == status.Staged && e.WorkingTreeDiffersFromIndex) {
			notStaged = append(notStaged, e.Path)
		}
	}
	if len(notStaged) > 0 {
		fmt.Println("Changes not staged for commit:")
		for _, p := range notStaged {
			fmt.Println("  " + present.Modified("modified: %s", p))
		}
		printed = true
	}
	if paths := snap.Paths(status.Conflicted); len(paths) > 0 {
		fmt.Println("Unmerged paths:")
		for _, p := range paths {
			fmt.Println("  " + present.Modified("conflicted: %s", p))
		}
		printed = true
	}
	if paths := snap.Paths(status.Untracked); len(paths) > 0 {
		fmt.Println("Untracked files:")
		for _, p := range paths {
			fmt.Println("  " + present.Untracked("%s", p))
		}
		printed = true
	}
	if !printed {
		fmt.Println("nothing to commit, working tree clean")
	}
	return nil
}

// computeStatus joins HEAD's tree, the index, and the working tree into a
// status.Snapshot; shared by the status command and the checkout/merge
// preconditions.
func computeStatus(r *repo.Repository) (status.Snapshot, error) {
	headTree, _, err := r.HeadTreeMap()
	if err != nil {
		return status.Snapshot{}, err
	}
	idx, err := index.Load(r.Meta)
	if err != nil {
		return status.Snapshot{}, err
	}
	ignoreSet, err := repo.LoadIgnore(r.Root)
	if err != nil {
		return status.Snapshot{}, err
	}
	workingPaths, err := r.Walk(ignoreSet)
	if err != nil {
		return status.Snapshot{}, err
	}
	return status.Classify(r, headTree, idx, workingPaths)
}

func init() {
	rootCmd.AddCommand(NewRepoCommand("status", "Show the working tree status", StatusHandler))
}
