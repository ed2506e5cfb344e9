// Package validate collects the declarative precondition checks shared
// across commands: each fails with a typed error before any mutation
// happens, so a rejected command never leaves partial state.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bekucukakin/vega/internal/index"
	"github.com/bekucukakin/vega/internal/merge"
	"github.com/bekucukakin/vega/internal/refs"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/status"
	"github.com/bekucukakin/vega/utils"
	"github.com/bekucukakin/vega/internal/vcserr"
)

// FileOperations requires the repository's metadata directory to be
// present; nearly every command checks this first.
func FileOperations(r *repo.Repository) error {
	if r == nil || !utils.FileExists(r.Meta) {
		return vcserr.New(vcserr.NotARepo, "not a vega repository", nil)
	}
	return nil
}

// Checkout requires the already-resolved target to differ from the current
// HEAD, and the working tree to be clean (untracked files don't block).
func Checkout(r *repo.Repository, currentHash, targetHash string, snap status.Snapshot) error {
	if targetHash == currentHash {
		return vcserr.New(vcserr.AlreadyExists, "already on target", nil)
	}
	if !snap.IsClean() {
		return vcserr.New(vcserr.WouldOverwriteChanges, "your local changes would be overwritten by checkout; commit or stash them first", nil)
	}
	return nil
}

// Merge requires no merge already in progress, the target branch to exist
// and be non-empty, the target not to be the current branch, and a clean
// working tree.
func Merge(r *repo.Repository, branchName string, currentBranch string, snap status.Snapshot) error {
	if merge.InProgress(r.Meta) {
		return vcserr.New(vcserr.MergeInProgress, "a merge is already in progress", nil)
	}
	if !refs.BranchExists(r.Meta, branchName) {
		return vcserr.New(vcserr.MissingRef, fmt.Sprintf("branch %q does not exist", branchName), nil)
	}
	hash, ok, err := refs.ReadRef(r.Meta, refs.BranchRefPath(branchName))
	if err != nil {
		return err
	}
	if !ok || hash == "" {
		return vcserr.New(vcserr.MissingRef, fmt.Sprintf("branch %q has no commits", branchName), nil)
	}
	if branchName == currentBranch {
		return vcserr.New(vcserr.InvalidName, "cannot merge a branch into itself", nil)
	}
	if !snap.IsClean() {
		return vcserr.New(vcserr.WouldOverwriteChanges, "your local changes would be overwritten by merge; commit or stash them first", nil)
	}
	return nil
}

// Commit requires the index to be non-empty (staged changes, including
// staged deletions), unless a merge commit is being finalized.
func Commit(idx *index.Index, mergeInProgress bool) error {
	if idx.Len() == 0 && !mergeInProgress {
		return vcserr.New(vcserr.NothingToCommit, "nothing to commit", nil)
	}
	return nil
}

var branchNameRe = regexp.MustCompile(`\.\.|~|\^|:|\?|\*|\[|\]|@\{|\\`)

// BranchCreation validates name against vega's branch-name grammar and
// confirms the ref does not already exist.
func BranchCreation(r *repo.Repository, name string) error {
	if name == "" {
		return vcserr.New(vcserr.InvalidName, "branch name must not be empty", nil)
	}
	if branchNameRe.MatchString(name) {
		return vcserr.New(vcserr.InvalidName, fmt.Sprintf("branch name %q contains a disallowed sequence", name), nil)
	}
	if strings.HasPrefix(name, "-") {
		return vcserr.New(vcserr.InvalidName, fmt.Sprintf("branch name %q must not start with '-'", name), nil)
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, ".lock") {
		return vcserr.New(vcserr.InvalidName, fmt.Sprintf("branch name %q must not end with '.' or '.lock'", name), nil)
	}
	if refs.BranchExists(r.Meta, name) {
		return vcserr.New(vcserr.AlreadyExists, fmt.Sprintf("branch %q already exists", name), nil)
	}
	return nil
}

// FileAdd requires path to exist on disk, or be tracked in HEAD (the
// staged-deletion path), or already be staged.
func FileAdd(existsOnDisk, trackedInHead, alreadyStaged bool, relPath string) error {
	if existsOnDisk || trackedInHead || alreadyStaged {
		return nil
	}
	return vcserr.New(vcserr.PathNotFound, fmt.Sprintf("path %q did not match any file known to vega", relPath), nil)
}
