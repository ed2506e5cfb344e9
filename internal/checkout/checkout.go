// Package checkout implements vega's checkout engine: switching HEAD to a
// commit and rewriting the working tree to match it without clobbering
// uncommitted work.
package checkout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/refs"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/vcserr"
)

// Switch checks out target (resolved by the caller to a commit hash) and
// makes HEAD symbolic to branchRef if non-empty, or detached otherwise.
// important reports working-tree paths that must never be deleted even if
// absent from the target tree (ignored files, protected prefixes).
func Switch(r *repo.Repository, commitHash string, branchRef string, important func(relPath string) bool) error {
	targetTree, err := treeMapFor(r, commitHash)
	if err != nil {
		return err
	}

	ignoreSet, err := repo.LoadIgnore(r.Root)
	if err != nil {
		return err
	}
	currentPaths, err := r.Walk(ignoreSet)
	if err != nil {
		return err
	}

	for _, p := range currentPaths {
		if _, inTarget := targetTree[p]; inTarget {
			continue
		}
		if important != nil && important(p) {
			continue
		}
		if ignoreSet.Matches(p) {
			continue
		}
		if err := os.Remove(r.AbsPath(p)); err != nil && !os.IsNotExist(err) {
			return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to remove %s", p), err)
		}
	}

	for p, hash := range targetTree {
		content, err := objects.ReadBlob(r.Meta, hash)
		if err != nil {
			return err
		}
		abs := r.AbsPath(p)
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to create parent directory for %s", p), err)
		}
		if err := os.WriteFile(abs, content, 0644); err != nil {
			return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to write %s", p), err)
		}
	}

	if branchRef != "" {
		return refs.SetHEADToRef(r.Meta, branchRef)
	}
	return refs.SetHEADDetached(r.Meta, commitHash)
}

// CheckoutFile restores a single tracked path from HEAD without moving
// HEAD.
func CheckoutFile(r *repo.Repository, relPath string) error {
	treeMap, _, err := r.HeadTreeMap()
	if err != nil {
		return err
	}
	hash, ok := treeMap[relPath]
	if !ok {
		return vcserr.New(vcserr.PathNotFound, fmt.Sprintf("path %q not found in HEAD", relPath), nil)
	}
	content, err := objects.ReadBlob(r.Meta, hash)
	if err != nil {
		return err
	}
	abs := r.AbsPath(relPath)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to create parent directory for %s", relPath), err)
	}
	if err := os.WriteFile(abs, content, 0644); err != nil {
		return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to write %s", relPath), err)
	}
	return nil
}

func treeMapFor(r *repo.Repository, commitHash string) (map[string]string, error) {
	commit, err := objects.ReadCommit(r.Meta, commitHash)
	if err != nil {
		return nil, err
	}
	return objects.FlattenTree(r.Meta, commit.Tree)
}
