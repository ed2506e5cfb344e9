package merge

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/refs"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/snapshot"
	"github.com/bekucukakin/vega/internal/vcserr"
)

const (
	mergeHeadFile = "MERGE_HEAD"
	mergeMsgFile  = "MERGE_MSG"
)

// InProgress reports whether a merge is currently pending resolution.
func InProgress(vegaDir string) bool {
	_, err := os.Stat(filepath.Join(vegaDir, mergeHeadFile))
	return err == nil
}

// TargetHash returns the commit hash recorded in MERGE_HEAD, if a merge is
// in progress.
func TargetHash(vegaDir string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(vegaDir, mergeHeadFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, vcserr.New(vcserr.IOError, "failed to read MERGE_HEAD", err)
	}
	return trimNewline(data), true, nil
}

func trimNewline(b []byte) string {
	s := string(b)
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// Result summarizes the outcome of attempting a merge.
type Result struct {
	FastForwarded bool
	AlreadyUpToDate bool
	CommitHash    string // non-empty only for a completed (fast-forward or auto) merge
	Conflicted    []string
}

// Start attempts to merge targetHash into the current branch. current is
// the current HEAD commit hash (""  for unborn). On a clean fast-forward
// or auto-mergeable merge it completes the merge and returns the new
// commit/ref state; on conflicts it persists MERGE_HEAD/MERGE_MSG and
// writes conflict markers into the working tree, leaving completion to a
// later `merge --continue`.
func Start(r *repo.Repository, current, targetHash string, author string, timestamp int64, defaultMsg string) (Result, error) {
	ff, err := FastForward(r.Meta, current, targetHash)
	if err != nil {
		return Result{}, err
	}
	if ff {
		if current == targetHash {
			return Result{AlreadyUpToDate: true}, nil
		}
		if err := refs.AdvanceCurrentRef(r.Meta, targetHash); err != nil {
			return Result{}, err
		}
		if err := restoreWorkingTree(r, targetHash); err != nil {
			return Result{}, err
		}
		return Result{FastForwarded: true, CommitHash: targetHash}, nil
	}

	ancestorHash, _, err := CommonAncestor(r.Meta, current, targetHash)
	if err != nil {
		return Result{}, err
	}

	ancestorTree, err := treeMap(r, ancestorHash)
	if err != nil {
		return Result{}, err
	}
	oursTree, err := treeMap(r, current)
	if err != nil {
		return Result{}, err
	}
	theirsTree, err := treeMap(r, targetHash)
	if err != nil {
		return Result{}, err
	}

	results := ThreeWay(ancestorTree, oursTree, theirsTree)

	var conflicted []string
	resolved := make(map[string]string)
	for _, res := range results {
		if res.Outcome.IsConflict() {
			conflicted = append(conflicted, res.Path)
			continue
		}
		if res.Outcome == DeletionAccepted {
			continue
		}
		resolved[res.Path] = res.Resolved
	}

	if len(conflicted) > 0 {
		if err := writeMergeState(r.Meta, targetHash, defaultMsg); err != nil {
			return Result{}, err
		}
		for _, res := range results {
			if !res.Outcome.IsConflict() {
				continue
			}
			if err := writeConflictMarkers(r, res, oursTree, theirsTree); err != nil {
				return Result{}, err
			}
		}
		return Result{Conflicted: conflicted}, nil
	}

	rootHash, err := snapshot.BuildTree(r.Meta, resolved)
	if err != nil {
		return Result{}, err
	}
	commit := objects.Commit{
		Tree:      rootHash,
		Parents:   []string{current, targetHash},
		Author:    author,
		Timestamp: timestamp,
		Message:   defaultMsg,
	}
	commitHash, err := objects.WriteCommit(r.Meta, commit)
	if err != nil {
		return Result{}, err
	}
	if err := refs.AdvanceCurrentRef(r.Meta, commitHash); err != nil {
		return Result{}, err
	}
	if err := restoreWorkingTree(r, commitHash); err != nil {
		return Result{}, err
	}
	return Result{CommitHash: commitHash}, nil
}

func writeMergeState(vegaDir, targetHash, message string) error {
	if err := writeAtomic(filepath.Join(vegaDir, mergeHeadFile), targetHash+"\n"); err != nil {
		return err
	}
	return writeAtomic(filepath.Join(vegaDir, mergeMsgFile), message+"\n")
}

func writeAtomic(path, content string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to write %s", filepath.Base(path)), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to finalize %s", filepath.Base(path)), err)
	}
	return nil
}

const (
	MarkerOurs   = "<<<<<<< HEAD"
	MarkerSep    = "======="
	MarkerTheirs = ">>>>>>>"
)

func writeConflictMarkers(r *repo.Repository, res PathResult, oursTree, theirsTree map[string]string) error {
	var ours, theirs []byte
	if h, ok := oursTree[res.Path]; ok {
		content, err := objects.ReadBlob(r.Meta, h)
		if err != nil {
			return err
		}
		ours = content
	}
	if h, ok := theirsTree[res.Path]; ok {
		content, err := objects.ReadBlob(r.Meta, h)
		if err != nil {
			return err
		}
		theirs = content
	}

	abs := r.AbsPath(res.Path)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to create parent directory for %s", res.Path), err)
	}

	var body []byte
	body = append(body, MarkerOurs+"\n"...)
	body = append(body, ours...)
	if len(ours) > 0 && ours[len(ours)-1] != '\n' {
		body = append(body, '\n')
	}
	body = append(body, MarkerSep+"\n"...)
	body = append(body, theirs...)
	if len(theirs) > 0 && theirs[len(theirs)-1] != '\n' {
		body = append(body, '\n')
	}
	body = append(body, fmt.Sprintf("%s %s\n", MarkerTheirs, res.Path)...)

	if err := os.WriteFile(abs, body, 0644); err != nil {
		return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to write conflict markers for %s", res.Path), err)
	}
	return nil
}

func restoreWorkingTree(r *repo.Repository, commitHash string) error {
	treeMap, err := treeMap(r, commitHash)
	if err != nil {
		return err
	}
	for p, hash := range treeMap {
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
	return nil
}

// Abort deletes MERGE_HEAD and MERGE_MSG without touching the working
// tree (the user may have already edited conflicted files).
func Abort(vegaDir string) error {
	for _, f := range []string{mergeHeadFile, mergeMsgFile} {
		path := filepath.Join(vegaDir, f)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to remove %s", f), err)
		}
	}
	return nil
}

// Continue completes an in-progress merge once no working-tree file still
// carries conflict markers, creating the merge commit with parents
// [current, target].
func Continue(r *repo.Repository, current string, conflictedNow []string, author string, timestamp int64) (string, error) {
	if len(conflictedNow) > 0 {
		return "", vcserr.New(vcserr.ConflictsRemain, fmt.Sprintf("%d path(s) still contain conflict markers", len(conflictedNow)), nil)
	}
	targetHash, ok, err := TargetHash(r.Meta)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", vcserr.New(vcserr.NoMergeInProgress, "no merge in progress", nil)
	}

	message, err := mergeMessage(r.Meta)
	if err != nil {
		return "", err
	}

	// Rebuild the effective tree: conflicted paths take the working tree's
	// current (now-resolved) content; every other path takes its three-way
	// result.
	oursTree, err := treeMap(r, current)
	if err != nil {
		return "", err
	}
	theirsTree, err := treeMap(r, targetHash)
	if err != nil {
		return "", err
	}
	ancestorHash, _, err := CommonAncestor(r.Meta, current, targetHash)
	if err != nil {
		return "", err
	}
	ancestorTree, err := treeMap(r, ancestorHash)
	if err != nil {
		return "", err
	}

	resolved := make(map[string]string)
	for _, res := range ThreeWay(ancestorTree, oursTree, theirsTree) {
		if res.Outcome == DeletionAccepted {
			continue
		}
		if res.Outcome.IsConflict() {
			hash, err := hashWorkingFile(r, res.Path)
			if err != nil {
				return "", err
			}
			resolved[res.Path] = hash
			continue
		}
		if res.Resolved != "" {
			resolved[res.Path] = res.Resolved
		}
	}

	rootHash, err := snapshot.BuildTree(r.Meta, resolved)
	if err != nil {
		return "", err
	}
	commit := objects.Commit{
		Tree:      rootHash,
		Parents:   []string{current, targetHash},
		Author:    author,
		Timestamp: timestamp,
		Message:   message,
	}
	commitHash, err := objects.WriteCommit(r.Meta, commit)
	if err != nil {
		return "", err
	}
	if err := refs.AdvanceCurrentRef(r.Meta, commitHash); err != nil {
		return "", err
	}
	if err := Abort(r.Meta); err != nil {
		return "", err
	}
	return commitHash, nil
}

func mergeMessage(vegaDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(vegaDir, mergeMsgFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "Merge commit", nil
		}
		return "", vcserr.New(vcserr.IOError, "failed to read MERGE_MSG", err)
	}
	return trimNewline(data), nil
}

func hashWorkingFile(r *repo.Repository, relPath string) (string, error) {
	data, err := os.ReadFile(r.AbsPath(relPath))
	if err != nil {
		return "", vcserr.New(vcserr.IOError, fmt.Sprintf("failed to read %s", relPath), err)
	}
	return objects.Write(r.Meta, objects.KindBlob, data)
}
