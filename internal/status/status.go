// Package status implements vega's state classifier: a pure, deterministic
// function that joins the HEAD tree, the index, and the working tree to
// produce a per-path file state.
package status

import (
	"os"
	"sort"
	"strings"

	"github.com/bekucukakin/vega/internal/index"
	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/repo"
)

// FileState is one path's classification.
type FileState int

const (
	Unmodified FileState = iota
	Modified
	Staged
	Untracked
	Deleted
	Conflicted
)

func (s FileState) String() string {
	switch s {
	case Unmodified:
		return "unmodified"
	case Modified:
		return "modified"
	case Staged:
		return "staged"
	case Untracked:
		return "untracked"
	case Deleted:
		return "deleted"
	case Conflicted:
		return "conflicted"
	default:
		return "unknown"
	}
}

// Entry is one path's classification plus whether its working copy still
// differs from what's staged. STAGED is the canonical state; this flag
// covers the "also modified since staging" case instead of a second
// state membership.
type Entry struct {
	Path                       string
	State                      FileState
	WorkingTreeDiffersFromIndex bool
}

// Snapshot is the full classification of a working tree at one instant.
type Snapshot struct {
	Entries []Entry
}

// A file is conflicted iff it contains all three markers, in order.
const (
	markerOurs   = "<<<<<<< HEAD"
	markerSep    = "======="
	markerTheirs = ">>>>>>>"
)

// Classify computes the FileState for every path touched by headTree,
// idx, or workingPaths. It performs no writes and is deterministic: the
// same three inputs always produce the same Snapshot.
func Classify(r *repo.Repository, headTree map[string]string, idx *index.Index, workingPaths []string) (Snapshot, error) {
	working := make(map[string]bool, len(workingPaths))
	for _, p := range workingPaths {
		working[p] = true
	}

	staged := make(map[string]string, idx.Len())
	for _, e := range idx.Entries() {
		staged[e.Path] = e.Hash
	}

	all := make(map[string]bool)
	for p := range headTree {
		all[p] = true
	}
	for p := range staged {
		all[p] = true
	}
	for p := range working {
		all[p] = true
	}

	paths := make([]string, 0, len(all))
	for p := range all {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		headHash, inHead := headTree[p]
		stagedHash, inIndex := staged[p]
		inWork := working[p]

		var wdHash string
		var wdErr error
		if inWork {
			wdHash, wdErr = hashWorkingFile(r, p)
			if wdErr != nil {
				return Snapshot{}, wdErr
			}
		}

		state, diffFlag := classifyOne(inHead, headHash, inIndex, stagedHash, inWork, wdHash)

		if inWork && isConflicted(r, p) {
			state = Conflicted
		}

		entries = append(entries, Entry{Path: p, State: state, WorkingTreeDiffersFromIndex: diffFlag})
	}

	return Snapshot{Entries: entries}, nil
}

func classifyOne(inHead bool, headHash string, inIndex bool, stagedHash string, inWork bool, wdHash string) (FileState, bool) {
	switch {
	case inIndex:
		if stagedHash == "" {
			return Deleted, false
		}
		if !inWork {
			// staged content but file removed from working tree again;
			// still reported as staged, consistent with "staged" being
			// the canonical bucket.
			return Staged, false
		}
		if stagedHash == wdHash {
			if inHead && headHash == stagedHash {
				return Unmodified, false
			}
			return Staged, false
		}
		return Staged, true

	case inHead:
		if !inWork {
			return Deleted, false
		}
		if headHash == wdHash {
			return Unmodified, false
		}
		return Modified, false

	default:
		if inWork {
			return Untracked, false
		}
		return Unmodified, false
	}
}

func hashWorkingFile(r *repo.Repository, relPath string) (string, error) {
	data, err := os.ReadFile(r.AbsPath(relPath))
	if err != nil {
		return "", err
	}
	full := objects.Encode(objects.KindBlob, data)
	return objects.Hash(full), nil
}

func isConflicted(r *repo.Repository, relPath string) bool {
	data, err := os.ReadFile(r.AbsPath(relPath))
	if err != nil {
		return false
	}
	text := string(data)
	iOurs := strings.Index(text, markerOurs)
	if iOurs == -1 {
		return false
	}
	iSep := strings.Index(text[iOurs:], markerSep)
	if iSep == -1 {
		return false
	}
	iSep += iOurs
	iTheirs := strings.Index(text[iSep:], markerTheirs)
	return iTheirs != -1
}

// IsClean reports whether the snapshot has no staged, modified, or
// conflicted paths (deletions count as dirty too); untracked files do not
// count. Checkout and merge use this as their precondition for whether
// switching targets would clobber uncommitted work.
func (s Snapshot) IsClean() bool {
	for _, e := range s.Entries {
		switch e.State {
		case Staged, Modified, Deleted, Conflicted:
			return false
		}
	}
	return true
}

// Paths returns every path classified as state.
func (s Snapshot) Paths(state FileState) []string {
	var out []string
	for _, e := range s.Entries {
		if e.State == state {
			out = append(out, e.Path)
		}
	}
	return out
}
