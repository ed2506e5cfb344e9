// Package snapshot builds commit objects from the staging area: merging
// the index into HEAD's tree, re-emitting the tree DAG bottom-up, and
// advancing the current ref.
package snapshot

import (
	"sort"
	"strings"

	"github.com/bekucukakin/vega/internal/index"
	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/refs"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/vcserr"
)

// Params collects the inputs to a commit beyond the index/HEAD state
// already resident in the repository.
type Params struct {
	Author    string
	Message   string
	Timestamp int64
	// ExtraParents are additional parent commits beyond HEAD's current
	// commit, used for merge commits (HEAD is always parent 0 when
	// present).
	ExtraParents []string
}

// Commit materializes the effective tree from idx merged over HEAD's tree,
// writes the resulting tree and commit objects, advances the current ref,
// and clears idx (the caller must still persist the cleared index).
//
// If idx is empty and there are no ExtraParents, this is a no-op and
// returns NothingToCommit.
func Commit(r *repo.Repository, idx *index.Index, headHash string, params Params) (commitHash string, err error) {
	if idx.Len() == 0 && len(params.ExtraParents) == 0 {
		return "", vcserr.New(vcserr.NothingToCommit, "nothing to commit", nil)
	}

	headTreeMap, _, err := r.HeadTreeMap()
	if err != nil {
		return "", err
	}

	effective := mergeIndexIntoTree(headTreeMap, idx)

	rootHash, err := BuildTree(r.Meta, effective)
	if err != nil {
		return "", err
	}

	var parents []string
	if headHash != "" {
		parents = append(parents, headHash)
	}
	parents = append(parents, params.ExtraParents...)

	commit := objects.Commit{
		Tree:      rootHash,
		Parents:   parents,
		Author:    params.Author,
		Timestamp: params.Timestamp,
		Message:   params.Message,
	}
	commitHash, err = objects.WriteCommit(r.Meta, commit)
	if err != nil {
		return "", err
	}

	if err := refs.AdvanceCurrentRef(r.Meta, commitHash); err != nil {
		return "", err
	}

	idx.Clear()
	return commitHash, nil
}

// mergeIndexIntoTree overlays idx's staged entries onto headTreeMap: a
// non-empty staged hash overwrites, an empty staged hash removes the key.
func mergeIndexIntoTree(headTreeMap map[string]string, idx *index.Index) map[string]string {
	effective := make(map[string]string, len(headTreeMap))
	for p, h := range headTreeMap {
		effective[p] = h
	}
	for _, e := range idx.Entries() {
		if e.Hash == "" {
			delete(effective, e.Path)
			continue
		}
		effective[e.Path] = e.Hash
	}
	return effective
}

// dirNode accumulates the children of one directory while trees are
// emitted bottom-up.
type dirNode struct {
	files map[string]string // name -> blob hash
	dirs  map[string]string // name -> tree hash, filled in as children are emitted
}

// BuildTree groups effective's entries by directory, emits every tree
// bottom-up (deepest first), and returns the root tree's hash. Every
// ancestor directory, including the root (""), is represented even if it
// ends up empty. Shared by the commit builder and the merge algorithm's
// auto-resolved-tree construction.
func BuildTree(vegaDir string, effective map[string]string) (string, error) {
	nodes := map[string]*dirNode{"": {files: map[string]string{}, dirs: map[string]string{}}}

	ensureDir := func(dir string) *dirNode {
		if n, ok := nodes[dir]; ok {
			return n
		}
		n := &dirNode{files: map[string]string{}, dirs: map[string]string{}}
		nodes[dir] = n
		return n
	}

	// Ensure every ancestor directory of every path exists as a node,
	// including directories that end up with only subtree children.
	for p := range effective {
		dir := parentDir(p)
		for {
			ensureDir(dir)
			if dir == "" {
				break
			}
			dir = parentDir(dir)
		}
	}

	for p, hash := range effective {
		dir := parentDir(p)
		name := baseName(p)
		ensureDir(dir).files[name] = hash
	}

	// Depth of a directory is its slash count plus one (root = 0).
	depthOf := func(d string) int {
		if d == "" {
			return 0
		}
		return strings.Count(d, "/") + 1
	}

	dirs := make([]string, 0, len(nodes))
	for d := range nodes {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool {
		di, dj := depthOf(dirs[i]), depthOf(dirs[j])
		if di != dj {
			return di > dj // deepest first
		}
		return dirs[i] > dirs[j]
	})

	treeHashes := make(map[string]string, len(dirs))
	for _, d := range dirs {
		n := nodes[d]
		entries := make([]objects.TreeEntry, 0, len(n.files)+len(n.dirs))
		for name, hash := range n.files {
			entries = append(entries, objects.TreeEntry{Kind: objects.KindBlob, Hash: hash, Name: name})
		}
		for name, hash := range n.dirs {
			entries = append(entries, objects.TreeEntry{Kind: objects.KindTree, Hash: hash, Name: name})
		}
		hash, err := objects.WriteTree(vegaDir, entries)
		if err != nil {
			return "", err
		}
		treeHashes[d] = hash

		if d != "" {
			parent := parentDir(d)
			ensureDir(parent).dirs[baseName(d)] = hash
		}
	}

	return treeHashes[""], nil
}

func parentDir(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i == -1 {
		return ""
	}
	return p[:i]
}

func baseName(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i == -1 {
		return p
	}
	return p[i+1:]
}
