// Package merge implements ancestor discovery, the fast-forward test, and
// the three-way merge with conflict classification and marker writing.
package merge

import (
	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/repo"
)

// Ancestors returns the set of commit hashes reachable from start by
// following parent edges, inclusive of start, via BFS with a seen set to
// bound work on diamond-shaped histories.
func Ancestors(vegaDir, start string) (map[string]bool, error) {
	seen := map[string]bool{}
	if start == "" {
		return seen, nil
	}
	queue := []string{start}
	seen[start] = true
	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]
		commit, err := objects.ReadCommit(vegaDir, hash)
		if err != nil {
			return nil, err
		}
		for _, p := range commit.Parents {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return seen, nil
}

// orderedAncestors is like Ancestors but also returns the BFS visitation
// order, needed by CommonAncestor to pick a deterministic "first hit".
func orderedAncestors(vegaDir, start string) ([]string, error) {
	var order []string
	if start == "" {
		return order, nil
	}
	seen := map[string]bool{start: true}
	queue := []string{start}
	order = append(order, start)
	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]
		commit, err := objects.ReadCommit(vegaDir, hash)
		if err != nil {
			return nil, err
		}
		for _, p := range commit.Parents {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
				order = append(order, p)
			}
		}
	}
	return order, nil
}

// CommonAncestor returns the first commit in ancestry(a)'s BFS visitation
// order that is also reachable from b. This is a reachable common
// ancestor, not guaranteed to be the lowest common ancestor when history
// has multiple merge bases (undefined by design on criss-cross merges;
// see the single-merge-base guarantee this implementation provides).
func CommonAncestor(vegaDir, a, b string) (string, bool, error) {
	orderA, err := orderedAncestors(vegaDir, a)
	if err != nil {
		return "", false, err
	}
	ancestorsB, err := Ancestors(vegaDir, b)
	if err != nil {
		return "", false, err
	}
	for _, hash := range orderA {
		if ancestorsB[hash] {
			return hash, true, nil
		}
	}
	return "", false, nil
}

// IsAncestor reports whether candidate is in the ancestor set of descendant
// (inclusive: a commit is its own ancestor).
func IsAncestor(vegaDir, candidate, descendant string) (bool, error) {
	set, err := Ancestors(vegaDir, descendant)
	if err != nil {
		return false, err
	}
	return set[candidate], nil
}

// FastForward reports whether current is an ancestor of target, meaning a
// merge of target into current can be satisfied by a plain ref advance.
func FastForward(vegaDir, current, target string) (bool, error) {
	if current == "" {
		return true, nil
	}
	return IsAncestor(vegaDir, current, target)
}

// treeMap flattens a commit's tree, tolerating an unborn/empty commit hash.
func treeMap(r *repo.Repository, commitHash string) (map[string]string, error) {
	if commitHash == "" {
		return map[string]string{}, nil
	}
	commit, err := objects.ReadCommit(r.Meta, commitHash)
	if err != nil {
		return nil, err
	}
	return objects.FlattenTree(r.Meta, commit.Tree)
}
