package repo

import (
	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/refs"
)

// HeadCommit returns the commit hash HEAD currently resolves to, or
// ok=false for an unborn branch.
func (r *Repository) HeadCommit() (hash string, ok bool, err error) {
	return refs.ResolveHEAD(r.Meta)
}

// HeadTreeMap returns the flattened path→hash map of HEAD's tree (empty if
// HEAD is unborn), alongside the resolved HEAD commit hash.
func (r *Repository) HeadTreeMap() (treeMap map[string]string, headHash string, err error) {
	headHash, ok, err := r.HeadCommit()
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return map[string]string{}, "", nil
	}
	commit, err := objects.ReadCommit(r.Meta, headHash)
	if err != nil {
		return nil, "", err
	}
	treeMap, err = objects.FlattenTree(r.Meta, commit.Tree)
	if err != nil {
		return nil, "", err
	}
	return treeMap, headHash, nil
}
