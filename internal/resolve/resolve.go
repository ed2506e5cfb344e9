// Package resolve turns the user-facing target strings accepted by
// checkout ("HEAD", a branch name, a full or short commit hash)
// into concrete commit hashes.
package resolve

import (
	"fmt"

	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/refs"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/vcserr"
)

// Target resolves target to a commit hash. If target names an existing
// branch, branchRef is that branch's ref path (forward-slash form) so
// callers can make HEAD symbolic to it; otherwise branchRef is "".
func Target(r *repo.Repository, target string) (commitHash string, branchRef string, err error) {
	if target == "HEAD" {
		hash, ok, err := r.HeadCommit()
		if err != nil {
			return "", "", err
		}
		if !ok {
			return "", "", vcserr.New(vcserr.MissingRef, "HEAD does not point to a commit yet", nil)
		}
		return hash, "", nil
	}

	if refs.BranchExists(r.Meta, target) {
		hash, ok, err := refs.ReadRef(r.Meta, refs.BranchRefPath(target))
		if err != nil {
			return "", "", err
		}
		if !ok || hash == "" {
			return "", "", vcserr.New(vcserr.MissingRef, fmt.Sprintf("branch %q has no commits", target), nil)
		}
		return hash, refs.BranchRefPath(target), nil
	}

	hash, err := objects.ResolveShortHash(r.Meta, target)
	if err != nil {
		return "", "", err
	}
	if _, derr := objects.ReadCommit(r.Meta, hash); derr != nil {
		return "", "", vcserr.New(vcserr.MissingRef, fmt.Sprintf("%q is not a commit", target), derr)
	}
	return hash, "", nil
}
