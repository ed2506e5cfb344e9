package resolve

import (
	"os"
	"testing"

	"github.com/bekucukakin/vega/internal/index"
	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/refs"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/snapshot"
)

func newTestRepo(t *testing.T) *repo.Repository {
	t.Helper()
	dir, err := os.MkdirTemp("", "vega-resolve-test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	r, err := repo.Init(dir, "master")
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func firstCommit(t *testing.T, r *repo.Repository) string {
	t.Helper()
	hash, err := objects.WriteBlob(r.Meta, []byte("content"))
	if err != nil {
		t.Fatal(err)
	}
	idx := index.New()
	idx.Set("a.txt", hash)
	commitHash, err := snapshot.Commit(r, idx, "", snapshot.Params{Author: "a", Message: "m", Timestamp: 1})
	if err != nil {
		t.Fatal(err)
	}
	return commitHash
}

func TestTargetResolvesHEAD(t *testing.T) {
	r := newTestRepo(t)
	commitHash := firstCommit(t, r)
	if err := refs.CreateBranch(r.Meta, "master", commitHash); err != nil {
		t.Fatal(err)
	}
	if err := refs.SetHEADToRef(r.Meta, refs.BranchRefPath("master")); err != nil {
		t.Fatal(err)
	}

	hash, branchRef, err := Target(r, "HEAD")
	if err != nil {
		t.Fatalf("Target() failed: %v", err)
	}
	if hash != commitHash {
		t.Errorf("expected %s, got %s", commitHash, hash)
	}
	if branchRef != "" {
		t.Errorf("expected no branch ref when resolving HEAD literally, got %q", branchRef)
	}
}

func TestTargetResolvesBranchName(t *testing.T) {
	r := newTestRepo(t)
	commitHash := firstCommit(t, r)
	if err := refs.CreateBranch(r.Meta, "feature", commitHash); err != nil {
		t.Fatal(err)
	}

	hash, branchRef, err := Target(r, "feature")
	if err != nil {
		t.Fatalf("Target() failed: %v", err)
	}
	if hash != commitHash {
		t.Errorf("expected %s, got %s", commitHash, hash)
	}
	if branchRef != refs.BranchRefPath("feature") {
		t.Errorf("expected branch ref %s, got %s", refs.BranchRefPath("feature"), branchRef)
	}
}

func TestTargetResolvesShortHash(t *testing.T) {
	r := newTestRepo(t)
	commitHash := firstCommit(t, r)

	hash, branchRef, err := Target(r, commitHash[:8])
	if err != nil {
		t.Fatalf("Target() failed: %v", err)
	}
	if hash != commitHash {
		t.Errorf("expected %s, got %s", commitHash, hash)
	}
	if branchRef != "" {
		t.Errorf("expected no branch ref for a raw hash, got %q", branchRef)
	}
}

func TestTargetRejectsUnknownName(t *testing.T) {
	r := newTestRepo(t)
	if _, _, err := Target(r, "does-not-exist"); err == nil {
		t.Fatal("expected an error resolving an unknown branch/hash")
	}
}

func TestTargetRejectsHEADBeforeFirstCommit(t *testing.T) {
	r := newTestRepo(t)
	if _, _, err := Target(r, "HEAD"); err == nil {
		t.Fatal("expected an error resolving HEAD before the first commit")
	}
}
