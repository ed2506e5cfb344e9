package checkout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bekucukakin/vega/internal/index"
	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/refs"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/snapshot"
)

func newTestRepo(t *testing.T) *repo.Repository {
	t.Helper()
	dir, err := os.MkdirTemp("", "vega-checkout-test")
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

func commitFiles(t *testing.T, r *repo.Repository, files map[string]string, parent string) string {
	t.Helper()
	idx := index.New()
	for path, content := range files {
		hash, err := objects.WriteBlob(r.Meta, []byte(content))
		if err != nil {
			t.Fatal(err)
		}
		idx.Set(path, hash)
	}
	hash, err := snapshot.Commit(r, idx, parent, snapshot.Params{Author: "a", Message: "m", Timestamp: 1})
	if err != nil {
		t.Fatal(err)
	}
	return hash
}

func TestSwitchWritesTargetTreeAndRemovesStale(t *testing.T) {
	r := newTestRepo(t)

	first := commitFiles(t, r, map[string]string{"keep.txt": "keep", "remove.txt": "gone soon"}, "")
	if err := refs.CreateBranch(r.Meta, "master", first); err != nil {
		t.Fatal(err)
	}
	if err := refs.SetHEADToRef(r.Meta, refs.BranchRefPath("master")); err != nil {
		t.Fatal(err)
	}
	if err := Switch(r, first, refs.BranchRefPath("master"), nil); err != nil {
		t.Fatalf("Switch() failed: %v", err)
	}

	// Commits overlay the index on HEAD's tree, so dropping remove.txt
	// takes a staged deletion (empty hash).
	idx := index.New()
	idx.Set("remove.txt", "")
	second, err := snapshot.Commit(r, idx, first, snapshot.Params{Author: "a", Message: "m", Timestamp: 2})
	if err != nil {
		t.Fatal(err)
	}

	if err := Switch(r, second, refs.BranchRefPath("master"), nil); err != nil {
		t.Fatalf("Switch() to second commit failed: %v", err)
	}

	if _, err := os.Stat(r.AbsPath("remove.txt")); !os.IsNotExist(err) {
		t.Errorf("expected remove.txt to be deleted after checkout, stat error: %v", err)
	}
	data, err := os.ReadFile(r.AbsPath("keep.txt"))
	if err != nil {
		t.Fatalf("expected keep.txt to still be present: %v", err)
	}
	if string(data) != "keep" {
		t.Errorf("expected keep.txt content %q, got %q", "keep", data)
	}

	branch, ok, err := refs.CurrentBranch(r.Meta)
	if err != nil || !ok || branch != "master" {
		t.Errorf("expected HEAD to remain symbolic to master, got %q (ok=%v err=%v)", branch, ok, err)
	}
}

func TestSwitchRespectsImportantPaths(t *testing.T) {
	r := newTestRepo(t)
	first := commitFiles(t, r, map[string]string{"tracked.txt": "v1"}, "")

	// A file the target tree doesn't know about, marked important (e.g.
	// an ignored file) must survive checkout.
	if err := os.WriteFile(r.AbsPath("ignored.log"), []byte("keep me"), 0644); err != nil {
		t.Fatal(err)
	}

	important := func(relPath string) bool { return relPath == "ignored.log" }
	if err := Switch(r, first, "", important); err != nil {
		t.Fatalf("Switch() failed: %v", err)
	}

	if _, err := os.Stat(r.AbsPath("ignored.log")); err != nil {
		t.Errorf("expected ignored.log to survive checkout, got: %v", err)
	}
}

func TestSwitchDetachedHead(t *testing.T) {
	r := newTestRepo(t)
	first := commitFiles(t, r, map[string]string{"a.txt": "content"}, "")

	if err := Switch(r, first, "", nil); err != nil {
		t.Fatalf("Switch() failed: %v", err)
	}
	if _, ok, err := refs.CurrentBranch(r.Meta); err != nil || ok {
		t.Errorf("expected detached HEAD, got ok=%v err=%v", ok, err)
	}
	resolved, ok, err := refs.ResolveHEAD(r.Meta)
	if err != nil || !ok || resolved != first {
		t.Errorf("expected HEAD to resolve to %s, got %s (ok=%v err=%v)", first, resolved, ok, err)
	}
}

func TestCheckoutFileRestoresFromHead(t *testing.T) {
	r := newTestRepo(t)
	first := commitFiles(t, r, map[string]string{"a.txt": "original"}, "")
	if err := refs.CreateBranch(r.Meta, "master", first); err != nil {
		t.Fatal(err)
	}
	if err := refs.SetHEADToRef(r.Meta, refs.BranchRefPath("master")); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(r.AbsPath("a.txt"), []byte("locally edited"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := CheckoutFile(r, "a.txt"); err != nil {
		t.Fatalf("CheckoutFile() failed: %v", err)
	}
	data, err := os.ReadFile(r.AbsPath("a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original" {
		t.Errorf("expected a.txt restored to %q, got %q", "original", data)
	}
}

func TestCheckoutFileMissingPathErrors(t *testing.T) {
	r := newTestRepo(t)
	first := commitFiles(t, r, map[string]string{"a.txt": "content"}, "")
	if err := refs.CreateBranch(r.Meta, "master", first); err != nil {
		t.Fatal(err)
	}
	if err := refs.SetHEADToRef(r.Meta, refs.BranchRefPath("master")); err != nil {
		t.Fatal(err)
	}
	if err := CheckoutFile(r, "missing.txt"); err == nil {
		t.Fatal("expected an error restoring a path not in HEAD")
	}
}

func TestSwitchCreatesNestedParentDirs(t *testing.T) {
	r := newTestRepo(t)
	first := commitFiles(t, r, map[string]string{"deep/nested/file.txt": "content"}, "")

	if err := Switch(r, first, "", nil); err != nil {
		t.Fatalf("Switch() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(r.Root, "deep", "nested", "file.txt")); err != nil {
		t.Errorf("expected nested file to exist: %v", err)
	}
}
