package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bekucukakin/vega/internal/index"
	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/repo"
)

func newTestRepo(t *testing.T) *repo.Repository {
	t.Helper()
	dir, err := os.MkdirTemp("", "vega-status-test")
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

func writeWorkingFile(t *testing.T, r *repo.Repository, relPath, content string) {
	t.Helper()
	abs := r.AbsPath(relPath)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func stateOf(t *testing.T, snap Snapshot, path string) FileState {
	t.Helper()
	for _, e := range snap.Entries {
		if e.Path == path {
			return e.State
		}
	}
	t.Fatalf("no entry for path %q in snapshot", path)
	return Unmodified
}

func TestClassifyUntracked(t *testing.T) {
	r := newTestRepo(t)
	writeWorkingFile(t, r, "new.txt", "hello")

	snap, err := Classify(r, map[string]string{}, index.New(), []string{"new.txt"})
	if err != nil {
		t.Fatalf("Classify() failed: %v", err)
	}
	if got := stateOf(t, snap, "new.txt"); got != Untracked {
		t.Errorf("expected Untracked, got %v", got)
	}
}

func TestClassifyStagedNewFile(t *testing.T) {
	r := newTestRepo(t)
	writeWorkingFile(t, r, "new.txt", "hello")
	hash, err := objects.WriteBlob(r.Meta, []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	idx := index.New()
	idx.Set("new.txt", hash)

	snap, err := Classify(r, map[string]string{}, idx, []string{"new.txt"})
	if err != nil {
		t.Fatal(err)
	}
	entry := snap.Entries[0]
	if entry.State != Staged {
		t.Errorf("expected Staged, got %v", entry.State)
	}
	if entry.WorkingTreeDiffersFromIndex {
		t.Error("expected WorkingTreeDiffersFromIndex=false when working tree matches the staged hash")
	}
}

func TestClassifyStagedThenModifiedAgain(t *testing.T) {
	r := newTestRepo(t)
	stagedHash, err := objects.WriteBlob(r.Meta, []byte("staged content"))
	if err != nil {
		t.Fatal(err)
	}
	idx := index.New()
	idx.Set("f.txt", stagedHash)
	writeWorkingFile(t, r, "f.txt", "changed again after staging")

	snap, err := Classify(r, map[string]string{}, idx, []string{"f.txt"})
	if err != nil {
		t.Fatal(err)
	}
	entry := snap.Entries[0]
	if entry.State != Staged {
		t.Errorf("expected the canonical state to remain Staged, got %v", entry.State)
	}
	if !entry.WorkingTreeDiffersFromIndex {
		t.Error("expected WorkingTreeDiffersFromIndex=true when working content no longer matches the staged hash")
	}
}

func TestClassifyUnmodifiedAndModified(t *testing.T) {
	r := newTestRepo(t)
	committedHash, err := objects.WriteBlob(r.Meta, []byte("original"))
	if err != nil {
		t.Fatal(err)
	}
	headTree := map[string]string{"unchanged.txt": committedHash, "changed.txt": committedHash}
	writeWorkingFile(t, r, "unchanged.txt", "original")
	writeWorkingFile(t, r, "changed.txt", "edited")

	snap, err := Classify(r, headTree, index.New(), []string{"unchanged.txt", "changed.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if got := stateOf(t, snap, "unchanged.txt"); got != Unmodified {
		t.Errorf("expected Unmodified, got %v", got)
	}
	if got := stateOf(t, snap, "changed.txt"); got != Modified {
		t.Errorf("expected Modified, got %v", got)
	}
}

func TestClassifyDeletedFromWorkingTree(t *testing.T) {
	r := newTestRepo(t)
	committedHash, err := objects.WriteBlob(r.Meta, []byte("content"))
	if err != nil {
		t.Fatal(err)
	}
	headTree := map[string]string{"gone.txt": committedHash}

	snap, err := Classify(r, headTree, index.New(), []string{})
	if err != nil {
		t.Fatal(err)
	}
	if got := stateOf(t, snap, "gone.txt"); got != Deleted {
		t.Errorf("expected Deleted, got %v", got)
	}
}

func TestClassifyStagedDeletion(t *testing.T) {
	r := newTestRepo(t)
	committedHash, err := objects.WriteBlob(r.Meta, []byte("content"))
	if err != nil {
		t.Fatal(err)
	}
	headTree := map[string]string{"gone.txt": committedHash}
	idx := index.New()
	idx.Set("gone.txt", "")

	snap, err := Classify(r, headTree, idx, []string{})
	if err != nil {
		t.Fatal(err)
	}
	if got := stateOf(t, snap, "gone.txt"); got != Deleted {
		t.Errorf("expected Deleted for a staged removal, got %v", got)
	}
}

func TestClassifyConflictedDetectsAllThreeMarkers(t *testing.T) {
	r := newTestRepo(t)
	content := "line one\n<<<<<<< HEAD\nours\n=======\ntheirs\n>>>>>>> feature\nline two\n"
	writeWorkingFile(t, r, "conflict.txt", content)
	committedHash, err := objects.WriteBlob(r.Meta, []byte("original"))
	if err != nil {
		t.Fatal(err)
	}
	headTree := map[string]string{"conflict.txt": committedHash}

	snap, err := Classify(r, headTree, index.New(), []string{"conflict.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if got := stateOf(t, snap, "conflict.txt"); got != Conflicted {
		t.Errorf("expected Conflicted, got %v", got)
	}
}

func TestIsCleanAndPaths(t *testing.T) {
	clean := Snapshot{Entries: []Entry{
		{Path: "a.txt", State: Unmodified},
		{Path: "b.txt", State: Untracked},
	}}
	if !clean.IsClean() {
		t.Error("expected a snapshot with only Unmodified/Untracked entries to be clean")
	}

	dirty := Snapshot{Entries: []Entry{
		{Path: "a.txt", State: Modified},
	}}
	if dirty.IsClean() {
		t.Error("expected a snapshot with a Modified entry to be dirty")
	}

	mixed := Snapshot{Entries: []Entry{
		{Path: "a.txt", State: Staged},
		{Path: "b.txt", State: Staged},
		{Path: "c.txt", State: Untracked},
	}}
	if got := mixed.Paths(Staged); len(got) != 2 {
		t.Errorf("expected 2 staged paths, got %v", got)
	}
}
