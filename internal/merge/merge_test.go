package merge

import (
	"os"
	"strings"
	"testing"

	"github.com/bekucukakin/vega/internal/refs"
	"github.com/bekucukakin/vega/internal/vcserr"
)

func TestInProgressAndTargetHashNoMerge(t *testing.T) {
	r := newTestRepo(t)
	if InProgress(r.Meta) {
		t.Error("expected no merge in progress on a fresh repository")
	}
	_, ok, err := TargetHash(r.Meta)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected TargetHash to report false with no MERGE_HEAD present")
	}
}

func TestStartAlreadyUpToDate(t *testing.T) {
	r := newTestRepo(t)
	c1 := commitWith(t, r, map[string]string{"a.txt": "1"}, "")

	result, err := Start(r, c1, c1, "a", 2, "merge")
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !result.AlreadyUpToDate {
		t.Errorf("expected AlreadyUpToDate, got %+v", result)
	}
}

func TestStartFastForward(t *testing.T) {
	r := newTestRepo(t)
	c1 := commitWith(t, r, map[string]string{"a.txt": "1"}, "")
	if err := refs.CreateBranch(r.Meta, "master", c1); err != nil {
		t.Fatal(err)
	}
	if err := refs.SetHEADToRef(r.Meta, refs.BranchRefPath("master")); err != nil {
		t.Fatal(err)
	}
	c2 := commitWith(t, r, map[string]string{"b.txt": "2"}, c1)

	result, err := Start(r, c1, c2, "a", 3, "merge")
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !result.FastForwarded || result.CommitHash != c2 {
		t.Errorf("expected a fast-forward to %s, got %+v", c2, result)
	}
	resolved, ok, err := refs.ResolveHEAD(r.Meta)
	if err != nil || !ok || resolved != c2 {
		t.Errorf("expected HEAD to resolve to %s after fast-forward, got %s (ok=%v err=%v)", c2, resolved, ok, err)
	}
	data, err := os.ReadFile(r.AbsPath("b.txt"))
	if err != nil || string(data) != "2" {
		t.Errorf("expected b.txt to be written into the working tree, got %q (err=%v)", data, err)
	}
}

func TestStartCleanAutoMerge(t *testing.T) {
	r := newTestRepo(t)
	base := commitWith(t, r, map[string]string{"a.txt": "base"}, "")
	ours := commitWith(t, r, map[string]string{"a.txt": "base", "ours.txt": "mine"}, base)
	theirs := commitWith(t, r, map[string]string{"a.txt": "base", "theirs.txt": "yours"}, base)

	if err := refs.CreateBranch(r.Meta, "master", ours); err != nil {
		t.Fatal(err)
	}
	if err := refs.SetHEADToRef(r.Meta, refs.BranchRefPath("master")); err != nil {
		t.Fatal(err)
	}

	result, err := Start(r, ours, theirs, "a", 10, "merge theirs into ours")
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if result.CommitHash == "" || len(result.Conflicted) != 0 {
		t.Errorf("expected a clean merge commit, got %+v", result)
	}

	for path, want := range map[string]string{"ours.txt": "mine", "theirs.txt": "yours", "a.txt": "base"} {
		data, err := os.ReadFile(r.AbsPath(path))
		if err != nil {
			t.Errorf("expected %s to exist after merge: %v", path, err)
			continue
		}
		if string(data) != want {
			t.Errorf("expected %s content %q, got %q", path, want, data)
		}
	}
}

func TestStartConflictingMergeWritesMarkersAndState(t *testing.T) {
	r := newTestRepo(t)
	base := commitWith(t, r, map[string]string{"a.txt": "base"}, "")
	ours := commitWith(t, r, map[string]string{"a.txt": "ours-version"}, base)
	theirs := commitWith(t, r, map[string]string{"a.txt": "theirs-version"}, base)

	if err := refs.CreateBranch(r.Meta, "master", ours); err != nil {
		t.Fatal(err)
	}
	if err := refs.SetHEADToRef(r.Meta, refs.BranchRefPath("master")); err != nil {
		t.Fatal(err)
	}

	result, err := Start(r, ours, theirs, "a", 10, "merge theirs")
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if len(result.Conflicted) != 1 || result.Conflicted[0] != "a.txt" {
		t.Fatalf("expected a.txt to be reported conflicted, got %+v", result)
	}
	if !InProgress(r.Meta) {
		t.Error("expected InProgress() to report true after a conflicting merge")
	}
	target, ok, err := TargetHash(r.Meta)
	if err != nil || !ok || target != theirs {
		t.Errorf("expected MERGE_HEAD to record %s, got %s (ok=%v err=%v)", theirs, target, ok, err)
	}

	data, err := os.ReadFile(r.AbsPath("a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, MarkerOurs) || !strings.Contains(content, MarkerSep) || !strings.Contains(content, MarkerTheirs) {
		t.Errorf("expected conflict markers in a.txt, got %q", content)
	}
	if !strings.Contains(content, "ours-version") || !strings.Contains(content, "theirs-version") {
		t.Errorf("expected both sides' content present in the conflicted file, got %q", content)
	}
}

func TestAbortClearsMergeState(t *testing.T) {
	r := newTestRepo(t)
	base := commitWith(t, r, map[string]string{"a.txt": "base"}, "")
	ours := commitWith(t, r, map[string]string{"a.txt": "ours-version"}, base)
	theirs := commitWith(t, r, map[string]string{"a.txt": "theirs-version"}, base)

	if err := refs.CreateBranch(r.Meta, "master", ours); err != nil {
		t.Fatal(err)
	}
	if err := refs.SetHEADToRef(r.Meta, refs.BranchRefPath("master")); err != nil {
		t.Fatal(err)
	}
	if _, err := Start(r, ours, theirs, "a", 10, "merge"); err != nil {
		t.Fatal(err)
	}
	if err := Abort(r.Meta); err != nil {
		t.Fatalf("Abort() failed: %v", err)
	}
	if InProgress(r.Meta) {
		t.Error("expected InProgress() to report false after Abort()")
	}
	// Aborting again should be a no-op, not an error.
	if err := Abort(r.Meta); err != nil {
		t.Errorf("expected a second Abort() to be harmless, got: %v", err)
	}
}

func TestContinueRejectsRemainingConflicts(t *testing.T) {
	r := newTestRepo(t)
	base := commitWith(t, r, map[string]string{"a.txt": "base"}, "")
	ours := commitWith(t, r, map[string]string{"a.txt": "ours-version"}, base)
	theirs := commitWith(t, r, map[string]string{"a.txt": "theirs-version"}, base)

	if err := refs.CreateBranch(r.Meta, "master", ours); err != nil {
		t.Fatal(err)
	}
	if err := refs.SetHEADToRef(r.Meta, refs.BranchRefPath("master")); err != nil {
		t.Fatal(err)
	}
	if _, err := Start(r, ours, theirs, "a", 10, "merge"); err != nil {
		t.Fatal(err)
	}

	_, err := Continue(r, ours, []string{"a.txt"}, "a", 11)
	kind, ok := vcserr.KindOf(err)
	if !ok || kind != vcserr.ConflictsRemain {
		t.Fatalf("expected ConflictsRemain, got %v", err)
	}
}

func TestContinueCompletesMergeAfterResolution(t *testing.T) {
	r := newTestRepo(t)
	base := commitWith(t, r, map[string]string{"a.txt": "base"}, "")
	ours := commitWith(t, r, map[string]string{"a.txt": "ours-version"}, base)
	theirs := commitWith(t, r, map[string]string{"a.txt": "theirs-version"}, base)

	if err := refs.CreateBranch(r.Meta, "master", ours); err != nil {
		t.Fatal(err)
	}
	if err := refs.SetHEADToRef(r.Meta, refs.BranchRefPath("master")); err != nil {
		t.Fatal(err)
	}
	if _, err := Start(r, ours, theirs, "a", 10, "merge"); err != nil {
		t.Fatal(err)
	}

	// Resolve by hand, as a user editing the conflicted file would.
	if err := os.WriteFile(r.AbsPath("a.txt"), []byte("resolved-version"), 0644); err != nil {
		t.Fatal(err)
	}

	commitHash, err := Continue(r, ours, nil, "a", 11)
	if err != nil {
		t.Fatalf("Continue() failed: %v", err)
	}
	if commitHash == "" {
		t.Fatal("expected a non-empty merge commit hash")
	}
	if InProgress(r.Meta) {
		t.Error("expected merge state to be cleared after Continue()")
	}
}

func TestContinueWithoutMergeInProgressErrors(t *testing.T) {
	r := newTestRepo(t)
	c1 := commitWith(t, r, map[string]string{"a.txt": "1"}, "")

	_, err := Continue(r, c1, nil, "a", 2)
	kind, ok := vcserr.KindOf(err)
	if !ok || kind != vcserr.NoMergeInProgress {
		t.Fatalf("expected NoMergeInProgress, got %v", err)
	}
}
