// Package refs reads and writes vega's reference store: the HEAD pointer
// (symbolic or detached) and branch tips under refs/heads.
package refs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bekucukakin/vega/internal/vcserr"
	"github.com/bekucukakin/vega/utils"
)

const (
	HeadFile    = "HEAD"
	HeadsDir    = "refs/heads"
	symbolicPfx = "ref: "
)

// HeadsPath returns the path of the branch ref file for name.
func HeadsPath(vegaDir, name string) string {
	return filepath.Join(vegaDir, HeadsDir, name)
}

// refPathFor turns a ref path like "refs/heads/master" into the full
// on-disk path, used for the symbolic target stored inside HEAD.
func refPathFor(vegaDir, refpath string) string {
	return filepath.Join(vegaDir, filepath.FromSlash(refpath))
}

// ReadRef returns the trimmed content of the ref file at refpath (relative
// to vegaDir, forward-slash form e.g. "refs/heads/master"), or "" with
// ok=false if the ref does not exist yet.
func ReadRef(vegaDir, refpath string) (hash string, ok bool, err error) {
	data, err := os.ReadFile(refPathFor(vegaDir, refpath))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, vcserr.New(vcserr.IOError, fmt.Sprintf("failed to read ref %s", refpath), err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

// UpdateRef writes hash to the ref file at refpath, creating parent
// directories, via atomic write-temp-then-rename.
func UpdateRef(vegaDir, refpath, hash string) error {
	path := refPathFor(vegaDir, refpath)
	if err := utils.WriteFileAtomic(path, []byte(hash+"\n"), 0644); err != nil {
		return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to update ref %s", refpath), err)
	}
	return nil
}

// DeleteRef removes the ref file at refpath, if present.
func DeleteRef(vegaDir, refpath string) error {
	path := refPathFor(vegaDir, refpath)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to delete ref %s", refpath), err)
	}
	return nil
}

// BranchRefPath returns the ref path (forward-slash form, relative to
// vegaDir) for branch name.
func BranchRefPath(name string) string {
	return HeadsDir + "/" + name
}

// ReadHEAD reads the HEAD file's raw content, distinguishing symbolic from
// detached form. If HEAD does not exist at all, it returns a MissingRef
// error.
func ReadHEAD(vegaDir string) (symbolic bool, refpath string, hash string, err error) {
	data, err := os.ReadFile(filepath.Join(vegaDir, HeadFile))
	if err != nil {
		if os.IsNotExist(err) {
			return false, "", "", vcserr.New(vcserr.MissingRef, "HEAD is missing", nil)
		}
		return false, "", "", vcserr.New(vcserr.IOError, "failed to read HEAD", err)
	}
	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, symbolicPfx) {
		return true, strings.TrimSpace(strings.TrimPrefix(text, symbolicPfx)), "", nil
	}
	return false, "", text, nil
}

// ResolveHEAD returns the commit hash HEAD currently points to (following
// one symbolic level), or ok=false for an unborn branch.
func ResolveHEAD(vegaDir string) (hash string, ok bool, err error) {
	symbolic, refpath, detached, err := ReadHEAD(vegaDir)
	if err != nil {
		return "", false, err
	}
	if !symbolic {
		if detached == "" {
			return "", false, nil
		}
		return detached, true, nil
	}
	return ReadRef(vegaDir, refpath)
}

// CurrentBranch returns the branch name HEAD symbolically points to, or
// ok=false if HEAD is detached.
func CurrentBranch(vegaDir string) (name string, ok bool, err error) {
	symbolic, refpath, _, err := ReadHEAD(vegaDir)
	if err != nil {
		return "", false, err
	}
	if !symbolic {
		return "", false, nil
	}
	return strings.TrimPrefix(refpath, HeadsDir+"/"), true, nil
}

// SetHEADToRef makes HEAD symbolic, pointing at refpath (e.g.
// "refs/heads/feature").
func SetHEADToRef(vegaDir, refpath string) error {
	path := filepath.Join(vegaDir, HeadFile)
	if err := utils.WriteFileAtomic(path, []byte(symbolicPfx+refpath+"\n"), 0644); err != nil {
		return vcserr.New(vcserr.IOError, "failed to update HEAD", err)
	}
	return nil
}

// SetHEADDetached makes HEAD point directly at hash.
func SetHEADDetached(vegaDir, hash string) error {
	path := filepath.Join(vegaDir, HeadFile)
	if err := utils.WriteFileAtomic(path, []byte(hash+"\n"), 0644); err != nil {
		return vcserr.New(vcserr.IOError, "failed to update HEAD", err)
	}
	return nil
}

// AdvanceCurrentRef updates whatever HEAD currently points to (the current
// branch if symbolic, or HEAD itself if detached) to hash.
func AdvanceCurrentRef(vegaDir, hash string) error {
	symbolic, refpath, _, err := ReadHEAD(vegaDir)
	if err != nil {
		return err
	}
	if symbolic {
		return UpdateRef(vegaDir, refpath, hash)
	}
	return SetHEADDetached(vegaDir, hash)
}

// BranchExists reports whether a branch ref with the given name exists.
func BranchExists(vegaDir, name string) bool {
	return utils.FileExists(HeadsPath(vegaDir, name))
}

// ListBranches returns the names of all branches under refs/heads.
func ListBranches(vegaDir string) ([]string, error) {
	dir := filepath.Join(vegaDir, HeadsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, vcserr.New(vcserr.IOError, "failed to list branches", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// CreateBranch writes a new branch ref pointing at hash. Callers are
// expected to have validated the name and checked it doesn't already exist.
func CreateBranch(vegaDir, name, hash string) error {
	return UpdateRef(vegaDir, BranchRefPath(name), hash)
}
