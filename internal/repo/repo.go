// Package repo locates the repository root and exposes a single handle
// type that every command and internal package operates against, passed
// explicitly through the command layer instead of carrying ambient
// global state.
package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bekucukakin/vega/internal/vcserr"
	"github.com/bekucukakin/vega/utils"
)

// MetaDirName is the name of vega's metadata directory inside a working
// tree, analogous to ".git".
const MetaDirName = ".vega"

// Repository is a handle on an initialized working tree: its root and the
// path to its metadata directory. All internal packages are file-scoped
// operations against a Repository; none hold state beyond one call.
type Repository struct {
	Root string
	Meta string
}

// VegaDir returns the metadata directory path, for callers that prefer the
// raw string (objects/refs/index packages all take this).
func (r *Repository) VegaDir() string { return r.Meta }

// Find searches startDir and its ancestors for a metadata directory and
// returns a handle on the repository it belongs to.
func Find(startDir string) (*Repository, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, vcserr.New(vcserr.IOError, "failed to resolve starting directory", err)
	}
	origin := dir
	for {
		meta := filepath.Join(dir, MetaDirName)
		if utils.FileExists(meta) {
			return &Repository{Root: dir, Meta: meta}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, vcserr.New(vcserr.NotARepo, fmt.Sprintf("not a vega repository (or any parent up to /): %s", origin), nil)
		}
		dir = parent
	}
}

// FindFromCWD is the common entry point for command handlers: discover the
// repository rooted at or above the process's current directory.
func FindFromCWD() (*Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, vcserr.New(vcserr.IOError, "failed to get current directory", err)
	}
	return Find(cwd)
}

// Init creates a new repository at dir: the metadata directory, its
// objects/refs/heads subtrees, and an unborn HEAD pointing at the default
// branch. Fails with AlreadyExists if the metadata directory is already
// present.
func Init(dir, defaultBranch string) (*Repository, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, vcserr.New(vcserr.IOError, "failed to resolve target directory", err)
	}
	meta := filepath.Join(abs, MetaDirName)
	if utils.FileExists(meta) {
		return nil, vcserr.New(vcserr.AlreadyExists, fmt.Sprintf("repository already exists at %s", abs), nil)
	}
	for _, sub := range []string{"objects", "refs/heads", "hooks"} {
		if err := utils.EnsureDirExists(filepath.Join(meta, sub)); err != nil {
			return nil, err
		}
	}
	headContent := fmt.Sprintf("ref: refs/heads/%s\n", defaultBranch)
	if err := utils.WriteFileAtomic(filepath.Join(meta, "HEAD"), []byte(headContent), 0644); err != nil {
		return nil, vcserr.New(vcserr.IOError, "failed to write HEAD", err)
	}
	return &Repository{Root: abs, Meta: meta}, nil
}

// RelPath converts an absolute or cwd-relative filesystem path into a
// repo-relative, forward-slash-normalized path suitable for index and tree
// entries.
func (r *Repository) RelPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", vcserr.New(vcserr.IOError, "failed to resolve path", err)
	}
	rel, err := filepath.Rel(r.Root, abs)
	if err != nil {
		return "", vcserr.New(vcserr.PathNotFound, fmt.Sprintf("path %s is outside the repository", path), err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || len(rel) >= 3 && rel[:3] == "../" {
		return "", vcserr.New(vcserr.PathNotFound, fmt.Sprintf("path %s is outside the repository", path), nil)
	}
	return rel, nil
}

// AbsPath converts a repo-relative path back to an absolute filesystem
// path under the working tree.
func (r *Repository) AbsPath(relPath string) string {
	return filepath.Join(r.Root, filepath.FromSlash(relPath))
}
