package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bekucukakin/vega/internal/index"
	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/validate"
	"github.com/bekucukakin/vega/internal/vcserr"
	"github.com/spf13/cobra"
)

// AddHandler handles `vega add <path>...`, accepting "." as a shorthand
// for the whole working tree.
func AddHandler(r *repo.Repository, args []string) error {
	if err := validate.FileOperations(r); err != nil {
		return err
	}
	idx, err := index.Load(r.Meta)
	if err != nil {
		return err
	}

	headTree, _, err := r.HeadTreeMap()
	if err != nil {
		return err
	}

	for _, arg := range args {
		if arg == "." {
			ignoreSet, err := repo.LoadIgnore(r.Root)
			if err != nil {
				return err
			}
			paths, err := r.Walk(ignoreSet)
			if err != nil {
				return err
			}
			for _, p := range paths {
				if err := addPath(r, idx, headTree, p); err != nil {
					return err
				}
			}
			continue
		}

		abs, err := filepath.Abs(arg)
		if err != nil {
			return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to resolve path %q", arg), err)
		}
		relPath, err := r.RelPath(abs)
		if err != nil {
			return err
		}

		existsOnDisk := fileExists(abs)
		_, trackedInHead := headTree[relPath]
		_, alreadyStaged := idx.Get(relPath)
		if err := validate.FileAdd(existsOnDisk, trackedInHead, alreadyStaged, relPath); err != nil {
			return err
		}

		if !existsOnDisk {
			// Staged deletion: the path exists in HEAD or the index but
			// not on disk.
			idx.Set(relPath, "")
			continue
		}

		info, err := os.Stat(abs)
		if err != nil {
			return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to stat %q", arg), err)
		}
		if info.IsDir() {
			ignoreSet, err := repo.LoadIgnore(r.Root)
			if err != nil {
				return err
			}
			walkErr := filepath.Walk(abs, func(path string, fi os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if fi.IsDir() {
					return nil
				}
				rel, err := r.RelPath(path)
				if err != nil {
					return err
				}
				if ignoreSet.Matches(rel) {
					return nil
				}
				return addPath(r, idx, headTree, rel)
			})
			if walkErr != nil {
				return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to walk %q", arg), walkErr)
			}
			continue
		}

		if err := addPath(r, idx, headTree, relPath); err != nil {
			return err
		}
	}

	return idx.Save(r.Meta)
}

func addPath(r *repo.Repository, idx *index.Index, headTree map[string]string, relPath string) error {
	abs := r.AbsPath(relPath)
	if !fileExists(abs) {
		idx.Set(relPath, "")
		return nil
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return vcserr.New(vcserr.IOError, fmt.Sprintf("failed to read %q", relPath), err)
	}
	hash, err := objects.WriteBlob(r.Meta, content)
	if err != nil {
		return err
	}
	idx.Set(relPath, hash)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func init() {
	addCmd := NewRepoCommand("add <path>|.", "Add file contents to the index", AddHandler)
	addCmd.Args = cobra.MinimumNArgs(1)
	rootCmd.AddCommand(addCmd)
}
