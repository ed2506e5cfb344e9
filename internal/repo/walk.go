package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bekucukakin/vega/internal/vcserr"
)

// Walk enumerates every trackable file under r.Root: every regular file not
// excluded by the metadata directory or the ignore set. Paths are returned
// repo-relative, forward-slash-normalized.
func (r *Repository) Walk(ignore *IgnoreSet) ([]string, error) {
	var paths []string
	err := filepath.Walk(r.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == r.Root {
			return nil
		}
		rel, relErr := r.RelPath(path)
		if relErr != nil {
			return relErr
		}
		if info.IsDir() {
			if ignore.Matches(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if ignore.Matches(rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, vcserr.New(vcserr.IOError, fmt.Sprintf("failed to walk working tree at %s", r.Root), err)
	}
	return paths, nil
}
