// Package index persists vega's staging area: a flat, order-preserving
// path→hash map where an empty hash means "staged deletion".
package index

import (
	"fmt"
	"os"
	"strings"

	"github.com/bekucukakin/vega/internal/vcserr"
	"github.com/bekucukakin/vega/utils"
)

const FileName = "index"

// Entry is one staged path, in the order it was first added.
type Entry struct {
	Path string
	Hash string // empty means staged deletion
}

// Index is the in-memory staging map. Order reflects insertion order so
// rewrites are deterministic and diff-friendly.
type Index struct {
	order []string
	byPath map[string]string
}

// New returns an empty index.
func New() *Index {
	return &Index{byPath: make(map[string]string)}
}

// Load reads the index file at path, tolerating a missing file as empty.
func Load(vegaDir string) (*Index, error) {
	idx := New()
	data, err := os.ReadFile(indexPath(vegaDir))
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, vcserr.New(vcserr.IOError, "failed to read index", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq == -1 {
			return nil, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("malformed index line %q", line), nil)
		}
		path, hash := line[:eq], line[eq+1:]
		idx.Set(path, hash)
	}
	return idx, nil
}

func indexPath(vegaDir string) string {
	return vegaDir + string(os.PathSeparator) + FileName
}

// Set stages path with hash (empty for deletion), preserving the path's
// original position if it was already present.
func (idx *Index) Set(path, hash string) {
	if _, exists := idx.byPath[path]; !exists {
		idx.order = append(idx.order, path)
	}
	idx.byPath[path] = hash
}

// Remove drops path from the index entirely (not the same as staging a
// deletion, which keeps the path with an empty hash).
func (idx *Index) Remove(path string) {
	if _, exists := idx.byPath[path]; !exists {
		return
	}
	delete(idx.byPath, path)
	for i, p := range idx.order {
		if p == path {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
}

// Get returns the staged hash for path and whether it is present.
func (idx *Index) Get(path string) (hash string, ok bool) {
	hash, ok = idx.byPath[path]
	return
}

// Entries returns all staged entries in insertion order.
func (idx *Index) Entries() []Entry {
	entries := make([]Entry, 0, len(idx.order))
	for _, p := range idx.order {
		entries = append(entries, Entry{Path: p, Hash: idx.byPath[p]})
	}
	return entries
}

// Len reports the number of staged paths.
func (idx *Index) Len() int { return len(idx.order) }

// Clear empties the index in memory (callers must still Save).
func (idx *Index) Clear() {
	idx.order = nil
	idx.byPath = make(map[string]string)
}

// Save writes the index back to disk as "path=hash" lines, in insertion
// order, via atomic write-temp-then-rename.
func (idx *Index) Save(vegaDir string) error {
	var b strings.Builder
	for _, p := range idx.order {
		fmt.Fprintf(&b, "%s=%s\n", p, idx.byPath[p])
	}
	if err := utils.WriteFileAtomic(indexPath(vegaDir), []byte(b.String()), 0644); err != nil {
		return vcserr.New(vcserr.IOError, "failed to write index", err)
	}
	return nil
}
