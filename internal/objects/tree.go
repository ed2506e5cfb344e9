package objects

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bekucukakin/vega/internal/vcserr"
)

// TreeEntry names one child of a tree: either a blob (a file) or a nested
// tree (a directory), identified by hash.
type TreeEntry struct {
	Kind Kind
	Hash string
	Name string
}

// EncodeTree renders entries into a tree object's content. Entries need
// not be sorted: EncodeTree sorts a copy by Name and rejects duplicate
// names so callers never have to think about ordering.
func EncodeTree(entries []TreeEntry) ([]byte, error) {
	sorted := make([]TreeEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	seen := make(map[string]bool, len(sorted))
	for _, e := range sorted {
		if err := validateEntryName(e.Name); err != nil {
			return nil, err
		}
		if seen[e.Name] {
			return nil, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("duplicate tree entry name %q", e.Name), nil)
		}
		seen[e.Name] = true
		fmt.Fprintf(&b, "%s %s %s\n", e.Kind, e.Hash, e.Name)
	}
	return []byte(b.String()), nil
}

func validateEntryName(name string) error {
	if name == "" {
		return vcserr.New(vcserr.CorruptObject, "tree entry name must not be empty", nil)
	}
	if strings.ContainsRune(name, '/') {
		return vcserr.New(vcserr.CorruptObject, fmt.Sprintf("tree entry name %q must not contain '/'", name), nil)
	}
	if strings.ContainsRune(name, 0) {
		return vcserr.New(vcserr.CorruptObject, fmt.Sprintf("tree entry name %q must not contain NUL", name), nil)
	}
	return nil
}

// DecodeTree parses a tree object's content into its entries.
func DecodeTree(content []byte) ([]TreeEntry, error) {
	text := string(content)
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	entries := make([]TreeEntry, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	var prevName string
	for i, line := range lines {
		parts := strings.SplitN(line, " ", 3)
		if len(parts) != 3 {
			return nil, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("malformed tree entry line %q", line), nil)
		}
		kind := Kind(parts[0])
		if kind != KindBlob && kind != KindTree {
			return nil, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("tree entry has unknown kind %q", parts[0]), nil)
		}
		hash, name := parts[1], parts[2]
		if len(hash) != 40 {
			return nil, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("tree entry %q has malformed hash %q", name, hash), nil)
		}
		if err := validateEntryName(name); err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("duplicate tree entry name %q", name), nil)
		}
		seen[name] = true
		if i > 0 && name < prevName {
			return nil, vcserr.New(vcserr.CorruptObject, "tree entries are not sorted by name", nil)
		}
		prevName = name
		entries = append(entries, TreeEntry{Kind: kind, Hash: hash, Name: name})
	}
	return entries, nil
}

// WriteTree stores entries as a tree object and returns its hash.
func WriteTree(vegaDir string, entries []TreeEntry) (string, error) {
	content, err := EncodeTree(entries)
	if err != nil {
		return "", err
	}
	return Write(vegaDir, KindTree, content)
}

// ReadTree loads and decodes the tree stored at hash.
func ReadTree(vegaDir, hash string) ([]TreeEntry, error) {
	content, err := ReadKind(vegaDir, hash, KindTree)
	if err != nil {
		return nil, err
	}
	return DecodeTree(content)
}
