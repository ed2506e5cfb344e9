package objects

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bekucukakin/vega/internal/vcserr"
	"github.com/bekucukakin/vega/utils"
)

const objectsDirName = "objects"

// ObjectPath returns the sharded on-disk path for hash under vegaDir's
// objects directory: objects/<h[0:2]>/<h[2:]>.
func ObjectPath(vegaDir, hash string) string {
	return filepath.Join(vegaDir, objectsDirName, hash[:2], hash[2:])
}

// Write computes the canonical bytes for (kind, content), hashes them, and
// writes the object to its sharded path unless it already exists. Writes
// are idempotent: identical content always yields the same hash and path.
func Write(vegaDir string, kind Kind, content []byte) (string, error) {
	full := Encode(kind, content)
	hash := Hash(full)
	path := ObjectPath(vegaDir, hash)

	if utils.FileExists(path) {
		return hash, nil
	}
	if err := utils.EnsureDirExists(filepath.Dir(path)); err != nil {
		return "", err
	}
	if err := utils.WriteFileAtomic(path, full, 0644); err != nil {
		return "", vcserr.New(vcserr.IOError, fmt.Sprintf("failed to write object %s", hash), err)
	}
	return hash, nil
}

// Read returns the full canonical bytes (header + content) stored under
// hash.
func Read(vegaDir, hash string) ([]byte, error) {
	if len(hash) != 40 || !utils.IsValidHex(hash) {
		return nil, vcserr.New(vcserr.MissingObject, fmt.Sprintf("invalid object hash %q", hash), nil)
	}
	path := ObjectPath(vegaDir, hash)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vcserr.New(vcserr.MissingObject, fmt.Sprintf("object %s not found", hash), nil)
		}
		return nil, vcserr.New(vcserr.IOError, fmt.Sprintf("failed to read object %s", hash), err)
	}
	return data, nil
}

// ReadKind reads and decodes the object at hash, verifying it is of the
// expected kind.
func ReadKind(vegaDir, hash string, want Kind) ([]byte, error) {
	full, err := Read(vegaDir, hash)
	if err != nil {
		return nil, err
	}
	kind, content, err := Decode(full)
	if err != nil {
		return nil, err
	}
	if kind != want {
		return nil, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("object %s is a %s, expected %s", hash, kind, want), nil)
	}
	return content, nil
}

// Exists reports whether an object with the given full hash is present.
func Exists(vegaDir, hash string) bool {
	if len(hash) != 40 {
		return false
	}
	return utils.FileExists(ObjectPath(vegaDir, hash))
}

// ResolveShortHash expands a hex prefix of at least 6 and fewer than 40
// characters to the unique full hash it identifies, scanning the sharded
// object directories.
func ResolveShortHash(vegaDir, prefix string) (string, error) {
	if len(prefix) == 40 {
		if Exists(vegaDir, prefix) {
			return prefix, nil
		}
		return "", vcserr.New(vcserr.MissingObject, fmt.Sprintf("object %s not found", prefix), nil)
	}
	if len(prefix) < 6 || len(prefix) >= 40 {
		return "", vcserr.New(vcserr.MissingObject, "short hash must be between 6 and 39 hex characters", nil)
	}
	prefix = strings.ToLower(prefix)
	if !utils.IsValidHex(prefix) {
		return "", vcserr.New(vcserr.MissingObject, fmt.Sprintf("invalid hash prefix %q", prefix), nil)
	}

	shardName := prefix[:2]
	rest := prefix[2:]
	shardDir := filepath.Join(vegaDir, objectsDirName, shardName)

	entries, err := os.ReadDir(shardDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", vcserr.New(vcserr.MissingObject, fmt.Sprintf("no object matches prefix %q", prefix), nil)
		}
		return "", vcserr.New(vcserr.IOError, "failed to read objects directory", err)
	}

	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), rest) {
			matches = append(matches, shardName+e.Name())
		}
	}

	switch len(matches) {
	case 0:
		return "", vcserr.New(vcserr.MissingObject, fmt.Sprintf("no object matches prefix %q", prefix), nil)
	case 1:
		return matches[0], nil
	default:
		return "", vcserr.New(vcserr.AmbiguousShortHash, fmt.Sprintf("prefix %q matches %d objects: %s", prefix, len(matches), strings.Join(matches, ", ")), nil)
	}
}
