// Package objects implements vega's content-addressed object model: blobs,
// trees, and commits, encoded as "<kind> <len>\0<content>" and hashed with
// SHA-1, plus the loose, sharded on-disk object store.
package objects

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/bekucukakin/vega/internal/vcserr"
)

// Kind tags the three object variants. There is no hierarchy: a single
// decode entry point inspects the header and returns the variant.
type Kind string

const (
	KindBlob   Kind = "blob"
	KindTree   Kind = "tree"
	KindCommit Kind = "commit"
)

// Encode produces the canonical byte layout for an object: the header
// ("<kind> <len>") followed by a NUL separator and the raw content. The
// hash of these exact bytes is the object's id, so any header change
// changes the hash.
func Encode(kind Kind, content []byte) []byte {
	header := fmt.Sprintf("%s %d", kind, len(content))
	buf := make([]byte, 0, len(header)+1+len(content))
	buf = append(buf, header...)
	buf = append(buf, 0)
	buf = append(buf, content...)
	return buf
}

// Hash returns the lowercase hex SHA-1 of the full canonical bytes
// (header included).
func Hash(full []byte) string {
	sum := sha1.Sum(full)
	return hex.EncodeToString(sum[:])
}

// Decode splits canonical bytes into their kind and content, validating
// that the declared length matches what follows the header.
func Decode(full []byte) (Kind, []byte, error) {
	sep := bytes.IndexByte(full, 0)
	if sep == -1 {
		return "", nil, vcserr.New(vcserr.CorruptObject, "object missing header NUL separator", nil)
	}
	header := string(full[:sep])
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", nil, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("malformed object header %q", header), nil)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 0 {
		return "", nil, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("malformed object length in header %q", header), nil)
	}
	content := full[sep+1:]
	if len(content) != n {
		return "", nil, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("declared length %d does not match content length %d", n, len(content)), nil)
	}
	return Kind(parts[0]), content, nil
}
