package objects

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bekucukakin/vega/internal/vcserr"
)

// Commit is the decoded form of a commit object: a snapshot tree, zero or
// more parents (more than one only once merges land two histories), an
// author line, and a free-form message.
type Commit struct {
	Tree      string
	Parents   []string
	Author    string
	Timestamp int64
	Message   string
}

// EncodeCommit renders a Commit into its canonical text body: header lines
// (tree, parent*, author), a blank line, then the message verbatim.
func EncodeCommit(c Commit) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "tree %s\n", c.Tree)
	for _, p := range c.Parents {
		fmt.Fprintf(&b, "parent %s\n", p)
	}
	fmt.Fprintf(&b, "author %s %d\n", c.Author, c.Timestamp)
	b.WriteByte('\n')
	b.WriteString(c.Message)
	return []byte(b.String())
}

// DecodeCommit parses a commit object's content back into a Commit.
func DecodeCommit(content []byte) (Commit, error) {
	text := string(content)
	sep := strings.Index(text, "\n\n")
	if sep == -1 {
		return Commit{}, vcserr.New(vcserr.CorruptObject, "commit missing blank line separating header from message", nil)
	}
	header, message := text[:sep], text[sep+2:]

	var c Commit
	sawTree, sawAuthor := false, false
	for _, line := range strings.Split(header, "\n") {
		switch {
		case strings.HasPrefix(line, "tree "):
			c.Tree = strings.TrimPrefix(line, "tree ")
			sawTree = true
		case strings.HasPrefix(line, "parent "):
			c.Parents = append(c.Parents, strings.TrimPrefix(line, "parent "))
		case strings.HasPrefix(line, "author "):
			fields := strings.Fields(strings.TrimPrefix(line, "author "))
			if len(fields) < 2 {
				return Commit{}, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("malformed author line %q", line), nil)
			}
			ts, err := strconv.ParseInt(fields[len(fields)-1], 10, 64)
			if err != nil {
				return Commit{}, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("malformed author timestamp in %q", line), err)
			}
			c.Author = strings.Join(fields[:len(fields)-1], " ")
			c.Timestamp = ts
			sawAuthor = true
		default:
			return Commit{}, vcserr.New(vcserr.CorruptObject, fmt.Sprintf("unrecognized commit header line %q", line), nil)
		}
	}
	if !sawTree {
		return Commit{}, vcserr.New(vcserr.CorruptObject, "commit missing tree line", nil)
	}
	if !sawAuthor {
		return Commit{}, vcserr.New(vcserr.CorruptObject, "commit missing author line", nil)
	}
	c.Message = message
	return c, nil
}

// WriteCommit stores c as a commit object and returns its hash.
func WriteCommit(vegaDir string, c Commit) (string, error) {
	return Write(vegaDir, KindCommit, EncodeCommit(c))
}

// ReadCommit loads and decodes the commit stored at hash.
func ReadCommit(vegaDir, hash string) (Commit, error) {
	content, err := ReadKind(vegaDir, hash, KindCommit)
	if err != nil {
		return Commit{}, err
	}
	return DecodeCommit(content)
}
