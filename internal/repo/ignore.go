package repo

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreFileName is the working-tree-root ignore file, analogous to
// .gitignore but with vega's naive pattern semantics.
const IgnoreFileName = ".vegaignore"

// builtinIgnoredPrefixes are always excluded from tracking, regardless of
// .vegaignore contents.
var builtinIgnoredPrefixes = []string{MetaDirName + "/", "target/", ".idea/", ".mvn/"}

// IgnoreSet holds the compiled patterns loaded from a repository's
// .vegaignore file.
type IgnoreSet struct {
	patterns    []*regexp.Regexp
	patternText []string // original text of each entry in patterns, for prefix matching
	dirs        []string // "dir/"-form patterns, matched as path prefixes
	exact       []string
}

// LoadIgnore reads root's .vegaignore file, tolerating its absence.
func LoadIgnore(root string) (*IgnoreSet, error) {
	set := &IgnoreSet{}
	data, err := os.ReadFile(filepath.Join(root, IgnoreFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set.add(line)
	}
	return set, nil
}

func (s *IgnoreSet) add(pattern string) {
	if strings.HasSuffix(pattern, "/") {
		s.dirs = append(s.dirs, strings.TrimSuffix(pattern, "/"))
		return
	}
	if strings.Contains(pattern, "*") {
		// Naive glob: escape regex metacharacters except '*', then turn
		// each '*' into ".*". Deliberately doesn't support "**" or
		// character classes.
		escaped := regexp.QuoteMeta(pattern)
		escaped = strings.ReplaceAll(escaped, `\*`, ".*")
		re, err := regexp.Compile("^" + escaped + "$")
		if err == nil {
			s.patterns = append(s.patterns, re)
			s.patternText = append(s.patternText, pattern)
		}
		return
	}
	s.exact = append(s.exact, pattern)
}

// Matches reports whether relPath (forward-slash, repo-relative) is
// ignored: either by a built-in prefix or by a loaded pattern.
func (s *IgnoreSet) Matches(relPath string) bool {
	for _, prefix := range builtinIgnoredPrefixes {
		if strings.HasPrefix(relPath, prefix) {
			return true
		}
	}
	if s == nil {
		return false
	}
	for _, exact := range s.exact {
		if relPath == exact {
			return true
		}
	}
	for _, dir := range s.dirs {
		if relPath == dir || strings.HasPrefix(relPath, dir+"/") {
			return true
		}
	}
	for i, re := range s.patterns {
		if re.MatchString(relPath) {
			return true
		}
		// bare wildcard patterns also match as directory prefixes
		if strings.HasPrefix(relPath, s.patternText[i]+"/") {
			return true
		}
	}
	return false
}
