// Package difftext renders line-level diffs for the presentation layer
// (the `vega diff` command). Diff granularity here is
// purely cosmetic: the merge algorithm itself classifies and resolves
// whole files, never partial lines.
package difftext

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Line is one rendered diff line, tagged with how it should be prefixed
// and (for colorized output) colored.
type Line struct {
	Kind rune // ' ', '+', or '-'
	Text string
}

// Unified computes a unified-style line diff between before and after.
func Unified(before, after string) []Line {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []Line
	for _, d := range diffs {
		kind := ' '
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = '+'
		case diffmatchpatch.DiffDelete:
			kind = '-'
		}
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		for _, l := range strings.Split(text, "\n") {
			lines = append(lines, Line{Kind: kind, Text: l})
		}
	}
	return lines
}

// Render formats lines the way `vega diff` prints them: one prefixed line
// per entry.
func Render(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%c%s\n", l.Kind, l.Text)
	}
	return b.String()
}

// SideBySide renders before/after as two aligned columns, for `vega diff
// --side-by-side`.
func SideBySide(before, after string, width int) string {
	beforeLines := strings.Split(strings.TrimSuffix(before, "\n"), "\n")
	afterLines := strings.Split(strings.TrimSuffix(after, "\n"), "\n")
	n := len(beforeLines)
	if len(afterLines) > n {
		n = len(afterLines)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(beforeLines) {
			l = beforeLines[i]
		}
		if i < len(afterLines) {
			r = afterLines[i]
		}
		fmt.Fprintf(&b, "%-*s | %s\n", width, truncate(l, width), r)
	}
	return b.String()
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width]
}
