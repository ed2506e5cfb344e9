// Package present applies fatih/color-based coloring to status, log, and
// diff output. Every exported function degrades to plain text when stdout
// is not a terminal, keeping colorization strictly a presentation concern
// layered over the core's structured results.
package present

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var (
	addColor    = color.New(color.FgGreen)
	delColor    = color.New(color.FgRed)
	modColor    = color.New(color.FgYellow)
	untrackedColor = color.New(color.FgCyan)
	hashColor   = color.New(color.FgYellow)
)

// Stdout returns an io.Writer for colorized output: a Windows-aware
// colorable wrapper around os.Stdout when it's a real terminal, or plain
// os.Stdout (with color disabled) when output is redirected.
func Stdout() io.Writer {
	if IsTerminal() {
		return colorable.NewColorableStdout()
	}
	return os.Stdout
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Added renders a line for a newly staged/added path.
func Added(format string, a ...interface{}) string {
	return colorIfTTY(addColor, format, a...)
}

// Deleted renders a line for a deleted/removed path.
func Deleted(format string, a ...interface{}) string {
	return colorIfTTY(delColor, format, a...)
}

// Modified renders a line for a modified path.
func Modified(format string, a ...interface{}) string {
	return colorIfTTY(modColor, format, a...)
}

// Untracked renders a line for an untracked path.
func Untracked(format string, a ...interface{}) string {
	return colorIfTTY(untrackedColor, format, a...)
}

// Hash renders a commit hash (as in `vega log`).
func Hash(format string, a ...interface{}) string {
	return colorIfTTY(hashColor, format, a...)
}

func colorIfTTY(c *color.Color, format string, a ...interface{}) string {
	if !IsTerminal() {
		return fmt.Sprintf(format, a...)
	}
	return c.Sprintf(format, a...)
}
