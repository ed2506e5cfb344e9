package cmd

import (
	"fmt"

	"github.com/bekucukakin/vega/internal/vcserr"
)

// friendlyMessage renders err in the familiar VCS phrasing the commands
// use to report their own typed failures.
func friendlyMessage(err error) string {
	kind, ok := vcserr.KindOf(err)
	if !ok {
		return err.Error()
	}
	switch kind {
	case vcserr.NotARepo:
		return err.Error()
	case vcserr.WouldOverwriteChanges:
		return fmt.Sprintf("Your local changes would be overwritten. %s", err.Error())
	case vcserr.NothingToCommit:
		return "nothing to commit, working tree clean"
	case vcserr.ConflictsRemain:
		return err.Error()
	case vcserr.MergeInProgress:
		return err.Error()
	default:
		return err.Error()
	}
}
