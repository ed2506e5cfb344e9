package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/present"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/validate"
)

var (
	logOneline bool
	logLimit   int
)

// LogHandler walks first parents starting at HEAD, newest first. Commits
// reachable only through other branches or second (merge) parents are not
// listed.
func LogHandler(r *repo.Repository, args []string) error {
	if err := validate.FileOperations(r); err != nil {
		return err
	}

	current, ok, err := r.HeadCommit()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("no commits yet")
		return nil
	}

	shown := 0
	for current != "" {
		if logLimit > 0 && shown >= logLimit {
			break
		}
		commit, err := objects.ReadCommit(r.Meta, current)
		if err != nil {
			return err
		}

		if logOneline {
			fmt.Printf("%s %s\n", present.Hash("%s", shortHash(current)), firstLine(commit.Message))
		} else {
			fmt.Println(present.Hash("commit %s", current))
			if len(commit.Parents) > 1 {
				fmt.Printf("Merge:  %s\n", strings.Join(commit.Parents, " "))
			}
			fmt.Printf("Author: %s\n", commit.Author)
			fmt.Printf("Date:   %s\n", time.Unix(commit.Timestamp, 0).Format(time.RFC1123))
			fmt.Println()
			fmt.Printf("    %s\n", commit.Message)
			fmt.Println()
		}

		shown++
		if len(commit.Parents) == 0 {
			break
		}
		current = commit.Parents[0]
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		return s[:i]
	}
	return s
}

func init() {
	logCmd := NewRepoCommand("log", "Show commit logs", LogHandler)
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "show each commit on a single line")
	logCmd.Flags().IntVarP(&logLimit, "max-count", "n", 0, "limit the number of commits shown")
	rootCmd.AddCommand(logCmd)
}
