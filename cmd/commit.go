package cmd

import (
	"fmt"
	"os/user"
	"time"

	"github.com/bekucukakin/vega/internal/config"
	"github.com/bekucukakin/vega/internal/index"
	"github.com/bekucukakin/vega/internal/merge"
	"github.com/bekucukakin/vega/internal/present"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/snapshot"
	"github.com/bekucukakin/vega/internal/validate"
	"github.com/bekucukakin/vega/internal/vcserr"
)

var commitMessage string

func CommitHandler(r *repo.Repository, args []string) error {
	if err := validate.FileOperations(r); err != nil {
		return err
	}
	if commitMessage == "" {
		return vcserr.New(vcserr.InvalidName, "commit message must not be empty (use -m)", nil)
	}

	idx, err := index.Load(r.Meta)
	if err != nil {
		return err
	}
	mergeInProgress := merge.InProgress(r.Meta)
	if err := validate.Commit(idx, mergeInProgress); err != nil {
		return err
	}

	headHash, _, err := r.HeadCommit()
	if err != nil {
		return err
	}

	var extraParents []string
	if mergeInProgress {
		targetHash, _, err := merge.TargetHash(r.Meta)
		if err != nil {
			return err
		}
		extraParents = []string{targetHash}
	}

	commitHash, err := snapshot.Commit(r, idx, headHash, snapshot.Params{
		Author:       commitAuthor(r),
		Message:      commitMessage,
		Timestamp:    commitTimestamp(),
		ExtraParents: extraParents,
	})
	if err != nil {
		return err
	}
	if err := idx.Save(r.Meta); err != nil {
		return err
	}
	if mergeInProgress {
		if err := merge.Abort(r.Meta); err != nil {
			return err
		}
	}

	fmt.Println(present.Hash("%s", shortHash(commitHash)) + " " + commitMessage)
	return nil
}

func shortHash(h string) string {
	if len(h) < 7 {
		return h
	}
	return h[:7]
}

func commitAuthor(r *repo.Repository) string {
	local, err := config.LoadLocal(r.Meta)
	if err == nil {
		if name, ok := local.Get("user", "name"); ok && name != "" {
			return name
		}
	}
	if global, err := config.LoadGlobal(); err == nil {
		if name, ok := global.Get("user", "name"); ok && name != "" {
			return name
		}
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}

func commitTimestamp() int64 {
	return time.Now().Unix()
}

func init() {
	commitCmd := NewRepoCommand("commit", "Record staged changes to history", CommitHandler)
	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "commit message")
	rootCmd.AddCommand(commitCmd)
}
