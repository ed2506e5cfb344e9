package cmd

import (
	"fmt"
	"strings"

	"github.com/bekucukakin/vega/internal/checkout"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/resolve"
	"github.com/bekucukakin/vega/internal/validate"
	"github.com/bekucukakin/vega/internal/vcserr"
	"github.com/spf13/cobra"
)

// CheckoutHandler implements both `vega checkout <target>` and
// `vega checkout -- <file>`, distinguished by a leading `--` in args. Flag
// parsing strips the separator, so the checkout command puts it back.
func CheckoutHandler(r *repo.Repository, args []string) error {
	if err := validate.FileOperations(r); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: vega checkout <target> | vega checkout -- <file>")
	}

	if args[0] == "--" {
		if len(args) != 2 {
			return fmt.Errorf("usage: vega checkout -- <file>")
		}
		relPath, err := r.RelPath(args[1])
		if err != nil {
			return err
		}
		if err := checkout.CheckoutFile(r, relPath); err != nil {
			return err
		}
		fmt.Printf("Updated 1 path from HEAD\n")
		return nil
	}

	return checkoutTarget(r, args[0])
}

func checkoutTarget(r *repo.Repository, target string) error {
	commitHash, branchRef, err := resolve.Target(r, target)
	if err != nil {
		return err
	}

	currentHash, _, err := r.HeadCommit()
	if err != nil {
		return err
	}

	snap, err := computeStatus(r)
	if err != nil {
		return err
	}
	if err := validate.Checkout(r, currentHash, commitHash, snap); err != nil {
		if kind, ok := vcserr.KindOf(err); ok && kind == vcserr.AlreadyExists {
			fmt.Printf("Already on %q\n", target)
			return nil
		}
		return err
	}

	ignoreSet, err := repo.LoadIgnore(r.Root)
	if err != nil {
		return err
	}
	important := func(relPath string) bool { return ignoreSet.Matches(relPath) }

	if err := checkout.Switch(r, commitHash, branchRef, important); err != nil {
		return err
	}

	if branchRef != "" {
		fmt.Printf("Switched to branch %q\n", strings.TrimPrefix(branchRef, "refs/heads/"))
	} else {
		fmt.Printf("Note: checking out %q\n\nYou are in 'detached HEAD' state.\n", shortHash(commitHash))
	}
	return nil
}

func init() {
	checkoutCmd := NewRepoCommand("checkout <target>", "Switch branches or restore working tree files", CheckoutHandler)
	runCheckout := checkoutCmd.RunE
	checkoutCmd.RunE = func(c *cobra.Command, args []string) error {
		if c.ArgsLenAtDash() == 0 {
			args = append([]string{"--"}, args...)
		}
		return runCheckout(c, args)
	}
	rootCmd.AddCommand(checkoutCmd)

	restoreCmd := NewRepoCommand("restore <file>", "Restore working tree files (alias for checkout -- <file>)", func(r *repo.Repository, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: vega restore <file>")
		}
		return CheckoutHandler(r, append([]string{"--"}, args...))
	})
	rootCmd.AddCommand(restoreCmd)
}
