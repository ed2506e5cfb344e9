package cmd

import (
	"fmt"
	"os"

	"github.com/bekucukakin/vega/internal/difftext"
	"github.com/bekucukakin/vega/internal/index"
	"github.com/bekucukakin/vega/internal/objects"
	"github.com/bekucukakin/vega/internal/present"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/validate"
)

var (
	diffCached     bool
	diffSideBySide bool
)

// DiffHandler shows changes for one path: by default working tree vs
// index, or index vs HEAD with --cached.
func DiffHandler(r *repo.Repository, args []string) error {
	if err := validate.FileOperations(r); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: vega diff <path> [--side-by-side]")
	}
	relPath, err := r.RelPath(args[0])
	if err != nil {
		return err
	}

	headTree, _, err := r.HeadTreeMap()
	if err != nil {
		return err
	}
	idx, err := index.Load(r.Meta)
	if err != nil {
		return err
	}

	var before, after string

	if diffCached {
		if h, ok := headTree[relPath]; ok {
			content, err := objects.ReadBlob(r.Meta, h)
			if err != nil {
				return err
			}
			before = string(content)
		}
		if h, ok := idx.Get(relPath); ok && h != "" {
			content, err := objects.ReadBlob(r.Meta, h)
			if err != nil {
				return err
			}
			after = string(content)
		}
	} else {
		if h, ok := idx.Get(relPath); ok {
			if h != "" {
				content, err := objects.ReadBlob(r.Meta, h)
				if err != nil {
					return err
				}
				before = string(content)
			}
		} else if h, ok := headTree[relPath]; ok {
			content, err := objects.ReadBlob(r.Meta, h)
			if err != nil {
				return err
			}
			before = string(content)
		}
		data, err := os.ReadFile(r.AbsPath(relPath))
		if err == nil {
			after = string(data)
		}
	}

	if before == after {
		fmt.Println("No changes.")
		return nil
	}

	if diffSideBySide {
		fmt.Print(difftext.SideBySide(before, after, 40))
		return nil
	}

	fmt.Printf("diff --vega a/%s b/%s\n", relPath, relPath)
	for _, line := range difftext.Unified(before, after) {
		switch line.Kind {
		case '+':
			fmt.Println(present.Added("+%s", line.Text))
		case '-':
			fmt.Println(present.Deleted("-%s", line.Text))
		default:
			fmt.Printf(" %s\n", line.Text)
		}
	}
	return nil
}

func init() {
	diffCmd := NewRepoCommand("diff <path>", "Show changes between commits, commit and working tree, etc", DiffHandler)
	diffCmd.Flags().BoolVar(&diffCached, "cached", false, "show staged changes against HEAD")
	diffCmd.Flags().BoolVar(&diffSideBySide, "side-by-side", false, "render the diff as two aligned columns")
	rootCmd.AddCommand(diffCmd)
}
