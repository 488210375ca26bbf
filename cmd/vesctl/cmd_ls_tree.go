package main

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/objects/tree"
	"github.com/utkarsh5026/ves/pkg/repository/sourcerepo"
	"github.com/utkarsh5026/ves/pkg/resolve"
)

func newLsTreeCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "ls-tree <tree-ish>",
		Short: "List the contents of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			hash, err := resolve.NewResolver(repo).Find(args[0], objects.TreeType, true)
			if err != nil {
				return err
			}

			return lsTree(repo, hash, recursive, "")
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Recurse into subdirectories")

	return cmd
}

// lsTree prints the entries of the tree at hash, recursing into
// subdirectories when recursive is set.
func lsTree(repo *sourcerepo.SourceRepository, hash objects.ObjectHash, recursive bool, prefix string) error {
	t, err := repo.ReadTreeObject(hash)
	if err != nil {
		return fmt.Errorf("failed to read tree %s: %w", hash, err)
	}

	for _, entry := range t.Entries() {
		entryType, err := entry.EntryType()
		if err != nil {
			return fmt.Errorf("invalid tree entry mode %q: %w", entry.Mode(), err)
		}

		var kind string
		switch entryType {
		case tree.EntryTypeDirectory:
			kind = "tree"
		case tree.EntryTypeSubmodule:
			kind = "commit"
		default:
			kind = "blob"
		}

		entryPath := path.Join(prefix, entry.Name())

		if recursive && entryType == tree.EntryTypeDirectory {
			subHash, err := objects.NewObjectHashFromString(entry.SHA())
			if err != nil {
				return fmt.Errorf("invalid tree entry sha %q: %w", entry.SHA(), err)
			}
			if err := lsTree(repo, subHash, recursive, entryPath); err != nil {
				return err
			}
			continue
		}

		fmt.Printf("%s %s %s\t%s\n", entry.Mode(), kind, entry.SHA(), entryPath)
	}

	return nil
}
