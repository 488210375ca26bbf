package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/repository/scpath"
	"github.com/utkarsh5026/ves/pkg/resolve"
	"github.com/utkarsh5026/ves/pkg/workdir"
)

func newCheckoutTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout-tree <tree-ish> <destination>",
		Short: "Materialize a tree into an empty destination directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			hash, err := resolve.NewResolver(repo).Find(args[0], objects.TreeType, true)
			if err != nil {
				return err
			}

			absDest, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("invalid destination: %w", err)
			}

			return workdir.Checkout(repo, hash, scpath.AbsolutePath(absDest))
		},
	}

	return cmd
}
