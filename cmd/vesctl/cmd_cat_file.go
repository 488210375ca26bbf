package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/resolve"
)

func newCatFileCmd() *cobra.Command {
	var objType string

	cmd := &cobra.Command{
		Use:   "cat-file <object>",
		Short: "Show the content, type, or size of a repository object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			var want objects.ObjectType
			if objType != "" {
				want, err = objects.ParseObjectType(objType)
				if err != nil {
					return err
				}
			}

			hash, err := resolve.NewResolver(repo).Find(args[0], want, true)
			if err != nil {
				return err
			}

			obj, err := repo.ReadObject(hash)
			if err != nil {
				return fmt.Errorf("failed to read object %s: %w", hash, err)
			}

			content, err := obj.Content()
			if err != nil {
				return fmt.Errorf("failed to read object content: %w", err)
			}
			_, err = os.Stdout.Write(content)
			return err
		},
	}

	cmd.Flags().StringVarP(&objType, "type", "t", "", "Expected object type (blob, tree, commit, tag)")

	return cmd
}
