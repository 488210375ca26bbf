package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/resolve"
)

func newRevParseCmd() *cobra.Command {
	var objType string

	cmd := &cobra.Command{
		Use:   "rev-parse <name>",
		Short: "Resolve a name to an object hash",
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

			fmt.Println(hash)
			return nil
		},
	}

	cmd.Flags().StringVarP(&objType, "type", "t", "", "Expected object type (blob, tree, commit, tag)")

	return cmd
}
