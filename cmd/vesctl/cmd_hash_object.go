package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/ves/pkg/objects"
)

func newHashObjectCmd() *cobra.Command {
	var objType string
	var write bool

	cmd := &cobra.Command{
		Use:   "hash-object <path>",
		Short: "Compute the object hash of a file",
		Long: `Compute the object ID of a file as if it were stored as a Git object.
With --write, the object is also written to the object store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ot, err := objects.ParseObjectType(objType)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			obj, err := parseObjectFromContent(ot, data)
			if err != nil {
				return fmt.Errorf("failed to build %s object: %w", ot, err)
			}

			if write {
				repo, err := findRepository()
				if err != nil {
					return err
				}

				hash, err := repo.WriteObject(obj)
				if err != nil {
					return fmt.Errorf("failed to write object: %w", err)
				}
				fmt.Println(hash)
				return nil
			}

			rawHash, err := obj.Hash()
			if err != nil {
				return fmt.Errorf("failed to hash object: %w", err)
			}
			fmt.Println(objects.NewObjectHashFromRaw(objects.RawHash(rawHash)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&objType, "type", "t", "blob", "Object type (blob, tree, commit, tag)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the object to the object store")

	return cmd
}
