package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/ves/pkg/commitmanager"
	"github.com/utkarsh5026/ves/pkg/objects"
	"github.com/utkarsh5026/ves/pkg/objects/tag"
	"github.com/utkarsh5026/ves/pkg/repository/refs"
	"github.com/utkarsh5026/ves/pkg/resolve"
)

func newTagCmd() *cobra.Command {
	var annotated bool

	cmd := &cobra.Command{
		Use:   "tag [name] [object]",
		Short: "Create a new tag, or list existing tags",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				entries, err := refs.NewRefManager(repo).ListAll()
				if err != nil {
					return fmt.Errorf("failed to list refs: %w", err)
				}
				for _, e := range entries {
					if e.Path.IsTag() {
						fmt.Println(e.Path.ShortName())
					}
				}
				return nil
			}

			name := args[0]
			target := "HEAD"
			if len(args) == 2 {
				target = args[1]
			}

			hash, err := resolve.NewResolver(repo).Find(target, objects.ObjectType(""), true)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", target, err)
			}

			tagRef, err := refs.NewTagRef(name)
			if err != nil {
				return err
			}

			refMgr := refs.NewRefManager(repo)

			if !annotated {
				return refMgr.UpdateRef(tagRef, hash)
			}

			tagger, err := commitmanager.NewManager(repo).CurrentUser()
			if err != nil {
				return fmt.Errorf("failed to resolve tagger identity: %w", err)
			}

			obj, err := repo.ReadObject(hash)
			if err != nil {
				return fmt.Errorf("failed to read target object %s: %w", hash, err)
			}

			tagObj := &tag.Tag{
				ObjectSHA: hash.String(),
				TypeName:  obj.Type(),
				Name:      name,
				Tagger:    tagger,
				Message:   fmt.Sprintf("%s\n", name),
			}

			tagHash, err := repo.WriteObject(tagObj)
			if err != nil {
				return fmt.Errorf("failed to write tag object: %w", err)
			}

			return refMgr.UpdateRef(tagRef, tagHash)
		},
	}

	cmd.Flags().BoolVarP(&annotated, "annotate", "a", false, "Create an annotated tag object instead of a lightweight reference")

	return cmd
}
