package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/ves/pkg/repository/refs"
)

func newShowRefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-ref",
		Short: "List references in the repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			entries, err := refs.NewRefManager(repo).ListAll()
			if err != nil {
				return fmt.Errorf("failed to list refs: %w", err)
			}

			for _, e := range entries {
				fmt.Printf("%s %s\n", e.Hash, e.Path)
			}

			return nil
		},
	}

	return cmd
}
