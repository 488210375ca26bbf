package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/ves/cmd/ui"
	"github.com/utkarsh5026/ves/pkg/index"
)

func newRmCmd() *cobra.Command {
	var keepFiles bool

	cmd := &cobra.Command{
		Use:   "rm <path>...",
		Short: "Remove files from the working tree and the index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			indexMgr := index.NewManager(repo.WorkingDirectory())
			if err := indexMgr.Initialize(); err != nil {
				return fmt.Errorf("failed to initialize index: %w", err)
			}

			result, err := indexMgr.Remove(args, !keepFiles)
			if err != nil {
				return fmt.Errorf("failed to remove files: %w", err)
			}

			for _, path := range result.Removed {
				fmt.Printf("%s %s\n", ui.Red("removed:"), path)
			}
			for _, failure := range result.Failed {
				fmt.Printf("%s %s: %s\n", ui.Red("failed:"), failure.Path, failure.Reason)
			}

			if len(result.Failed) > 0 {
				return fmt.Errorf("failed to remove %d path(s)", len(result.Failed))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&keepFiles, "cached", false, "Only remove from the index, keep the working tree file")

	return cmd
}
