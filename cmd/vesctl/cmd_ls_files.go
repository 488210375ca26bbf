package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/ves/pkg/index"
)

func newLsFilesCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "ls-files",
		Short: "Show files tracked in the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			idx, err := index.Read(repo.SourceDirectory().IndexPath().ToAbsolutePath())
			if err != nil {
				return fmt.Errorf("failed to read index: %w", err)
			}

			for _, e := range idx.Entries {
				fmt.Println(e.Path)
				if verbose {
					printEntryDetail(e)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed entry metadata")

	return cmd
}

func printEntryDetail(e *index.Entry) {
	fmt.Printf("  %s with perms: %o\n", e.Mode, e.Mode.Permissions())
	fmt.Printf("  on blob: %s\n", e.BlobHash)
	fmt.Printf("  created: %s, modified: %s\n", e.CreationTime, e.ModificationTime)
	fmt.Printf("  device: %d, inode: %d\n", e.DeviceID, e.Inode)
	fmt.Printf("  user: %d  group: %d\n", e.UserID, e.GroupID)
	fmt.Printf("  flags: stage=%d assume_valid=%t\n", e.Stage, e.AssumeValid)
}
