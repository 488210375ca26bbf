package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/ves/cmd/ui"
	"github.com/utkarsh5026/ves/pkg/repository/scpath"
	"github.com/utkarsh5026/ves/pkg/repository/sourcerepo"
)

func newInitCmd() *cobra.Command {
	var bare bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new ves repository",
		Long: `Initialize a new ves repository in the current directory or specified path.
This creates a .source directory with all necessary subdirectories and files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}

			repoPath, err := scpath.NewRepositoryPath(absPath)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			repo := sourcerepo.NewSourceRepository()
			if err := repo.Initialize(repoPath); err != nil {
				return fmt.Errorf("failed to initialize repository: %w", err)
			}

			message := "Initialized empty ves repository in"
			if bare {
				message = "Initialized empty bare ves repository in"
			}

			displayPath := fmt.Sprintf("%s/%s", absPath, scpath.SourceDir)
			fmt.Println(ui.SuccessMessage(message, displayPath))

			return nil
		},
	}

	cmd.Flags().BoolVar(&bare, "bare", false, "Report the repository as bare (only the success message changes; the layout created is the same)")

	return cmd
}
