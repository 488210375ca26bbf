package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/ves/pkg/repository/ignore"
)

func newCheckIgnoreCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "check-ignore <path>...",
		Short: "Report which of the given paths are ignored, and by which rule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			engine, err := ignore.Load(repo.WorkingDirectory(), repo.SourceDirectory())
			if err != nil {
				return fmt.Errorf("failed to load ignore rules: %w", err)
			}

			for _, p := range args {
				info, err := os.Stat(p)
				isDir := err == nil && info.IsDir()

				rel, err := filepath.Rel(repo.WorkingDirectory().String(), p)
				if err != nil {
					rel = p
				}

				ignored, source := engine.CheckIgnoreSource(filepath.ToSlash(rel), isDir)
				if !ignored {
					continue
				}

				if verbose {
					fmt.Printf("%s\t%s\n", source, p)
				} else {
					fmt.Println(p)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print the rule source that matched each ignored path")

	return cmd
}
