package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/ves/cmd/ui"
	"github.com/utkarsh5026/ves/pkg/status"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the working tree status",
		Long: `Show the status of the working directory.
Displays staged changes, unstaged changes, and untracked files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			engine, err := status.NewEngine(repo)
			if err != nil {
				return fmt.Errorf("failed to build status engine: %w", err)
			}

			report, err := engine.Compute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to compute status: %w", err)
			}

			printReport(report)
			return nil
		},
	}

	return cmd
}

func printReport(report *status.Report) {
	if report.Detached {
		fmt.Println(ui.Yellow(ui.IconBranch) + " HEAD detached at " + ui.Yellow(string(report.HeadCommit.Short())))
	} else {
		fmt.Println(ui.BranchInfo(report.Branch))
	}

	if report.HeadCommit == "" {
		fmt.Println(ui.InfoMessage("No commits yet"))
	}

	if report.Clean() {
		fmt.Println(ui.SuccessMessage("nothing to commit, working tree clean"))
		return
	}

	if !report.Staged.IsEmpty() {
		fmt.Println(ui.Section("Changes to be committed:"))
		for _, p := range report.Staged.Added {
			fmt.Println(ui.FormatAdded(p.String()))
		}
		for _, p := range report.Staged.Modified {
			fmt.Println(ui.FormatModified(p.String()))
		}
		for _, p := range report.Staged.Deleted {
			fmt.Println(ui.FormatDeleted(p.String()))
		}
	}

	if !report.Unstaged.IsEmpty() {
		fmt.Println(ui.Section("Changes not staged for commit:"))
		for _, p := range report.Unstaged.Modified {
			fmt.Println(ui.FormatModified(p.String()))
		}
		for _, p := range report.Unstaged.Deleted {
			fmt.Println(ui.FormatDeleted(p.String()))
		}
	}

	if len(report.UntrackedDisplay) > 0 {
		fmt.Println(ui.Section("Untracked files:"))
		for _, p := range report.UntrackedDisplay {
			fmt.Println(ui.FormatUntracked(p))
		}
	}
}
