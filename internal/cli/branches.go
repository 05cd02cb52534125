package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var branchesUse string

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "List branches of the default repository",
	Run:   runBranches,
}

func init() {
	branchesCmd.Flags().StringVar(&branchesUse, "use", "", "Set the given branch as the default for compose")
}

func runBranches(cmd *cobra.Command, args []string) {
	c := initContext()
	if c.Config.AccessToken == "" {
		exitError("not logged in; run 'standup login' first")
	}
	if c.Config.Repo == "" {
		exitError("no default repository; run 'standup repos --use owner/name' first")
	}

	if branchesUse != "" {
		c.Config.Branch = branchesUse
		if err := c.Config.Save(); err != nil {
			exitError("failed to save config: %v", err)
		}
		color.New(color.FgGreen).Printf("Default branch set to %s\n", branchesUse)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	branches, err := c.GitHub.ListBranches(ctx, c.Config.AccessToken, c.Config.Repo)
	if err != nil {
		exitError("failed to list branches: %v", err)
	}

	for _, b := range branches {
		if b == c.Config.Branch {
			color.New(color.FgCyan).Printf("* %s\n", b)
		} else {
			fmt.Printf("  %s\n", b)
		}
	}
}
