package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a standup entry",
	Args:  cobra.ExactArgs(1),
	Run:   runShow,
}

func runShow(cmd *cobra.Command, args []string) {
	c := initStoreContext()
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Store.Load(ctx); err != nil {
		color.New(color.FgYellow).Printf("warning: %v (showing cached entries)\n", err)
	}

	entry, err := findEntry(c.Store.Entries(), args[0])
	if err != nil {
		exitError("%v", err)
	}

	yellow := color.New(color.FgYellow)
	yellow.Printf("standup %s\n", entry.ID)
	fmt.Printf("Date:   %s\n", entry.Date)
	if entry.RepoFullName != "" {
		fmt.Printf("Repo:   %s\n", entry.RepoFullName)
	}
	fmt.Printf("\nWorked on:\n    %s\n", entry.WorkCompleted)
	fmt.Printf("\nPlanned:\n    %s\n", entry.WorkPlanned)
	fmt.Printf("\nBlockers:\n    %s\n", entry.Blockers)

	if len(entry.TaskIDs) > 0 {
		fmt.Printf("\nTasks: %v\n", entry.TaskIDs)
	}

	if len(entry.Commits) > 0 {
		fmt.Printf("\nCommits (%d):\n", len(entry.Commits))
		for _, commit := range entry.Commits {
			yellow.Printf("    %s ", commit.ShortSHA())
			fmt.Print(commit.Summary())
			if commit.Branch != "" {
				color.New(color.Faint).Printf("  [%s]", commit.Branch)
			}
			fmt.Println()
		}
	}
}
