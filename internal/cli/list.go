package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"standup-tracker/internal/domain/entity"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your standup entries",
	Run:   runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "n", "n", 0, "Limit the number of entries to show")
}

func runList(cmd *cobra.Command, args []string) {
	c := initStoreContext()
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Store.Load(ctx); err != nil {
		// Offline: the cached entries already adopted by the store still show.
		color.New(color.FgYellow).Printf("warning: %v (showing cached entries)\n", err)
	}

	entries := c.Store.Entries()
	if len(entries) == 0 {
		fmt.Println("No standups yet")
		return
	}
	if listLimit > 0 && len(entries) > listLimit {
		entries = entries[:listLimit]
	}

	yellow := color.New(color.FgYellow)
	for _, e := range entries {
		yellow.Printf("%s ", shortID(e.ID.String()))
		color.New(color.FgCyan).Printf("%s ", e.Date)
		fmt.Printf("%s", firstLine(e.WorkCompleted))
		if len(e.Commits) > 0 {
			color.New(color.Faint).Printf("  (%d commits)", len(e.Commits))
		}
		fmt.Println()
	}
}

// shortID returns the first 8 characters of an id.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// findEntry resolves an id prefix against the loaded entries.
func findEntry(entries []entity.StandupEntry, prefix string) (*entity.StandupEntry, error) {
	var match *entity.StandupEntry
	for i := range entries {
		if strings.HasPrefix(entries[i].ID.String(), strings.ToLower(prefix)) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous id prefix %q", prefix)
			}
			match = &entries[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no standup matching %q", prefix)
	}
	return match, nil
}
