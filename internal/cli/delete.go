package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a standup entry",
	Args:  cobra.ExactArgs(1),
	Run:   runDelete,
}

func runDelete(cmd *cobra.Command, args []string) {
	c := initStoreContext()
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Store.Load(ctx); err != nil {
		exitError("failed to load standups: %v", err)
	}

	entry, err := findEntry(c.Store.Entries(), args[0])
	if err != nil {
		exitError("%v", err)
	}

	if err := c.Store.Delete(ctx, entry.ID); err != nil {
		exitError("failed to delete standup: %v", err)
	}
}
