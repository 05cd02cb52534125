package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the local cache with the server",
	Long: `Fetch the server's entries and reconcile them with the local cache.
If the server has no entries yet and the cache does, the cached entries
are migrated to the server once.`,
	Run: runSync,
}

func runSync(cmd *cobra.Command, args []string) {
	c := initStoreContext()
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := c.Store.Load(ctx); err != nil {
		exitError("sync failed: %v", err)
	}

	fmt.Printf("In sync: %d entries\n", len(c.Store.Entries()))
}
