package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"standup-tracker/internal/domain/entity"
)

var (
	editDate      string
	editCompleted string
	editPlanned   string
	editBlockers  string
	editTaskIDs   []string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a standup entry",
	Long:  `Update fields of an existing entry. Only the flags you pass are changed.`,
	Args:  cobra.ExactArgs(1),
	Run:   runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editDate, "date", "", "New entry date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editCompleted, "completed", "", "New worked-on text")
	editCmd.Flags().StringVar(&editPlanned, "planned", "", "New planned text")
	editCmd.Flags().StringVar(&editBlockers, "blockers", "", "New blockers text")
	editCmd.Flags().StringSliceVar(&editTaskIDs, "task", nil, "Replace the linked task IDs")
}

func runEdit(cmd *cobra.Command, args []string) {
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

	var upd entity.StandupUpdate
	if cmd.Flags().Changed("date") {
		upd.Date = &editDate
	}
	if cmd.Flags().Changed("completed") {
		upd.WorkCompleted = &editCompleted
	}
	if cmd.Flags().Changed("planned") {
		upd.WorkPlanned = &editPlanned
	}
	if cmd.Flags().Changed("blockers") {
		upd.Blockers = &editBlockers
	}
	if cmd.Flags().Changed("task") {
		upd.TaskIDs = editTaskIDs
	}

	if upd.Date == nil && upd.WorkCompleted == nil && upd.WorkPlanned == nil &&
		upd.Blockers == nil && upd.TaskIDs == nil {
		exitError("nothing to change; pass at least one flag")
	}

	if err := c.Store.Update(ctx, entry.ID, upd); err != nil {
		exitError("failed to update standup: %v", err)
	}
}
