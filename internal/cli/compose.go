package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"standup-tracker/internal/compose"
	"standup-tracker/internal/daterange"
	"standup-tracker/internal/domain/entity"
	"standup-tracker/internal/infrastructure/github"
)

var (
	composeRange     string
	composeRepo      string
	composeBranch    string
	composeOrder     string
	composeDeselect  []string
	composeDate      string
	composeCompleted string
	composePlanned   string
	composeBlockers  string
	composeTaskIDs   []string
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a standup entry from your commits",
	Long: `Fetch commits for a date range, group them by day and create a standup
entry from the selection. Without --completed the command only previews
the commits that would be attached.`,
	Run: runCompose,
}

func init() {
	composeCmd.Flags().StringVar(&composeRange, "range", "today",
		"Date range preset: today, yesterday, this-week, last-week, last-friday")
	composeCmd.Flags().StringVar(&composeRepo, "repo", "", "Repository (owner/name); defaults to the configured one")
	composeCmd.Flags().StringVar(&composeBranch, "branch", "", "Branch to list commits from")
	composeCmd.Flags().StringVar(&composeOrder, "order", "oldest", "In-day commit order: oldest or newest")
	composeCmd.Flags().StringSliceVar(&composeDeselect, "deselect", nil, "Commit SHAs to exclude from the entry")
	composeCmd.Flags().StringVar(&composeDate, "date", "", "Entry date (YYYY-MM-DD); defaults to today")
	composeCmd.Flags().StringVar(&composeCompleted, "completed", "", "What was worked on")
	composeCmd.Flags().StringVar(&composePlanned, "planned", "", "What is planned next")
	composeCmd.Flags().StringVar(&composeBlockers, "blockers", "", "Current blockers; empty is recorded as None")
	composeCmd.Flags().StringSliceVar(&composeTaskIDs, "task", nil, "Task IDs to link to the entry")
}

func resolveRange(preset string, now time.Time) (daterange.Range, error) {
	switch preset {
	case "today":
		return daterange.Today(now), nil
	case "yesterday":
		return daterange.Yesterday(now), nil
	case "this-week":
		return daterange.ThisWeek(now), nil
	case "last-week":
		return daterange.LastWeek(now), nil
	case "last-friday":
		return daterange.LastFriday(now), nil
	default:
		return daterange.Range{}, fmt.Errorf("unknown range preset %q", preset)
	}
}

func runCompose(cmd *cobra.Command, args []string) {
	c := initStoreContext()
	defer c.Close()

	if c.Config.AccessToken == "" {
		exitError("no GitHub token; run 'standup login' first")
	}

	repo := composeRepo
	if repo == "" {
		repo = c.Config.Repo
	}
	if repo == "" {
		exitError("no repository; pass --repo or run 'standup repos --use owner/name'")
	}
	owner, name, ok := strings.Cut(repo, "/")
	if !ok {
		exitError("repository must be owner/name, got %q", repo)
	}

	branch := composeBranch
	if branch == "" {
		branch = c.Config.Branch
	}

	now := time.Now()
	r, err := resolveRange(composeRange, now)
	if err != nil {
		exitError("%v", err)
	}

	since, err := daterange.StartOfDayUTC(r.Start, time.Local)
	if err != nil {
		exitError("%v", err)
	}
	until, err := daterange.EndOfDayUTC(r.End, time.Local)
	if err != nil {
		exitError("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	commits, err := c.GitHub.ListCommits(ctx, c.Config.AccessToken, owner, name, github.CommitOptions{
		Branch: branch,
		Since:  &since,
		Until:  &until,
	})
	if err != nil {
		exitError("failed to fetch commits: %v", err)
	}

	// The API window is a UTC approximation; keep only commits whose local
	// calendar date falls inside the range.
	filtered := compose.FilterByRange(commits, r, time.Local, now)

	order := compose.OldestFirst
	if composeOrder == "newest" {
		order = compose.NewestFirst
	}
	groups := compose.GroupByDay(filtered, time.Local, order, now)

	sel := compose.NewSelection(filtered)
	for _, sha := range composeDeselect {
		sel.Toggle(sha)
	}

	printGroups(groups, sel)
	fmt.Printf("\n%d of %d commits selected (%s to %s)\n", sel.Count(), len(filtered), r.Start, r.End)

	if composeCompleted == "" {
		fmt.Println("\nPass --completed and --planned to create the entry.")
		return
	}

	date := composeDate
	if date == "" {
		date = daterange.DateString(now)
	}

	if err := c.Store.Load(ctx); err != nil {
		exitError("failed to load standups: %v", err)
	}

	entry := entity.StandupEntry{
		UserID:        c.Config.UserID,
		Date:          date,
		WorkCompleted: composeCompleted,
		WorkPlanned:   composePlanned,
		Blockers:      composeBlockers,
		TaskIDs:       composeTaskIDs,
		Commits:       sel.Snapshot(branch),
		RepoFullName:  repo,
	}
	if err := c.Store.Create(ctx, entry); err != nil {
		exitError("failed to create standup: %v", err)
	}
}

func printGroups(groups []compose.DayGroup, sel *compose.Selection) {
	yellow := color.New(color.FgYellow)
	dim := color.New(color.Faint)

	for _, g := range groups {
		color.New(color.FgCyan, color.Bold).Println(g.Date)
		for _, commit := range g.Commits {
			marker := "[ ]"
			if sel.IsSelected(commit.SHA) {
				marker = "[x]"
			}
			yellow.Printf("  %s %s ", marker, commit.ShortSHA())
			fmt.Print(commit.Summary())
			if commit.AuthorDate != nil {
				dim.Printf("  (%s)", commit.AuthorDate.Local().Format("15:04"))
			}
			fmt.Println()
		}
	}
}
