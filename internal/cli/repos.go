package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var reposUse string

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List your GitHub repositories",
	Long:  `List repositories visible to the signed-in user, most recently updated first.`,
	Run:   runRepos,
}

func init() {
	reposCmd.Flags().StringVar(&reposUse, "use", "", "Set the given repository (owner/name) as the default for compose")
}

func runRepos(cmd *cobra.Command, args []string) {
	c := initContext()
	if c.Config.AccessToken == "" {
		exitError("not logged in; run 'standup login' first")
	}

	if reposUse != "" {
		c.Config.Repo = reposUse
		if err := c.Config.Save(); err != nil {
			exitError("failed to save config: %v", err)
		}
		color.New(color.FgGreen).Printf("Default repository set to %s\n", reposUse)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, err := c.GitHub.ListRepos(ctx, c.Config.AccessToken)
	if err != nil {
		exitError("failed to list repositories: %v", err)
	}

	cyan := color.New(color.FgCyan)
	for _, repo := range repos {
		marker := "  "
		if repo.FullName == c.Config.Repo {
			marker = "* "
		}
		if repo.Private {
			cyan.Printf("%s%s (private)\n", marker, repo.FullName)
		} else {
			fmt.Printf("%s%s\n", marker, repo.FullName)
		}
	}
}
