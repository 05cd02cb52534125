// Package cli implements the standup command-line client.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"standup-tracker/internal/client"
	"standup-tracker/internal/client/cache"
	"standup-tracker/internal/infrastructure/github"
)

// cmdContext holds common resources for CLI commands.
type cmdContext struct {
	Config *Config
	Store  *client.Store
	GitHub *github.Client
	cache  *cache.Cache
}

// Close releases resources held by cmdContext.
func (c *cmdContext) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// initContext loads config only.
func initContext() *cmdContext {
	cfg, err := LoadConfig()
	if err != nil {
		exitError("%v", err)
	}
	return &cmdContext{Config: cfg, GitHub: github.NewClient("", "")}
}

// initStoreContext additionally opens the local cache and the tracker store.
// It requires a saved session.
func initStoreContext() *cmdContext {
	c := initContext()
	if !c.Config.LoggedIn() {
		exitError("not logged in; run 'standup login' first")
	}

	db, err := cache.Open(c.Config.CachePath())
	if err != nil {
		exitError("failed to open local cache: %v", err)
	}
	c.cache = db

	api := client.NewAPIClient(c.Config.ServerURL, c.Config.UserID, c.Config.SessionToken, 0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if os.Getenv("STANDUP_DEBUG") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	c.Store = client.NewStore(api, db, colorNotifier{}, logger)

	return c
}

var rootCmd = &cobra.Command{
	Use:   "standup",
	Short: "Daily standup tracker",
	Long: `standup tracks daily work logs built from your GitHub commit history.
Sign in with GitHub, pick a repository and compose standup entries from
the commits you actually pushed.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(branchesCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(syncCmd)
}

// exitError prints an error and exits.
func exitError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
