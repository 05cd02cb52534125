package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	configDirName = ".standup"
	configFile    = "config.toml"
	cacheFile     = "cache.db"
)

// Config is the CLI configuration stored under ~/.standup.
type Config struct {
	ServerURL    string `toml:"server_url"`
	AccessToken  string `toml:"access_token"`  // GitHub API token
	SessionToken string `toml:"session_token"` // tracker API token
	UserID       string `toml:"user_id"`
	Login        string `toml:"login"`
	Repo         string `toml:"repo"`   // default "owner/name"
	Branch       string `toml:"branch"` // default branch for compose

	path string // config directory
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// LoadConfig reads the CLI configuration, returning defaults if none exists.
func LoadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerURL: "http://localhost:8080",
		path:      dir,
	}

	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.path = dir
	return cfg, nil
}

// Save writes the configuration to disk, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.path, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(c.path, configFile), data, 0o600)
}

// CachePath returns the path to the local entry cache database.
func (c *Config) CachePath() string {
	return filepath.Join(c.path, cacheFile)
}

// LoggedIn reports whether the CLI has a saved session.
func (c *Config) LoggedIn() bool {
	return c.SessionToken != "" && c.UserID != ""
}
