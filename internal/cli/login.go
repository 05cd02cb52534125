package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var loginCode string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a GitHub OAuth code",
	Long: `Exchange a GitHub OAuth authorization code for tracker credentials.
Obtain the code by visiting your GitHub OAuth app's authorize URL and
copying the "code" query parameter from the redirect.`,
	Run: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the current session",
	Run:   runLogout,
}

func init() {
	loginCmd.Flags().StringVar(&loginCode, "code", "", "GitHub OAuth authorization code")
	_ = loginCmd.MarkFlagRequired("code")
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	c := initContext()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	body, _ := json.Marshal(map[string]string{"code": loginCode})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.Config.ServerURL+"/api/auth/callback", bytes.NewReader(body))
	if err != nil {
		exitError("failed to build login request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		exitError("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(data, &errBody)
		exitError("login failed (%d): %s", resp.StatusCode, errBody.Details)
	}

	var result struct {
		AccessToken  string `json:"access_token"`
		SessionToken string `json:"session_token"`
		User         struct {
			ID    string `json:"id"`
			Login string `json:"login"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		exitError("failed to decode login response: %v", err)
	}

	c.Config.AccessToken = result.AccessToken
	c.Config.SessionToken = result.SessionToken
	c.Config.UserID = result.User.ID
	c.Config.Login = result.User.Login
	if err := c.Config.Save(); err != nil {
		exitError("failed to save config: %v", err)
	}

	color.New(color.FgGreen).Printf("Logged in as %s\n", result.User.Login)
}

func runLogout(cmd *cobra.Command, args []string) {
	c := initContext()
	if c.Config.SessionToken == "" {
		fmt.Println("Not logged in")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.Config.ServerURL+"/api/auth/logout", nil)
	if err != nil {
		exitError("failed to build logout request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Config.SessionToken)

	if resp, err := http.DefaultClient.Do(req); err == nil {
		resp.Body.Close()
	}

	c.Config.AccessToken = ""
	c.Config.SessionToken = ""
	c.Config.UserID = ""
	c.Config.Login = ""
	if err := c.Config.Save(); err != nil {
		exitError("failed to save config: %v", err)
	}

	fmt.Println("Logged out")
}
