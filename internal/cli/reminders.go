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

var remindersCmd = &cobra.Command{
	Use:   "reminders <on|off>",
	Short: "Toggle the daily email reminder",
	Long: `Enable or disable the end-of-day email that nudges you when no
standup entry was logged for today.`,
	Args: cobra.ExactArgs(1),
	Run:  runReminders,
}

func init() {
	rootCmd.AddCommand(remindersCmd)
}

func runReminders(cmd *cobra.Command, args []string) {
	var enabled bool
	switch args[0] {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		exitError("expected 'on' or 'off', got %q", args[0])
	}

	c := initContext()
	if !c.Config.LoggedIn() {
		exitError("not logged in; run 'standup login' first")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	body, _ := json.Marshal(map[string]bool{"remindersEnabled": enabled})
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.Config.ServerURL+"/api/users/me", bytes.NewReader(body))
	if err != nil {
		exitError("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Config.SessionToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		exitError("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(data, &errBody)
		exitError("update failed (%d): %s", resp.StatusCode, errBody.Details)
	}

	var user struct {
		Email            *string `json:"email"`
		RemindersEnabled bool    `json:"remindersEnabled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		exitError("failed to decode response: %v", err)
	}

	if user.RemindersEnabled {
		color.New(color.FgGreen).Println("Daily reminders enabled")
		if user.Email == nil {
			fmt.Println("Note: GitHub reports no public email, so no mail can be sent")
		}
	} else {
		fmt.Println("Daily reminders disabled")
	}
}
