// Package cron runs the scheduled standup reminder check.
package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"standup-tracker/internal/daterange"
	"standup-tracker/internal/domain/repository"
)

// ReminderMailer sends a standup reminder email. Implemented by the smtp
// mailer.
type ReminderMailer interface {
	SendStandupReminder(ctx context.Context, to, name, date string) error
}

// ReminderChecker emails users who have reminders enabled and no standup
// entry for the current day.
type ReminderChecker struct {
	users    repository.UserRepository
	standups repository.StandupRepository
	mailer   ReminderMailer
	cron     *cron.Cron
	spec     string
	logger   *slog.Logger
}

// NewReminderChecker creates a new reminder checker. The spec is a standard
// cron expression, e.g. "0 17 * * 1-5" for 17:00 on weekdays.
func NewReminderChecker(
	users repository.UserRepository,
	standups repository.StandupRepository,
	mailer ReminderMailer,
	spec string,
	logger *slog.Logger,
) *ReminderChecker {
	return &ReminderChecker{
		users:    users,
		standups: standups,
		mailer:   mailer,
		cron:     cron.New(),
		spec:     spec,
		logger:   logger,
	}
}

// Start schedules the reminder check.
func (c *ReminderChecker) Start() error {
	_, err := c.cron.AddFunc(c.spec, c.checkReminders)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	c.cron.Start()
	c.logger.Info("reminder checker started", "spec", c.spec)

	return nil
}

// Stop stops the checker and waits for a running check to finish.
func (c *ReminderChecker) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
	c.logger.Info("reminder checker stopped")
}

func (c *ReminderChecker) checkReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	today := daterange.DateString(time.Now())

	users, err := c.users.GetReminderCandidates(ctx)
	if err != nil {
		c.logger.Error("failed to load reminder candidates", "error", err)
		return
	}

	sent := 0
	for _, user := range users {
		exists, err := c.standups.ExistsForDate(ctx, user.ID, today)
		if err != nil {
			c.logger.Error("failed to check standup existence", "error", err, "userId", user.ID)
			continue
		}
		if exists || user.Email == nil {
			continue
		}

		name := user.Name
		if name == "" {
			name = user.Login
		}
		if err := c.mailer.SendStandupReminder(ctx, *user.Email, name, today); err != nil {
			c.logger.Error("failed to send reminder", "error", err, "userId", user.ID)
			continue
		}
		sent++
	}

	c.logger.Info("reminder check completed", "candidates", len(users), "sent", sent)
}
