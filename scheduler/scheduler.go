// Package scheduler runs the periodic fee reminder job.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const runTimeout = 5 * time.Minute

// Reminder sends the monthly reminder to every unpaid student and reports how many were mailed.
type Reminder interface {
	RemindUnpaid(ctx context.Context) (int, error)
}

// StartReminders runs r on a standard five-field cron schedule and starts the cron.
// Overlapping runs are skipped. The caller stops the returned cron on shutdown.
func StartReminders(schedule string, r Reminder, logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(schedule, func() { runReminders(r, logger) })
	if err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", schedule, err)
	}
	c.Start()
	logger.Info("fee reminders scheduled", "schedule", schedule)
	return c, nil
}

func runReminders(r Reminder, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	sent, err := r.RemindUnpaid(ctx)
	if err != nil {
		logger.Error("fee reminder run failed", "sent", sent, "error", err)
		return
	}
	logger.Info("fee reminder run finished", "sent", sent)
}
