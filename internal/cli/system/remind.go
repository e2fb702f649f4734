package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/softstreaks/internal/cli"
	"github.com/julianstephens/softstreaks/internal/logger"
	"github.com/julianstephens/softstreaks/internal/notifier"
)

// Sender delivers a reminder text
type Sender interface {
	Notify(ctx context.Context, text string) error
}

type RemindCmd struct {
	DryRun bool `help:"Print the reminder instead of sending it."`

	sender Sender
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	if !ctx.Config.Reminder.Enabled {
		if c.DryRun {
			ctx.Printf("Reminders are disabled in the config.\n")
		}
		return nil
	}

	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	state, err := tr.State()
	if err != nil {
		return err
	}

	text, ok := notifier.Reminder(state)
	if !ok {
		if c.DryRun {
			ctx.Printf("All habits done today, nothing to remind.\n")
		}
		return nil
	}

	if c.DryRun {
		ctx.Printf("[DRY RUN] Would notify: %s\n", text)
		return nil
	}

	sender := c.sender
	if sender == nil {
		sender = notifier.New()
	}
	if err := sender.Notify(context.Background(), text); err != nil {
		logger.Warn("Reminder not delivered", "error", err)
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	logger.Info("Reminder sent", "text", text)
	return nil
}
