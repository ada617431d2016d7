package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
)

// WatchCmd keeps the process alive so armed reminders can fire.
type WatchCmd struct {
	Refresh time.Duration `help:"How often to re-read storage for changes made elsewhere (0 disables)." default:"5m"`
	For     time.Duration `help:"Stop after this long instead of waiting for a signal." hidden:""`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.watch(sigCtx, ctx)
}

func (c *WatchCmd) watch(runCtx context.Context, ctx *cli.Context) error {
	if c.For > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, c.For)
		defer cancel()
	}
	defer ctx.Scheduler.Stop()

	p := ctx.Planner()
	if p.Permission() != models.PermissionGranted {
		ctx.Printf("Reminders are off: %s\n", permissionStatus(p.Permission()))
		ctx.Println("Run 'studyplan notify request' to enable them.")
	}
	ctx.Printf("Watching %d assignments, %d reminders armed. Press Ctrl+C to stop.\n",
		len(p.Assignments()), len(ctx.Scheduler.Pending()))

	var refresh <-chan time.Time
	if c.Refresh > 0 {
		ticker := time.NewTicker(c.Refresh)
		defer ticker.Stop()
		refresh = ticker.C
	}

	for {
		select {
		case <-runCtx.Done():
			ctx.Println("Stopping reminders.")
			return nil
		case <-refresh:
			if _, err := ctx.ReloadPlanner(); err != nil {
				logger.Error("Failed to reload storage", "error", err)
				continue
			}
			logger.Debug("Storage reloaded", "pending", len(ctx.Scheduler.Pending()))
		}
	}
}
