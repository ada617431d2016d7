package system

import (
	"time"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/render"
)

// RemindersCmd lists the reminders that would be armed right now.
type RemindersCmd struct{}

func (c *RemindersCmd) Run(ctx *cli.Context) error {
	p := ctx.Planner()
	loc := p.Location()

	if p.Permission() != models.PermissionGranted {
		ctx.Printf("Reminders are off: %s\n", permissionStatus(p.Permission()))
	}

	pending := ctx.Scheduler.Pending()
	if len(pending) == 0 {
		ctx.Println("No reminders pending")
		return nil
	}

	ctx.Println("Pending reminders:")
	for _, r := range pending {
		ctx.Printf("  %s  %s: %s\n", render.DueLabel(r.FireAt, loc), r.Title, r.Body)
	}
	ctx.Printf("\nReminders fire %d minutes before the due time while 'studyplan watch' or the TUI is running.\n",
		int(ctx.Scheduler.Lead()/time.Minute))
	return nil
}
