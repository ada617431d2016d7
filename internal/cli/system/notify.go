package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/notifier"
	"github.com/julianstephens/studyplan/internal/render"
	"github.com/julianstephens/studyplan/internal/scheduler"
)

// now is replaced in tests.
var now = time.Now

type NotifyCmd struct {
	Status  NotifyStatusCmd  `cmd:"" help:"Show whether reminders can be delivered." default:"1"`
	Request NotifyRequestCmd `cmd:"" help:"Ask for permission to send reminders."`
	Test    NotifyTestCmd    `cmd:"" help:"Send a test reminder."`
}

// permissionStatus describes p, including the undecided state that has no
// label of its own.
func permissionStatus(p models.Permission) string {
	if label := notifier.StatusLabel(p); label != "" {
		return label
	}
	return "Notifications not requested"
}

type NotifyStatusCmd struct{}

func (c *NotifyStatusCmd) Run(ctx *cli.Context) error {
	p := ctx.Planner()
	ctx.Println(permissionStatus(p.Permission()))
	if notifier.CanRequest(p.Permission()) {
		ctx.Println("Run 'studyplan notify request' to enable assignment reminders.")
	}
	if p.Permission() == models.PermissionUnsupported {
		ctx.Printf("Start %s to receive notifications.\n", constants.TrayExecutableName)
	}
	return nil
}

type NotifyRequestCmd struct {
	Yes bool `short:"y" help:"Grant permission without asking."`
}

func (c *NotifyRequestCmd) Run(ctx *cli.Context) error {
	p := ctx.Planner()
	if p.Permission() == models.PermissionUnsupported {
		return fmt.Errorf("notifications are not supported: %s is not running", constants.TrayExecutableName)
	}

	allow := c.Yes
	if !allow {
		var err error
		allow, err = ctx.Ask(
			"Enable assignment reminders?",
			"A notification is sent one hour before each assignment is due.",
		)
		if err != nil {
			return err
		}
	}

	answer := models.PermissionDenied
	if allow {
		answer = models.PermissionGranted
	}
	armed, err := p.SetPermission(answer)
	if err != nil {
		return fmt.Errorf("failed to save notification permission: %w", err)
	}

	ctx.Println(permissionStatus(p.Permission()))
	if allow {
		ctx.Printf("%d reminders armed. Keep 'studyplan watch' running to receive them.\n", armed)
	}
	return nil
}

type NotifyTestCmd struct {
	DryRun bool `help:"Print the notification instead of sending it."`
}

func (c *NotifyTestCmd) Run(ctx *cli.Context) error {
	p := ctx.Planner()
	title, body := constants.ReminderTitle, "This is a test reminder."
	if items := render.Assignments(p.Assignments(), now(), p.Location()); len(items) > 0 {
		body = scheduler.ReminderBody(items[0].Entry, ctx.Scheduler.Lead())
	}

	if c.DryRun {
		ctx.Printf("[DRY RUN] %s: %s\n", title, body)
		return nil
	}

	if ctx.Notifier == nil {
		return errors.New("no notifier configured")
	}
	if err := ctx.Notifier.Notify(title, body); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	ctx.Println("✓ Test notification sent")
	return nil
}
