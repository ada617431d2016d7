package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/cli/assignments"
	"github.com/julianstephens/studyplan/internal/cli/backups"
	"github.com/julianstephens/studyplan/internal/cli/classes"
	"github.com/julianstephens/studyplan/internal/cli/system"
	"github.com/julianstephens/studyplan/internal/constants"
	apperrors "github.com/julianstephens/studyplan/internal/errors"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/notifier"
	"github.com/julianstephens/studyplan/internal/scheduler"
	"github.com/julianstephens/studyplan/internal/storage"
	"github.com/julianstephens/studyplan/internal/storage/postgres"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path (.db, .json or .bolt), a PostgreSQL connection string without a password, or 'postgres' to use the DSN stored in the OS keyring or STUDYPLAN_DB_CONNECTION." type:"string" default:"${default_config}"`
	Verbose bool   `short:"v" help:"Mirror debug logs to stderr."`

	Init      system.InitCmd      `cmd:"" help:"Initialize studyplan storage."`
	Tui       system.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Watch     system.WatchCmd     `cmd:"" help:"Stay running and deliver assignment reminders."`
	Reminders system.RemindersCmd `cmd:"" help:"List pending assignment reminders."`
	Class     struct {
		Add    classes.ClassAddCmd    `cmd:"" help:"Add a class to the weekly schedule."`
		Edit   classes.ClassEditCmd   `cmd:"" help:"Edit an existing class."`
		Delete classes.ClassDeleteCmd `cmd:"" help:"Delete a class."`
		List   classes.ClassListCmd   `cmd:"" help:"List all classes."`
	} `cmd:"" help:"Manage classes."`
	Schedule   classes.ScheduleCmd `cmd:"" help:"Show the weekly class schedule."`
	Assignment struct {
		Add    assignments.AssignmentAddCmd    `cmd:"" help:"Add an assignment."`
		Edit   assignments.AssignmentEditCmd   `cmd:"" help:"Edit an existing assignment."`
		Delete assignments.AssignmentDeleteCmd `cmd:"" help:"Delete an assignment."`
		List   assignments.AssignmentListCmd   `cmd:"" help:"List assignments by due date."`
	} `cmd:"" help:"Manage assignments."`
	Notify  system.NotifyCmd  `cmd:"" help:"Manage notification permission."`
	Backup  backups.BackupCmd `cmd:"" help:"Manage storage backups."`
	Export  system.ExportCmd  `cmd:"" help:"Export the schedule and assignments."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug   system.DebugCmd   `cmd:"" help:"Debug commands for troubleshooting."`
}

// configDir is where logs, backups and the .env file live. Connection
// strings have no directory of their own, so they use the default one.
func configDir(config string) string {
	if postgres.IsConnString(config) || strings.Contains(config, "=") || !strings.ContainsAny(config, `/\.`) {
		return filepath.Dir(cli.ExpandPath(constants.DefaultConfigPath))
	}
	return filepath.Dir(cli.ExpandPath(config))
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekly class schedule, assignment tracker and due-date reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	dir := configDir(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Verbose, ConfigDir: dir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	command := ctx.Command()
	appCtx := &cli.Context{Notifier: notifier.New()}

	if !strings.HasPrefix(command, "keyring") {
		store, err := cli.NewStore(CLI.Config, dir)
		if err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()
		appCtx.Store = store

		settings := models.Settings{}
		models.ApplyDefaultSettings(&settings)
		if !strings.HasPrefix(command, "init") {
			if err := store.Load(); err != nil {
				apperrors.Fatal(err)
			}
			settings = storage.LoadSettings(store)
		}

		opts := []scheduler.Option{
			scheduler.WithLead(settings.ReminderLead()),
			scheduler.WithLocation(settings.Location()),
		}
		if strings.HasPrefix(command, "watch") {
			opts = append(opts, scheduler.WithOnFire(func(r scheduler.Reminder, err error) {
				stamp := time.Now().In(settings.Location()).Format(constants.DueLabelFormat)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s  reminder failed: %s (%v)\n", stamp, r.Body, err)
					return
				}
				fmt.Printf("%s  %s: %s\n", stamp, r.Title, r.Body)
			}))
		}
		appCtx.Scheduler = scheduler.New(appCtx.Notifier, opts...)
		defer appCtx.Scheduler.Stop()
	}

	logger.Debug("Running command", "command", command, "config", CLI.Config)
	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
