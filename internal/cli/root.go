package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyplan/internal/backup"
	"github.com/julianstephens/studyplan/internal/keyring"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/planner"
	"github.com/julianstephens/studyplan/internal/scheduler"
	"github.com/julianstephens/studyplan/internal/storage"
	"github.com/julianstephens/studyplan/internal/storage/bolt"
	"github.com/julianstephens/studyplan/internal/storage/postgres"
	"github.com/julianstephens/studyplan/internal/storage/sqlite"
)

// ErrBackupUnsupported is returned by file backup commands on a PostgreSQL store.
var ErrBackupUnsupported = errors.New("backups are only supported for file-based storage; use pg_dump for PostgreSQL")

// Notifier is the delivery side of reminders as seen by commands.
type Notifier interface {
	Notify(title, body string) error
	Available() bool
}

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Notifier  Notifier
	// Out receives command output. Nil means stdout.
	Out io.Writer
	// Confirm asks a yes/no question. Nil means an interactive huh prompt.
	Confirm func(title, description string) (bool, error)

	planner *planner.Planner
}

// Planner builds the planner on first use. The store must already be loaded.
func (c *Context) Planner() *planner.Planner {
	if c.planner == nil {
		available := c.Notifier != nil && c.Notifier.Available()
		c.planner = planner.New(c.Store, c.Scheduler, planner.WithNotifierAvailable(available))
	}
	return c.planner
}

// ReloadPlanner re-reads the store and rebuilds the planner, re-arming
// reminders from the fresh state.
func (c *Context) ReloadPlanner() (*planner.Planner, error) {
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	c.planner = nil
	return c.Planner(), nil
}

func (c *Context) writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	_, _ = fmt.Fprintln(c.writer(), args...)
}

// Ask returns the user's answer to a yes/no question.
func (c *Context) Ask(title, description string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

// BackupManager returns a backup manager for file-based stores.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*postgres.Store); ok {
		return nil, ErrBackupUnsupported
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup creates an automatic backup and logs failures
// without interrupting the command.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// usesStoredConnection reports whether config names PostgreSQL without a
// DSN, meaning the DSN comes from the keyring or environment.
func usesStoredConnection(config string) bool {
	switch strings.ToLower(strings.TrimSpace(config)) {
	case "postgres", "postgresql":
		return true
	}
	return false
}

// NewStore picks a storage backend for config: a PostgreSQL DSN (or the
// bare word "postgres" to use the stored DSN), a .json or .bolt file, or
// otherwise a SQLite database.
func NewStore(config, configDir string) (storage.Provider, error) {
	if usesStoredConnection(config) {
		connStr, err := keyring.ResolveConnectionString(configDir)
		if err != nil {
			return nil, fmt.Errorf("%w: run 'studyplan keyring set' or set the environment variable", err)
		}
		config = connStr
	}

	if postgres.IsConnString(config) || strings.Contains(config, "host=") {
		if ok, err := postgres.ValidateConnString(config); !ok {
			return nil, err
		}
		return postgres.New(config), nil
	}

	path := ExpandPath(config)
	switch {
	case strings.EqualFold(filepath.Ext(path), ".json"):
		return storage.NewJSONStore(path), nil
	case bolt.IsBoltPath(path):
		return bolt.NewStore(path), nil
	}
	return sqlite.NewStore(path), nil
}
