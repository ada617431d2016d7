// Package clitest builds command contexts backed by temporary storage.
package clitest

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/scheduler"
	"github.com/julianstephens/studyplan/internal/storage"
)

// Start is the clock time every test context begins at.
var Start = time.Date(2025, 1, 10, 7, 30, 0, 0, time.UTC)

// Notifier records notifications instead of delivering them.
type Notifier struct {
	Unavailable bool
	Sent        []string
	Err         error
}

func (n *Notifier) Notify(title, body string) error {
	if n.Err != nil {
		return n.Err
	}
	n.Sent = append(n.Sent, title+": "+body)
	return nil
}

func (n *Notifier) Available() bool {
	return !n.Unavailable
}

type Env struct {
	Ctx      *cli.Context
	Out      *bytes.Buffer
	Clock    *scheduler.ManualClock
	Notifier *Notifier
	Store    storage.Provider
	// Answer is returned by every confirmation prompt.
	Answer bool
	Asked  []string
}

// New returns an initialized JSON-backed context in UTC with the given
// stored permission.
func New(t *testing.T, permission models.Permission) *Env {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "studyplan.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	return WithStore(t, store, permission)
}

// WithStore wires a context around an already initialized store.
func WithStore(t *testing.T, store storage.Provider, permission models.Permission) *Env {
	t.Helper()
	settings := models.Settings{Timezone: "UTC", NotificationPermission: permission}
	if err := storage.SaveSettings(store, settings); err != nil {
		t.Fatal(err)
	}

	e := &Env{
		Out:      &bytes.Buffer{},
		Clock:    scheduler.NewManualClock(Start),
		Notifier: &Notifier{},
		Store:    store,
	}
	sched := scheduler.New(e.Notifier,
		scheduler.WithClock(e.Clock),
		scheduler.WithLocation(time.UTC),
	)
	t.Cleanup(sched.Stop)

	e.Ctx = &cli.Context{
		Store:     store,
		Scheduler: sched,
		Notifier:  e.Notifier,
		Out:       e.Out,
		Confirm: func(title, _ string) (bool, error) {
			e.Asked = append(e.Asked, title)
			return e.Answer, nil
		},
	}
	return e
}
