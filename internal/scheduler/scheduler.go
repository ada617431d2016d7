package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
)

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(title, body string) error
}

// Lookup returns the current state of an assignment, or false if it no
// longer exists.
type Lookup func(id string) (models.AssignmentEntry, bool)

// PermissionFunc reports the effective notification permission.
type PermissionFunc func() models.Permission

// Reminder is an armed, not yet fired notification.
type Reminder struct {
	ID     string
	FireAt time.Time
	Title  string
	Body   string
}

type armed struct {
	timer    Timer
	reminder Reminder
	gen      uint64
}

// Scheduler arms one-shot reminders ahead of assignment due times. Timers
// are keyed by assignment id; arming an id again replaces its timer.
type Scheduler struct {
	mu         sync.Mutex
	clock      Clock
	notifier   Notifier
	lookup     Lookup
	permission PermissionFunc
	lead       time.Duration
	loc        *time.Location
	onFire     func(Reminder, error)
	timers     map[string]*armed
	gen        uint64
	stopped    bool
}

type Option func(*Scheduler)

func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

func WithLead(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.lead = d
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithOnFire registers a callback run after each delivery attempt.
func WithOnFire(fn func(Reminder, error)) Option {
	return func(s *Scheduler) { s.onFire = fn }
}

func New(n Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:      realClock{},
		notifier:   n,
		permission: func() models.Permission { return models.PermissionDefault },
		lead:       constants.DefaultReminderLead,
		loc:        time.Local,
		timers:     make(map[string]*armed),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLookup installs the fire-time lookup of live assignment state.
func (s *Scheduler) SetLookup(fn Lookup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookup = fn
}

func (s *Scheduler) SetPermission(fn PermissionFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permission = fn
}

func (s *Scheduler) Lead() time.Duration {
	return s.lead
}

// ReminderBody is the notification text for an assignment.
func ReminderBody(a models.AssignmentEntry, lead time.Duration) string {
	return fmt.Sprintf("%s for %s is due in %s!", a.Name, a.Course, leadText(lead))
}

func leadText(lead time.Duration) string {
	switch {
	case lead == time.Hour:
		return "1 hour"
	case lead%time.Hour == 0:
		return fmt.Sprintf("%d hours", int(lead/time.Hour))
	case lead == time.Minute:
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", int(lead/time.Minute))
}

// FireTime returns when a reminder for a would fire, and whether that is
// still in the future relative to now.
func (s *Scheduler) FireTime(a models.AssignmentEntry, now time.Time) (time.Time, bool) {
	due, err := a.DueTime(s.loc)
	if err != nil || !due.After(now) {
		return time.Time{}, false
	}
	fire := due.Add(-s.lead)
	if !fire.After(now) {
		return fire, false
	}
	return fire, true
}

// Schedule arms a reminder for a. It does nothing and returns false when
// permission is not granted, the due date does not parse, the due time has
// passed, or the reminder time has already passed.
func (s *Scheduler) Schedule(a models.AssignmentEntry) bool {
	granted := s.granted()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduleLocked(a, granted)
}

// granted evaluates the permission func without holding s.mu, so the func
// may consult state guarded by other locks.
func (s *Scheduler) granted() bool {
	s.mu.Lock()
	permission := s.permission
	s.mu.Unlock()
	return permission() == models.PermissionGranted
}

func (s *Scheduler) scheduleLocked(a models.AssignmentEntry, granted bool) bool {
	if s.stopped || !granted {
		return false
	}

	now := s.clock.Now()
	fire, ok := s.FireTime(a, now)
	if !ok {
		return false
	}

	s.cancelLocked(a.ID)
	s.gen++
	gen := s.gen
	id := a.ID
	entry := &armed{
		reminder: Reminder{
			ID:     id,
			FireAt: fire,
			Title:  constants.ReminderTitle,
			Body:   ReminderBody(a, s.lead),
		},
		gen: gen,
	}
	entry.timer = s.clock.AfterFunc(fire.Sub(now), func() { s.fire(id, gen) })
	s.timers[id] = entry

	logger.Debug("Reminder armed", "id", id, "fire_at", fire)
	return true
}

// Cancel disarms the reminder for id, if any.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(id)
}

func (s *Scheduler) cancelLocked(id string) bool {
	entry, ok := s.timers[id]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(s.timers, id)
	return true
}

// Reschedule replaces any reminder for a with one for its current due time.
func (s *Scheduler) Reschedule(a models.AssignmentEntry) bool {
	granted := s.granted()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(a.ID)
	return s.scheduleLocked(a, granted)
}

// RearmAll reschedules every assignment and returns how many were armed.
func (s *Scheduler) RearmAll(list []models.AssignmentEntry) int {
	granted := s.granted()
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, a := range list {
		s.cancelLocked(a.ID)
		if s.scheduleLocked(a, granted) {
			count++
		}
	}
	return count
}

// Retain cancels every armed reminder whose id is not in ids and returns
// how many were cancelled.
func (s *Scheduler) Retain(ids []string) int {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id := range s.timers {
		if !keep[id] && s.cancelLocked(id) {
			count++
		}
	}
	return count
}

// Pending returns armed reminders ordered by fire time.
func (s *Scheduler) Pending() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Reminder, 0, len(s.timers))
	for _, entry := range s.timers {
		out = append(out, entry.reminder)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FireAt.Equal(out[j].FireAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].FireAt.Before(out[j].FireAt)
	})
	return out
}

// Stop cancels every timer. Later Schedule calls are no-ops.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.timers {
		s.cancelLocked(id)
	}
	s.stopped = true
}

func (s *Scheduler) fire(id string, gen uint64) {
	s.mu.Lock()
	entry, ok := s.timers[id]
	if !ok || entry.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.timers, id)
	lookup, permission, notifier, onFire := s.lookup, s.permission, s.notifier, s.onFire
	s.mu.Unlock()

	// Permission may have been revoked since arming.
	if permission() != models.PermissionGranted {
		logger.Debug("Reminder dropped, permission not granted", "id", id)
		return
	}

	reminder := entry.reminder
	if lookup != nil {
		current, ok := lookup(id)
		if !ok {
			logger.Debug("Reminder dropped, assignment gone", "id", id)
			return
		}
		reminder.Body = ReminderBody(current, s.lead)
	}

	var err error
	if notifier != nil {
		err = notifier.Notify(reminder.Title, reminder.Body)
	}
	if err != nil {
		logger.Error("Failed to deliver reminder", "id", id, "error", err)
	} else {
		logger.Info("Reminder delivered", "id", id)
	}
	if onFire != nil {
		onFire(reminder, err)
	}
}
