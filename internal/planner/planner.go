// Package planner owns the class and assignment collections. Every change
// goes through a Planner method, which persists the whole collection and
// keeps reminders in step.
package planner

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/render"
	"github.com/julianstephens/studyplan/internal/scheduler"
	"github.com/julianstephens/studyplan/internal/storage"
)

// ClassDraft holds form values for creating or editing a class.
type ClassDraft struct {
	Name     string
	Day      string
	Time     string
	Duration models.Hours
}

// AssignmentDraft holds form values for creating or editing an assignment.
type AssignmentDraft struct {
	Name   string
	Course string
	Due    string
}

func (d ClassDraft) entry(id string) (models.ClassEntry, error) {
	day, err := models.ParseDay(d.Day)
	if err != nil {
		return models.ClassEntry{}, err
	}
	c := models.ClassEntry{
		ID:       id,
		Name:     strings.TrimSpace(d.Name),
		Day:      day,
		Time:     strings.TrimSpace(d.Time),
		Duration: d.Duration,
	}
	return c, c.Validate()
}

func (d AssignmentDraft) entry(id string) (models.AssignmentEntry, error) {
	a := models.AssignmentEntry{
		ID:     id,
		Name:   strings.TrimSpace(d.Name),
		Course: strings.TrimSpace(d.Course),
		Due:    strings.TrimSpace(d.Due),
	}
	return a, a.Validate()
}

type Planner struct {
	mu          sync.Mutex
	store       storage.Provider
	sched       *scheduler.Scheduler
	settings    models.Settings
	classes     []models.ClassEntry
	assignments []models.AssignmentEntry
	newID       func() string

	// Read by the scheduler without p.mu.
	permission atomic.Value // models.Permission
	available  atomic.Bool
}

type Option func(*Planner)

// WithIDFunc overrides id generation.
func WithIDFunc(fn func() string) Option {
	return func(p *Planner) { p.newID = fn }
}

// WithNotifierAvailable records whether a notifier exists on this host.
// Without one the effective permission is Unsupported.
func WithNotifierAvailable(available bool) Option {
	return func(p *Planner) { p.available.Store(available) }
}

// New loads both collections and the settings once. sched may be nil when
// reminders are not wanted.
func New(store storage.Provider, sched *scheduler.Scheduler, opts ...Option) *Planner {
	p := &Planner{
		store:       store,
		sched:       sched,
		settings:    storage.LoadSettings(store),
		classes:     storage.LoadClasses(store),
		assignments: storage.LoadAssignments(store),
		newID:       newID,
	}
	p.available.Store(true)
	for _, opt := range opts {
		opt(p)
	}
	p.permission.Store(p.settings.NotificationPermission)

	// Normalize order in memory only; storage is rewritten on the next mutation.
	if !models.IsSortedByDue(p.assignments, p.settings.Location()) {
		models.SortByDue(p.assignments, p.settings.Location())
	}

	if sched != nil {
		sched.SetLookup(p.lookupAssignment)
		sched.SetPermission(p.Permission)
		ids := make([]string, len(p.assignments))
		for i, a := range p.assignments {
			ids[i] = a.ID
		}
		if n := sched.Retain(ids); n > 0 {
			logger.Debug("Dropped reminders for removed assignments", "count", n)
		}
		if p.Permission() == models.PermissionGranted {
			n := sched.RearmAll(p.Assignments())
			logger.Debug("Reminders armed at startup", "count", n)
		}
	}
	return p
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (p *Planner) Settings() models.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

func (p *Planner) Location() *time.Location {
	return p.Settings().Location()
}

// Classes returns a copy of the class collection in stored order.
func (p *Planner) Classes() []models.ClassEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.ClassEntry(nil), p.classes...)
}

// Assignments returns a copy of the assignment collection, ordered by due.
func (p *Planner) Assignments() []models.AssignmentEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.AssignmentEntry(nil), p.assignments...)
}

func (p *Planner) Class(id string) (models.ClassEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i := p.classIndex(id); i >= 0 {
		return p.classes[i], true
	}
	return models.ClassEntry{}, false
}

func (p *Planner) Assignment(id string) (models.AssignmentEntry, bool) {
	return p.lookupAssignment(id)
}

func (p *Planner) lookupAssignment(id string) (models.AssignmentEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i := p.assignmentIndex(id); i >= 0 {
		return p.assignments[i], true
	}
	return models.AssignmentEntry{}, false
}

func (p *Planner) classIndex(id string) int {
	for i := range p.classes {
		if p.classes[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Planner) assignmentIndex(id string) int {
	for i := range p.assignments {
		if p.assignments[i].ID == id {
			return i
		}
	}
	return -1
}

// AddClassAt returns a draft pre-filled for an empty grid cell.
func (p *Planner) AddClassAt(day string, hour int) ClassDraft {
	return ClassDraft{Day: day, Time: render.SlotTime(hour)}
}
