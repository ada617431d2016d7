package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/planner"
	"github.com/julianstephens/studyplan/internal/render"
	"github.com/julianstephens/studyplan/internal/tui/components/assignments"
	"github.com/julianstephens/studyplan/internal/tui/components/schedule"
)

// tickMsg refreshes overdue highlighting.
type tickMsg time.Time

type deleteKind int

const (
	deleteClass deleteKind = iota
	deleteAssignment
)

type deleteTarget struct {
	kind deleteKind
	id   string
	name string
}

type Model struct {
	planner        *planner.Planner
	now            func() time.Time
	state          constants.SessionState
	previousState  constants.SessionState
	keys           KeyMap
	help           help.Model
	schedule       schedule.Model
	assignments    assignments.Model
	form           *huh.Form
	classForm      *ClassFormModel
	assignmentForm *AssignmentFormModel
	confirmForm    *ConfirmFormModel
	editingID      string // empty while creating
	pendingDelete  deleteTarget
	status         string
	err            error
	quitting       bool
	width          int
	height         int
}

type Option func(*Model)

// WithNow overrides the clock used for overdue highlighting.
func WithNow(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

func NewModel(p *planner.Planner, opts ...Option) Model {
	m := Model{
		planner:  p,
		now:      time.Now,
		state:    constants.StateSchedule,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		schedule: schedule.New(p.Classes()),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.assignments = assignments.New(m.assignmentItems(), 0, 0)
	return m
}

func (m Model) assignmentItems() []render.AssignmentItem {
	return render.Assignments(m.planner.Assignments(), m.now(), m.planner.Location())
}

// refresh reloads both views from the planner.
func (m *Model) refresh() {
	m.schedule.SetClasses(m.planner.Classes())
	m.assignments.SetItems(m.assignmentItems())
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateSchedule:
		sk := m.schedule.Keys()
		keys = append(keys, sk.Enter, sk.Delete)
	case constants.StateAssignments:
		ak := m.assignments.Keys()
		keys = append(keys, ak.Add, ak.Edit, ak.Delete)
	}
	if m.canRequestPermission() {
		keys = append(keys, m.keys.Notify)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	if m.canRequestPermission() {
		global = append(global, m.keys.Notify)
	}

	var actions []key.Binding
	switch m.state {
	case constants.StateSchedule:
		sk := m.schedule.Keys()
		actions = []key.Binding{sk.Up, sk.Down, sk.Left, sk.Right, sk.Enter, sk.Add, sk.Edit, sk.Delete}
	case constants.StateAssignments:
		ak := m.assignments.Keys()
		actions = []key.Binding{ak.Add, ak.Edit, ak.Delete}
	}
	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// State reports the active session state.
func (m Model) State() constants.SessionState {
	return m.state
}

// Err returns the last error shown in the status line.
func (m Model) Err() error {
	return m.err
}
