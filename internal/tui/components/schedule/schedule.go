package schedule

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/render"
)

// AddClassMsg asks for a new class pre-filled with an empty cell's slot.
type AddClassMsg struct {
	Day  string
	Hour int
}

type EditClassMsg struct {
	ID string
}

type DeleteClassMsg struct {
	ID   string
	Name string
}

const cellWidth = 14

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	hourStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Padding(0, 1)

	classStyle = cellStyle.
			Foreground(lipgloss.Color("252")).
			Bold(true)

	selectedStyle = cellStyle.
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	tooltipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open cell"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add class"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit class"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete class"),
		),
	}
}

// Model is the weekly class grid with a cell cursor.
type Model struct {
	grid   render.Grid
	keys   KeyMap
	row    int
	col    int
	width  int
	height int
}

func New(classes []models.ClassEntry) Model {
	return Model{
		grid: render.Schedule(classes),
		keys: DefaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) SetClasses(classes []models.ClassEntry) {
	m.grid = render.Schedule(classes)
	m.clamp()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// Selected returns the cell under the cursor.
func (m Model) Selected() (render.Cell, bool) {
	if m.row < 0 || m.row >= len(m.grid.Rows) {
		return render.Cell{}, false
	}
	cells := m.grid.Rows[m.row].Cells
	if m.col < 0 || m.col >= len(cells) {
		return render.Cell{}, false
	}
	return cells[m.col], true
}

// Cursor reports the selected row and column indexes.
func (m Model) Cursor() (row, col int) {
	return m.row, m.col
}

func (m *Model) clamp() {
	if m.row >= len(m.grid.Rows) {
		m.row = len(m.grid.Rows) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	if m.col >= len(models.Weekdays) {
		m.col = len(models.Weekdays) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.row--
	case key.Matches(keyMsg, m.keys.Down):
		m.row++
	case key.Matches(keyMsg, m.keys.Left):
		m.col--
	case key.Matches(keyMsg, m.keys.Right):
		m.col++
	case key.Matches(keyMsg, m.keys.Enter):
		return m, m.activate()
	case key.Matches(keyMsg, m.keys.Add):
		if cell, ok := m.Selected(); ok {
			return m, func() tea.Msg {
				return AddClassMsg{Day: cell.Day, Hour: cell.Hour}
			}
		}
	case key.Matches(keyMsg, m.keys.Edit):
		if cell, ok := m.Selected(); ok && !cell.Empty() {
			return m, func() tea.Msg {
				return EditClassMsg{ID: cell.Class.ID}
			}
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if cell, ok := m.Selected(); ok && !cell.Empty() {
			return m, func() tea.Msg {
				return DeleteClassMsg{ID: cell.Class.ID, Name: cell.Class.Name}
			}
		}
	}
	m.clamp()
	return m, nil
}

// activate follows the selected cell's action: edit an occupied cell,
// create in an empty one.
func (m Model) activate() tea.Cmd {
	cell, ok := m.Selected()
	if !ok {
		return nil
	}
	switch cell.Action.Kind {
	case render.ActionEdit:
		return func() tea.Msg { return EditClassMsg{ID: cell.Action.ID} }
	default:
		return func() tea.Msg { return AddClassMsg{Day: cell.Day, Hour: cell.Hour} }
	}
}

// Rows returns the grid body as table rows: the hour label followed by one
// label per weekday.
func (m Model) Rows() [][]string {
	rows := make([][]string, 0, len(m.grid.Rows))
	for _, r := range m.grid.Rows {
		row := []string{r.Label}
		for _, c := range r.Cells {
			row = append(row, truncate(c.Label, cellWidth-2))
		}
		rows = append(rows, row)
	}
	return rows
}

func (m Model) View() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers(m.grid.Headers...).
		Rows(m.Rows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return hourStyle
			case row == m.row && col-1 == m.col:
				return selectedStyle
			}
			if row < len(m.grid.Rows) && col-1 < len(m.grid.Rows[row].Cells) && !m.grid.Rows[row].Cells[col-1].Empty() {
				return classStyle
			}
			return cellStyle
		})

	return lipgloss.JoinVertical(lipgloss.Left, t.Render(), tooltipStyle.Render(m.Tooltip()))
}

// Tooltip describes the selected cell on one line.
func (m Model) Tooltip() string {
	cell, ok := m.Selected()
	if !ok {
		return ""
	}
	if cell.Empty() {
		return fmt.Sprintf("%s %s is free. Press enter to add a class.", cell.Day, render.SlotTime(cell.Hour))
	}
	return strings.ReplaceAll(cell.Tooltip, "\n", " · ")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
