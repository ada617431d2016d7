package assignments

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyplan/internal/render"
)

type AddAssignmentMsg struct{}

type EditAssignmentMsg struct {
	ID string
}

type DeleteAssignmentMsg struct {
	ID   string
	Name string
}

var (
	normalColor  = lipgloss.Color("#2c3e50")
	overdueColor = lipgloss.Color("#e74c3c")

	titleStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Bold(true)

	descStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("205")).
			PaddingLeft(1)
)

type Item struct {
	render.AssignmentItem
}

func (i Item) Title() string {
	if i.Overdue {
		return "⚠ " + i.Entry.Name
	}
	return i.Entry.Name
}

func (i Item) Description() string {
	due := "Due: " + i.DueLabel
	if i.Overdue {
		due += " (overdue)"
	}
	return fmt.Sprintf("%s · %s", i.Entry.Course, due)
}

func (i Item) FilterValue() string {
	return i.Entry.Name + " " + i.Entry.Course
}

// delegate draws overdue items in the overdue color and the rest in the
// normal one.
type delegate struct{}

func (d delegate) Height() int                             { return 2 }
func (d delegate) Spacing() int                            { return 1 }
func (d delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d delegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(Item)
	if !ok {
		return
	}

	color := normalColor
	if item.Overdue {
		color = overdueColor
	}
	tStyle, dStyle := titleStyle, descStyle
	if index == m.Index() {
		tStyle = cursorStyle.Bold(true)
		dStyle = cursorStyle.Foreground(descStyle.GetForeground())
	}
	title := tStyle.Foreground(color).Render(item.Title())
	desc := dStyle.Render(item.Description())
	_, _ = fmt.Fprintf(w, "%s\n%s", title, desc)
}

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/enter", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []render.AssignmentItem, width, height int) Model {
	l := list.New(toListItems(items), delegate{}, width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("assignment", "assignments")

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func toListItems(items []render.AssignmentItem) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = Item{AssignmentItem: it}
	}
	return out
}

func (m *Model) SetItems(items []render.AssignmentItem) {
	m.list.SetItems(toListItems(items))
}

// Items returns the rows currently shown, in display order.
func (m Model) Items() []Item {
	out := make([]Item, 0, len(m.list.Items()))
	for _, li := range m.list.Items() {
		if it, ok := li.(Item); ok {
			out = append(out, it)
		}
	}
	return out
}

func (m Model) Selected() (Item, bool) {
	it, ok := m.list.SelectedItem().(Item)
	return it, ok
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// Filtering reports whether the filter input has focus, in which case keys
// are text rather than commands.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.Filtering() {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddAssignmentMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if it, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditAssignmentMsg{ID: it.Entry.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if it, ok := m.Selected(); ok {
				return m, func() tea.Msg {
					return DeleteAssignmentMsg{ID: it.Entry.ID, Name: it.Entry.Name}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
