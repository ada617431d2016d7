package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyplan/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateSchedule:
		content = docStyle.Render(m.schedule.View())
	case constants.StateAssignments:
		content = docStyle.Render(m.assignments.View())
	case constants.StateEditClass, constants.StateEditAssignment, constants.StateConfirmPermission:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.viewTabs(), permissionStyle.Render(m.permissionText()))
}

func (m Model) viewTabs() string {
	active := m.state
	switch m.state {
	case constants.StateSchedule, constants.StateAssignments:
	default:
		active = m.previousState
	}

	var tabs []string
	for _, tab := range []struct {
		title string
		state constants.SessionState
	}{
		{"Schedule", constants.StateSchedule},
		{"Assignments", constants.StateAssignments},
	} {
		if tab.state == active {
			tabs = append(tabs, activeTabStyle.Render(tab.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tab.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// permissionText is the status label, or the request hint while the user
// has not decided yet.
func (m Model) permissionText() string {
	if label := m.planner.PermissionLabel(); label != "" {
		return label
	}
	return "Press n to enable reminders"
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewConfirmDelete() string {
	kind := "class"
	if m.pendingDelete.kind == deleteAssignment {
		kind = "assignment"
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %s %q?", kind, m.pendingDelete.name)),
			warningStyle.Render("This cannot be undone."),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
