package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/notifier"
	"github.com/julianstephens/studyplan/internal/planner"
	"github.com/julianstephens/studyplan/internal/tui/components/assignments"
	"github.com/julianstephens/studyplan/internal/tui/components/schedule"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.schedule.SetSize(msg.Width-h, msg.Height-v-4)
		m.assignments.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil
	case tickMsg:
		m.assignments.SetItems(m.assignmentItems())
		return m, tick()
	}

	switch m.state {
	case constants.StateEditClass:
		return m, m.updateClassForm(msg)
	case constants.StateEditAssignment:
		return m, m.updateAssignmentForm(msg)
	case constants.StateConfirmDelete:
		return m, m.updateConfirmDelete(msg)
	case constants.StateConfirmPermission:
		return m, m.updatePermissionForm(msg)
	}

	if handled, cmd := m.handleComponentMsg(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			m.switchTab()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Notify):
			return m, m.requestPermission()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateSchedule:
		m.schedule, cmd = m.schedule.Update(msg)
	case constants.StateAssignments:
		m.assignments, cmd = m.assignments.Update(msg)
	}
	return m, cmd
}

// filtering reports whether typed keys belong to the assignment filter.
func (m Model) filtering() bool {
	return m.state == constants.StateAssignments && m.assignments.Filtering()
}

// switchTab toggles between the two tabs.
func (m *Model) switchTab() {
	if m.state == constants.StateSchedule {
		m.state = constants.StateAssignments
	} else {
		m.state = constants.StateSchedule
	}
	m.err = nil
	m.status = ""
}

func (m *Model) handleComponentMsg(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case schedule.AddClassMsg:
		m.editingID = ""
		return true, m.openClassForm(m.planner.AddClassAt(msg.Day, msg.Hour), "New Class")

	case schedule.EditClassMsg:
		draft, ok := m.planner.EditClass(msg.ID)
		if !ok {
			m.err = fmt.Errorf("class %s not found", msg.ID)
			return true, nil
		}
		m.editingID = msg.ID
		return true, m.openClassForm(draft, "Edit Class")

	case schedule.DeleteClassMsg:
		m.confirmDelete(deleteTarget{kind: deleteClass, id: msg.ID, name: msg.Name})
		return true, nil

	case assignments.AddAssignmentMsg:
		m.editingID = ""
		return true, m.openAssignmentForm(newAssignmentFormModel(planner.AssignmentDraft{}), "New Assignment")

	case assignments.EditAssignmentMsg:
		draft, ok := m.planner.EditAssignment(msg.ID)
		if !ok {
			m.err = fmt.Errorf("assignment %s not found", msg.ID)
			return true, nil
		}
		m.editingID = msg.ID
		return true, m.openAssignmentForm(newAssignmentFormModel(draft), "Edit Assignment")

	case assignments.DeleteAssignmentMsg:
		m.confirmDelete(deleteTarget{kind: deleteAssignment, id: msg.ID, name: msg.Name})
		return true, nil
	}
	return false, nil
}

func (m *Model) openClassForm(draft planner.ClassDraft, title string) tea.Cmd {
	m.classForm = newClassFormModel(draft)
	m.form = NewClassForm(m.classForm, title)
	m.previousState = m.state
	m.state = constants.StateEditClass
	m.err = nil
	return m.form.Init()
}

func (m *Model) openAssignmentForm(fm *AssignmentFormModel, title string) tea.Cmd {
	m.assignmentForm = fm
	m.form = NewAssignmentForm(fm, title, m.planner.Location())
	m.previousState = m.state
	m.state = constants.StateEditAssignment
	m.err = nil
	return m.form.Init()
}

func (m *Model) confirmDelete(target deleteTarget) {
	m.pendingDelete = target
	m.previousState = m.state
	m.state = constants.StateConfirmDelete
}

// updateForm forwards msg to the active huh form. Esc abandons the form
// without touching stored data.
func (m *Model) updateForm(msg tea.Msg) (huh.FormState, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return huh.StateAborted, nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return m.form.State, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.classForm = nil
	m.assignmentForm = nil
	m.confirmForm = nil
	m.editingID = ""
	m.state = m.previousState
}

func (m *Model) updateClassForm(msg tea.Msg) tea.Cmd {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		if err := m.saveClass(); err != nil {
			m.err = err
			// Stay in the form so the input is not lost.
			m.form.State = huh.StateNormal
			return cmd
		}
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return cmd
}

func (m *Model) saveClass() error {
	draft, err := m.classForm.Draft()
	if err != nil {
		return err
	}
	if m.editingID == "" {
		c, err := m.planner.AddClass(draft)
		if err != nil {
			return err
		}
		m.status = fmt.Sprintf("Added %s", c.Name)
	} else {
		ok, err := m.planner.UpdateClass(m.editingID, draft)
		if err != nil {
			return err
		}
		if !ok {
			m.status = "Class no longer exists"
		} else {
			m.status = fmt.Sprintf("Updated %s", draft.Name)
		}
	}
	m.err = nil
	m.refresh()
	return nil
}

func (m *Model) updateAssignmentForm(msg tea.Msg) tea.Cmd {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		if err := m.saveAssignment(); err != nil {
			m.err = err
			m.form.State = huh.StateNormal
			return cmd
		}
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return cmd
}

func (m *Model) saveAssignment() error {
	draft := m.assignmentForm.Draft()
	if m.editingID == "" {
		a, err := m.planner.AddAssignment(draft)
		if err != nil {
			return err
		}
		m.status = fmt.Sprintf("Added %s", a.Name)
	} else {
		ok, err := m.planner.UpdateAssignment(m.editingID, draft)
		if err != nil {
			return err
		}
		if !ok {
			m.status = "Assignment no longer exists"
		} else {
			m.status = fmt.Sprintf("Updated %s", draft.Name)
		}
	}
	m.err = nil
	m.refresh()
	return nil
}

func (m *Model) updateConfirmDelete(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.deletePending()
		m.state = m.previousState
	case "n", "N", "esc":
		m.pendingDelete = deleteTarget{}
		m.state = m.previousState
	}
	return nil
}

func (m *Model) deletePending() {
	target := m.pendingDelete
	m.pendingDelete = deleteTarget{}

	var (
		found bool
		err   error
	)
	switch target.kind {
	case deleteClass:
		found, err = m.planner.DeleteClass(target.id)
	case deleteAssignment:
		found, err = m.planner.DeleteAssignment(target.id)
	}
	if err != nil {
		logger.Error("Delete failed", "id", target.id, "error", err)
		m.err = err
		return
	}
	m.err = nil
	if found {
		m.status = fmt.Sprintf("Deleted %s", target.name)
	}
	m.refresh()
}

func (m Model) canRequestPermission() bool {
	return notifier.CanRequest(m.planner.Permission())
}

// requestPermission opens the permission prompt when the answer is still
// undecided; otherwise it reports the current status.
func (m *Model) requestPermission() tea.Cmd {
	if !m.canRequestPermission() {
		m.status = m.planner.PermissionLabel()
		return nil
	}
	m.confirmForm = &ConfirmFormModel{}
	m.form = NewPermissionForm(m.confirmForm)
	m.previousState = m.state
	m.state = constants.StateConfirmPermission
	return m.form.Init()
}

func (m *Model) updatePermissionForm(msg tea.Msg) tea.Cmd {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		m.answerPermission(m.confirmForm.Confirmed)
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return cmd
}

func (m *Model) answerPermission(allow bool) {
	answer := models.PermissionDenied
	if allow {
		answer = models.PermissionGranted
	}
	armed, err := m.planner.SetPermission(answer)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = m.planner.PermissionLabel()
	if allow {
		m.status = fmt.Sprintf("%s (%d reminders armed)", m.status, armed)
	}
}
