package planner

import (
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/storage"
)

// AddAssignment inserts a new assignment in due order, persists the
// collection and arms its reminder.
func (p *Planner) AddAssignment(d AssignmentDraft) (models.AssignmentEntry, error) {
	a, err := d.entry(p.newID())
	if err != nil {
		return models.AssignmentEntry{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	prev := p.assignments
	next := append(append([]models.AssignmentEntry(nil), prev...), a)
	models.SortByDue(next, p.settings.Location())
	p.assignments = next
	if err := storage.SaveAssignments(p.store, p.assignments); err != nil {
		p.assignments = prev
		return models.AssignmentEntry{}, err
	}

	armed := p.sched != nil && p.sched.Schedule(a)
	logger.Info("Assignment added", "id", a.ID, "name", a.Name, "due", a.Due, "reminder", armed)
	return a, nil
}

// EditAssignment returns a draft for pre-filling a form. Nothing is removed.
func (p *Planner) EditAssignment(id string) (AssignmentDraft, bool) {
	a, ok := p.lookupAssignment(id)
	if !ok {
		return AssignmentDraft{}, false
	}
	return AssignmentDraft{Name: a.Name, Course: a.Course, Due: a.Due}, true
}

// UpdateAssignment replaces an assignment, re-sorts, persists and
// reschedules its reminder.
func (p *Planner) UpdateAssignment(id string, d AssignmentDraft) (bool, error) {
	a, err := d.entry(id)
	if err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.assignmentIndex(id)
	if i < 0 {
		return false, nil
	}

	prev := p.assignments
	next := append([]models.AssignmentEntry(nil), prev...)
	next[i] = a
	models.SortByDue(next, p.settings.Location())
	p.assignments = next
	if err := storage.SaveAssignments(p.store, p.assignments); err != nil {
		p.assignments = prev
		return false, err
	}

	if p.sched != nil {
		p.sched.Reschedule(a)
	}
	logger.Info("Assignment updated", "id", id)
	return true, nil
}

// DeleteAssignment removes exactly one assignment, keeping the others in
// order, and cancels its reminder. A missing id is a no-op.
func (p *Planner) DeleteAssignment(id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.assignmentIndex(id)
	if i < 0 {
		return false, nil
	}

	prev := p.assignments
	next := make([]models.AssignmentEntry, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)
	p.assignments = next
	if err := storage.SaveAssignments(p.store, p.assignments); err != nil {
		p.assignments = prev
		return false, err
	}

	if p.sched != nil {
		p.sched.Cancel(id)
	}
	logger.Info("Assignment deleted", "id", id)
	return true, nil
}
