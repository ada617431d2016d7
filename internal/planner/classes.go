package planner

import (
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/storage"
)

// AddClass appends a new class and persists the collection.
func (p *Planner) AddClass(d ClassDraft) (models.ClassEntry, error) {
	c, err := d.entry(p.newID())
	if err != nil {
		return models.ClassEntry{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	prev := p.classes
	p.classes = append(append([]models.ClassEntry(nil), prev...), c)
	if err := storage.SaveClasses(p.store, p.classes); err != nil {
		p.classes = prev
		return models.ClassEntry{}, err
	}

	logger.Info("Class added", "id", c.ID, "name", c.Name, "day", c.Day, "time", c.Time)
	return c, nil
}

// EditClass returns a draft of the class for pre-filling a form. The class
// stays in the collection until UpdateClass or DeleteClass.
func (p *Planner) EditClass(id string) (ClassDraft, bool) {
	c, ok := p.Class(id)
	if !ok {
		return ClassDraft{}, false
	}
	return ClassDraft{Name: c.Name, Day: c.Day, Time: c.Time, Duration: c.Duration}, true
}

// UpdateClass replaces a class in place, keeping its id and position.
func (p *Planner) UpdateClass(id string, d ClassDraft) (bool, error) {
	c, err := d.entry(id)
	if err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.classIndex(id)
	if i < 0 {
		return false, nil
	}

	prev := p.classes
	p.classes = append([]models.ClassEntry(nil), prev...)
	p.classes[i] = c
	if err := storage.SaveClasses(p.store, p.classes); err != nil {
		p.classes = prev
		return false, err
	}

	logger.Info("Class updated", "id", id)
	return true, nil
}

// DeleteClass removes exactly one class. A missing id is a no-op.
func (p *Planner) DeleteClass(id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.classIndex(id)
	if i < 0 {
		return false, nil
	}

	prev := p.classes
	next := make([]models.ClassEntry, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)
	p.classes = next
	if err := storage.SaveClasses(p.store, p.classes); err != nil {
		p.classes = prev
		return false, err
	}

	logger.Info("Class deleted", "id", id)
	return true, nil
}
