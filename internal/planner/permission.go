package planner

import (
	"fmt"

	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/notifier"
	"github.com/julianstephens/studyplan/internal/storage"
)

// Permission is the effective notification permission. It does not take
// p.mu, so the scheduler may call it at any time.
func (p *Planner) Permission() models.Permission {
	stored, _ := p.permission.Load().(models.Permission)
	return notifier.Status(p.available.Load(), stored)
}

func (p *Planner) PermissionLabel() string {
	return notifier.StatusLabel(p.Permission())
}

// SetPermission stores the user's answer. Granting re-arms reminders for
// every assignment; denying cancels them. It returns the number armed.
func (p *Planner) SetPermission(answer models.Permission) (int, error) {
	switch answer {
	case models.PermissionGranted, models.PermissionDenied, models.PermissionDefault:
	default:
		return 0, fmt.Errorf("cannot store notification permission %q", answer)
	}
	if !p.available.Load() {
		return 0, fmt.Errorf("notifications are not supported on this system")
	}

	p.mu.Lock()
	settings := p.settings
	settings.NotificationPermission = answer
	if err := storage.SaveSettings(p.store, settings); err != nil {
		p.mu.Unlock()
		return 0, err
	}
	p.settings = settings
	p.permission.Store(answer)
	list := append([]models.AssignmentEntry(nil), p.assignments...)
	p.mu.Unlock()

	logger.Info("Notification permission changed", "permission", answer)
	if p.sched == nil {
		return 0, nil
	}
	return p.sched.RearmAll(list), nil
}
