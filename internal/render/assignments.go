package render

import (
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
)

type AssignmentItem struct {
	Entry    models.AssignmentEntry
	Due      time.Time
	ValidDue bool
	DueLabel string
	Overdue  bool
}

// Assignments returns list in display order: ascending by due time, with
// unparseable due dates last. The input slice is not reordered.
func Assignments(list []models.AssignmentEntry, now time.Time, loc *time.Location) []AssignmentItem {
	if loc == nil {
		loc = time.Local
	}

	sorted := make([]models.AssignmentEntry, len(list))
	copy(sorted, list)
	models.SortByDue(sorted, loc)

	items := make([]AssignmentItem, 0, len(sorted))
	for _, a := range sorted {
		item := AssignmentItem{Entry: a, DueLabel: a.Due}
		if due, err := a.DueTime(loc); err == nil {
			item.Due = due
			item.ValidDue = true
			item.DueLabel = DueLabel(due, loc)
			item.Overdue = due.Before(now)
		}
		items = append(items, item)
	}
	return items
}

// DueLabel formats a due time for display, e.g. "Fri Jan 10, 09:00".
func DueLabel(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(constants.DueLabelFormat)
}
