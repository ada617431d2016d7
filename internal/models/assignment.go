package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// dueLayouts are tried in order when parsing a due date. The first is what
// a datetime-local input produces.
var dueLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04",
}

type AssignmentEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Course string `json:"course"`
	Due    string `json:"due"` // local datetime, e.g. 2025-01-10T09:00
}

// ParseDue parses a due string in loc. RFC 3339 values carry their own
// offset and ignore loc.
func ParseDue(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date %q (expected YYYY-MM-DDTHH:MM)", s)
}

// DueTime parses the entry's due date in loc.
func (a AssignmentEntry) DueTime(loc *time.Location) (time.Time, error) {
	return ParseDue(a.Due, loc)
}

func (a *AssignmentEntry) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("assignment name cannot be empty")
	}
	if strings.TrimSpace(a.Course) == "" {
		return fmt.Errorf("assignment course cannot be empty")
	}
	if _, err := ParseDue(a.Due, time.Local); err != nil {
		return err
	}
	return nil
}

// SortByDue stably orders assignments ascending by due time. Entries whose
// due date does not parse keep their relative order after all others.
func SortByDue(list []AssignmentEntry, loc *time.Location) {
	type keyed struct {
		entry AssignmentEntry
		due   time.Time
		valid bool
	}
	items := make([]keyed, len(list))
	for i, a := range list {
		t, err := a.DueTime(loc)
		items[i] = keyed{entry: a, due: t, valid: err == nil}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].valid != items[j].valid {
			return items[i].valid
		}
		if !items[i].valid {
			return false
		}
		return items[i].due.Before(items[j].due)
	})
	for i := range items {
		list[i] = items[i].entry
	}
}

// IsSortedByDue reports whether list is non-decreasing by due time.
func IsSortedByDue(list []AssignmentEntry, loc *time.Location) bool {
	for i := 1; i < len(list); i++ {
		prev, errPrev := list[i-1].DueTime(loc)
		cur, errCur := list[i].DueTime(loc)
		if errPrev != nil {
			if errCur == nil {
				return false
			}
			continue
		}
		if errCur == nil && cur.Before(prev) {
			return false
		}
	}
	return true
}
