package render

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/studyplan/internal/models"
)

func TestScheduleShape(t *testing.T) {
	grid := Schedule(nil)

	wantHeaders := []string{"Time", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	if strings.Join(grid.Headers, ",") != strings.Join(wantHeaders, ",") {
		t.Errorf("Headers = %v, want %v", grid.Headers, wantHeaders)
	}
	if len(grid.Rows) != 13 {
		t.Fatalf("got %d rows, want 13 (8:00 through 20:00)", len(grid.Rows))
	}
	if grid.Rows[0].Label != "8:00" || grid.Rows[12].Label != "20:00" {
		t.Errorf("row labels = %q..%q", grid.Rows[0].Label, grid.Rows[12].Label)
	}
	for _, row := range grid.Rows {
		if len(row.Cells) != 5 {
			t.Fatalf("row %s has %d cells", row.Label, len(row.Cells))
		}
		for _, c := range row.Cells {
			if !c.Empty() || c.Action.Kind != ActionCreate {
				t.Errorf("empty grid cell %s %d not a create action", c.Day, c.Hour)
			}
		}
	}

	cell, ok := grid.Cell("Monday", 8)
	if !ok || cell.Action.Day != "Monday" || cell.Action.Time != "08:00" {
		t.Errorf("Monday 8:00 action = %+v", cell.Action)
	}
}

func TestScheduleAlgorithmsOnTuesday(t *testing.T) {
	classes := []models.ClassEntry{
		{ID: "c1", Name: "Algorithms", Day: "Tuesday", Time: "10:00", Duration: 1.5},
	}
	grid := Schedule(classes)

	cell, ok := grid.Cell("Tuesday", 10)
	if !ok {
		t.Fatal("no Tuesday 10:00 cell")
	}
	if cell.Label != "Algorithms" {
		t.Errorf("Label = %q", cell.Label)
	}
	if cell.Tooltip != "Algorithms\n10:00 (1.5hrs)" {
		t.Errorf("Tooltip = %q", cell.Tooltip)
	}
	if cell.Action.Kind != ActionEdit || cell.Action.ID != "c1" {
		t.Errorf("Action = %+v", cell.Action)
	}

	// Duration never spans rows.
	next, _ := grid.Cell("Tuesday", 11)
	if !next.Empty() {
		t.Error("11:00 cell should be empty")
	}
	other, _ := grid.Cell("Wednesday", 10)
	if !other.Empty() {
		t.Error("Wednesday 10:00 should be empty")
	}
}

func TestScheduleCellMatching(t *testing.T) {
	classes := []models.ClassEntry{
		{ID: "a", Name: "First", Day: "Monday", Time: "9:30", Duration: 1},
		{ID: "b", Name: "Shadowed", Day: "Monday", Time: "09:00", Duration: 1},
		{ID: "c", Name: "Early", Day: "Monday", Time: "07:00", Duration: 1},
		{ID: "d", Name: "Weekend", Day: "Saturday", Time: "10:00", Duration: 1},
		{ID: "e", Name: "Broken", Day: "Friday", Time: "noon", Duration: 1},
	}
	grid := Schedule(classes)

	cell, _ := grid.Cell("Monday", 9)
	if cell.Action.ID != "a" {
		t.Errorf("Monday 9 = %q, want first in collection order", cell.Action.ID)
	}

	occupied := 0
	for _, row := range grid.Rows {
		for _, c := range row.Cells {
			if !c.Empty() {
				occupied++
			}
		}
	}
	if occupied != 1 {
		t.Errorf("occupied cells = %d, want 1", occupied)
	}
	if _, ok := grid.Cell("Monday", 7); ok {
		t.Error("7:00 is outside the grid")
	}
	if _, ok := grid.Cell("Monday", 21); ok {
		t.Error("21:00 is outside the grid")
	}
}

func TestScheduleEveryClassRendersOnce(t *testing.T) {
	var classes []models.ClassEntry
	for i, wd := range models.Weekdays {
		classes = append(classes, models.ClassEntry{
			ID: wd.String(), Name: wd.String(), Day: wd.String(), Time: SlotTime(8 + i*3), Duration: 1,
		})
	}
	grid := Schedule(classes)

	seen := map[string]int{}
	for _, row := range grid.Rows {
		for _, c := range row.Cells {
			if !c.Empty() {
				seen[c.Action.ID]++
			}
		}
	}
	for _, c := range classes {
		if seen[c.ID] != 1 {
			t.Errorf("class %s rendered %d times", c.ID, seen[c.ID])
		}
	}
}

func TestAssignmentsOrderAndOverdue(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 1, 10, 7, 30, 0, 0, loc)
	input := []models.AssignmentEntry{
		{ID: "late", Name: "Report", Course: "Bio", Due: "2025-02-01T12:00"},
		{ID: "bad", Name: "Mystery", Course: "???", Due: "soon"},
		{ID: "past", Name: "Lab", Course: "Physics", Due: "2025-01-09T17:00"},
		{ID: "essay", Name: "Essay", Course: "History", Due: "2025-01-10T09:00"},
	}
	before := append([]models.AssignmentEntry(nil), input...)

	items := Assignments(input, now, loc)

	order := []string{}
	for _, it := range items {
		order = append(order, it.Entry.ID)
	}
	if strings.Join(order, ",") != "past,essay,late,bad" {
		t.Errorf("order = %v", order)
	}
	for i := range input {
		if input[i] != before[i] {
			t.Fatal("Assignments reordered its input")
		}
	}

	byID := map[string]AssignmentItem{}
	for _, it := range items {
		byID[it.Entry.ID] = it
	}
	if !byID["past"].Overdue || byID["essay"].Overdue || byID["bad"].Overdue {
		t.Errorf("overdue flags wrong: %+v", byID)
	}
	if byID["essay"].DueLabel != "Fri Jan 10, 09:00" {
		t.Errorf("DueLabel = %q", byID["essay"].DueLabel)
	}
	if byID["bad"].DueLabel != "soon" {
		t.Errorf("invalid due label = %q, want raw value", byID["bad"].DueLabel)
	}
}

func TestAssignmentsOverdueIsStrict(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	items := Assignments([]models.AssignmentEntry{{ID: "1", Due: "2025-01-10T09:00"}}, now, time.UTC)
	if items[0].Overdue {
		t.Error("an assignment due exactly now is not overdue")
	}
}
