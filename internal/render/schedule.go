// Package render projects planner state into display structures. Nothing
// here mutates its input.
package render

import (
	"fmt"
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
)

type ActionKind int

const (
	ActionCreate ActionKind = iota
	ActionEdit
)

// Action is what activating a cell does: edit the class in it, or create
// one pre-filled with the cell's day and time.
type Action struct {
	Kind ActionKind
	ID   string
	Day  string
	Time string
}

type Cell struct {
	Day     string
	Hour    int
	Label   string
	Tooltip string
	Class   *models.ClassEntry
	Action  Action
}

func (c Cell) Empty() bool {
	return c.Class == nil
}

type Row struct {
	Hour  int
	Label string
	Cells []Cell
}

type Grid struct {
	Headers []string
	Rows    []Row
}

// Cell returns the cell for a weekday name and hour.
func (g Grid) Cell(day string, hour int) (Cell, bool) {
	idx := hour - constants.GridFirstHour
	if idx < 0 || idx >= len(g.Rows) {
		return Cell{}, false
	}
	for _, c := range g.Rows[idx].Cells {
		if c.Day == day {
			return c, true
		}
	}
	return Cell{}, false
}

// HourLabel formats a row label, e.g. 8 -> "8:00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%d:00", hour)
}

// SlotTime formats the pre-filled time of an empty cell, e.g. 8 -> "08:00".
func SlotTime(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// Tooltip is the hover text of an occupied cell.
func Tooltip(c models.ClassEntry) string {
	return fmt.Sprintf("%s\n%s (%shrs)", c.Name, c.Time, c.Duration)
}

// Schedule builds the weekly grid. A class occupies only its starting hour;
// when several classes share a cell the first in collection order wins.
func Schedule(classes []models.ClassEntry) Grid {
	grid := Grid{Headers: []string{"Time"}}
	for _, wd := range models.Weekdays {
		grid.Headers = append(grid.Headers, wd.String())
	}

	for hour := constants.GridFirstHour; hour <= constants.GridLastHour; hour++ {
		row := Row{Hour: hour, Label: HourLabel(hour)}
		for _, wd := range models.Weekdays {
			row.Cells = append(row.Cells, cellFor(classes, wd, hour))
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

func cellFor(classes []models.ClassEntry, wd time.Weekday, hour int) Cell {
	day := wd.String()
	for i := range classes {
		c := classes[i]
		start, ok := c.StartHour()
		if c.Day != day || !ok || start != hour {
			continue
		}
		return Cell{
			Day:     day,
			Hour:    hour,
			Label:   c.Name,
			Tooltip: Tooltip(c),
			Class:   &c,
			Action:  Action{Kind: ActionEdit, ID: c.ID},
		}
	}
	return Cell{
		Day:    day,
		Hour:   hour,
		Action: Action{Kind: ActionCreate, Day: day, Time: SlotTime(hour)},
	}
}
