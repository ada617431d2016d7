// Package export writes the schedule grid and assignment list to a PDF.
package export

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/render"
)

var (
	stripe  = color.Color{Red: 240, Green: 240, Blue: 240}
	overdue = color.Color{Red: 0xe7, Green: 0x4c, Blue: 0x3c}
)

// PDF renders both views into a single A4 document at path.
func PDF(path string, grid render.Grid, items []render.AssignmentItem, generated time.Time) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(15, 10, 15)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Study Plan", props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text("Generated "+generated.Format(constants.DueLabelFormat), props.Text{
					Style: consts.Normal,
					Align: consts.Center,
					Size:  10,
				})
			})
		})
	})

	sectionTitle(m, "Weekly Schedule")
	m.TableList(grid.Headers, ScheduleRows(grid), props.TableList{
		HeaderProp: props.TableListContent{
			Size:      9,
			GridSizes: []uint{2, 2, 2, 2, 2, 2},
		},
		ContentProp: props.TableListContent{
			Size:      8,
			GridSizes: []uint{2, 2, 2, 2, 2, 2},
		},
		Align:                consts.Center,
		AlternatedBackground: &stripe,
		HeaderContentSpace:   1,
		Line:                 true,
	})

	m.Row(5, func() {})
	sectionTitle(m, "Assignments")

	if len(items) == 0 {
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text("No assignments.", props.Text{Size: 10, Style: consts.Italic})
			})
		})
	} else {
		for _, row := range AssignmentRows(items) {
			textColor := color.NewBlack()
			if row.Overdue {
				textColor = overdue
			}
			m.Row(7, func() {
				for i, cell := range row.Cells {
					m.Col(assignmentGrid[i], func() {
						m.Text(cell, props.Text{Size: 10, Color: textColor})
					})
				}
			})
		}
	}

	if err := m.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

var assignmentGrid = []uint{4, 3, 3, 2}

func sectionTitle(m pdf.Maroto, title string) {
	m.Row(10, func() {
		m.Col(12, func() {
			m.Text(title, props.Text{
				Top:   4,
				Style: consts.Bold,
				Size:  13,
			})
		})
	})
}

// ScheduleRows flattens the grid into table rows: the hour label then one
// class name (or "") per weekday.
func ScheduleRows(grid render.Grid) [][]string {
	rows := make([][]string, 0, len(grid.Rows))
	for _, r := range grid.Rows {
		row := []string{r.Label}
		for _, c := range r.Cells {
			row = append(row, c.Label)
		}
		rows = append(rows, row)
	}
	return rows
}

type AssignmentRow struct {
	Cells   []string
	Overdue bool
}

// AssignmentRows lists name, course, due label and status per item, with a
// header row first.
func AssignmentRows(items []render.AssignmentItem) []AssignmentRow {
	rows := []AssignmentRow{{Cells: []string{"Assignment", "Course", "Due", "Status"}}}
	for _, it := range items {
		status := ""
		if it.Overdue {
			status = "Overdue"
		}
		rows = append(rows, AssignmentRow{
			Cells:   []string{it.Entry.Name, it.Entry.Course, it.DueLabel, status},
			Overdue: it.Overdue,
		})
	}
	return rows
}
