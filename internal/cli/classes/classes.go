package classes

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/export"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/planner"
	"github.com/julianstephens/studyplan/internal/render"
)

type ClassAddCmd struct {
	Name     string  `arg:"" help:"Class name."`
	Day      string  `help:"Weekday (Monday-Friday, mon, 1-5)." required:""`
	Time     string  `help:"Start time (HH:MM)." required:""`
	Duration float64 `help:"Length in hours." required:""`
}

func (c *ClassAddCmd) Validate() error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}
	entry := models.ClassEntry{Name: c.Name, Day: day, Time: c.Time, Duration: models.Hours(c.Duration)}
	return entry.Validate()
}

func (c *ClassAddCmd) Run(ctx *cli.Context) error {
	class, err := ctx.Planner().AddClass(planner.ClassDraft{
		Name:     c.Name,
		Day:      c.Day,
		Time:     c.Time,
		Duration: models.Hours(c.Duration),
	})
	if err != nil {
		return fmt.Errorf("failed to add class: %w", err)
	}
	ctx.Printf("Added class: %s on %s at %s (ID: %s)\n", class.Name, class.Day, class.Time, class.ID)
	return nil
}

// ClassEditCmd changes only the flags that were given.
type ClassEditCmd struct {
	ID       string   `arg:"" help:"Class ID to edit."`
	Name     *string  `help:"New class name."`
	Day      *string  `help:"New weekday."`
	Time     *string  `help:"New start time (HH:MM)."`
	Duration *float64 `help:"New length in hours."`
}

func (c *ClassEditCmd) Run(ctx *cli.Context) error {
	p := ctx.Planner()
	draft, ok := p.EditClass(c.ID)
	if !ok {
		return fmt.Errorf("class not found: %s", c.ID)
	}
	if c.Name != nil {
		draft.Name = *c.Name
	}
	if c.Day != nil {
		draft.Day = *c.Day
	}
	if c.Time != nil {
		draft.Time = *c.Time
	}
	if c.Duration != nil {
		draft.Duration = models.Hours(*c.Duration)
	}

	found, err := p.UpdateClass(c.ID, draft)
	if err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}
	if !found {
		return fmt.Errorf("class not found: %s", c.ID)
	}
	ctx.Printf("Updated class: %s (ID: %s)\n", draft.Name, c.ID)
	return nil
}

type ClassDeleteCmd struct {
	ID  string `arg:"" help:"Class ID to delete."`
	Yes bool   `short:"y" help:"Delete without asking."`
}

func (c *ClassDeleteCmd) Run(ctx *cli.Context) error {
	p := ctx.Planner()
	class, ok := p.Class(c.ID)
	if !ok {
		return fmt.Errorf("class not found: %s", c.ID)
	}

	if !c.Yes {
		confirmed, err := ctx.Ask(fmt.Sprintf("Delete class %q?", class.Name), fmt.Sprintf("%s at %s", class.Day, class.Time))
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if _, err := p.DeleteClass(c.ID); err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	ctx.Printf("Deleted class: %s (ID: %s)\n", class.Name, c.ID)
	return nil
}

// ClassListCmd prints every class, including ones hidden in the grid by an
// earlier class in the same slot.
type ClassListCmd struct{}

func (c *ClassListCmd) Run(ctx *cli.Context) error {
	classes := ctx.Planner().Classes()
	if len(classes) == 0 {
		ctx.Println("No classes found")
		return nil
	}

	grid := render.Schedule(classes)
	ctx.Println("Classes:")
	for _, class := range classes {
		note := ""
		if hour, ok := class.StartHour(); ok {
			if cell, ok := grid.Cell(class.Day, hour); ok && cell.Class != nil && cell.Class.ID != class.ID {
				note = fmt.Sprintf(" [hidden by %s]", cell.Class.Name)
			} else if !ok {
				note = " [outside grid hours]"
			}
		}
		ctx.Printf("  %-9s %s  %s (%shrs) (ID: %s)%s\n",
			class.Day, class.Time, class.Name, class.Duration, class.ID, note)
	}
	return nil
}

// ScheduleCmd prints the weekly grid.
type ScheduleCmd struct{}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	grid := render.Schedule(ctx.Planner().Classes())
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(grid.Headers...).
		Rows(export.ScheduleRows(grid)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	ctx.Println(t.Render())
	return nil
}
