package assignments

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/planner"
	"github.com/julianstephens/studyplan/internal/render"
)

var overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c")).Bold(true)

// now is replaced in tests.
var now = time.Now

type AssignmentAddCmd struct {
	Name   string `arg:"" help:"Assignment name."`
	Course string `help:"Course the assignment belongs to." required:""`
	Due    string `help:"Due date and time (YYYY-MM-DDTHH:MM)." required:""`
}

func (c *AssignmentAddCmd) Validate() error {
	entry := models.AssignmentEntry{Name: c.Name, Course: c.Course, Due: c.Due}
	return entry.Validate()
}

func (c *AssignmentAddCmd) Run(ctx *cli.Context) error {
	p := ctx.Planner()
	a, err := p.AddAssignment(planner.AssignmentDraft{Name: c.Name, Course: c.Course, Due: c.Due})
	if err != nil {
		return fmt.Errorf("failed to add assignment: %w", err)
	}
	ctx.Printf("Added assignment: %s for %s, due %s (ID: %s)\n", a.Name, a.Course, dueLabel(a, p.Location()), a.ID)
	return nil
}

// AssignmentEditCmd changes only the flags that were given.
type AssignmentEditCmd struct {
	ID     string  `arg:"" help:"Assignment ID to edit."`
	Name   *string `help:"New assignment name."`
	Course *string `help:"New course."`
	Due    *string `help:"New due date and time (YYYY-MM-DDTHH:MM)."`
}

func (c *AssignmentEditCmd) Run(ctx *cli.Context) error {
	p := ctx.Planner()
	draft, ok := p.EditAssignment(c.ID)
	if !ok {
		return fmt.Errorf("assignment not found: %s", c.ID)
	}
	if c.Name != nil {
		draft.Name = *c.Name
	}
	if c.Course != nil {
		draft.Course = *c.Course
	}
	if c.Due != nil {
		draft.Due = *c.Due
	}

	found, err := p.UpdateAssignment(c.ID, draft)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if !found {
		return fmt.Errorf("assignment not found: %s", c.ID)
	}
	ctx.Printf("Updated assignment: %s (ID: %s)\n", draft.Name, c.ID)
	return nil
}

type AssignmentDeleteCmd struct {
	ID  string `arg:"" help:"Assignment ID to delete."`
	Yes bool   `short:"y" help:"Delete without asking."`
}

func (c *AssignmentDeleteCmd) Run(ctx *cli.Context) error {
	p := ctx.Planner()
	a, ok := p.Assignment(c.ID)
	if !ok {
		return fmt.Errorf("assignment not found: %s", c.ID)
	}

	if !c.Yes {
		confirmed, err := ctx.Ask(
			fmt.Sprintf("Are you sure you want to delete %q?", a.Name),
			fmt.Sprintf("%s, due %s", a.Course, dueLabel(a, p.Location())),
		)
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if _, err := p.DeleteAssignment(c.ID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	ctx.Printf("Deleted assignment: %s (ID: %s)\n", a.Name, c.ID)
	return nil
}

type AssignmentListCmd struct {
	ShowIDs bool `help:"Show assignment IDs." name:"show-ids"`
}

func (c *AssignmentListCmd) Run(ctx *cli.Context) error {
	p := ctx.Planner()
	items := render.Assignments(p.Assignments(), now(), p.Location())
	if len(items) == 0 {
		ctx.Println("No assignments found")
		return nil
	}

	ctx.Println("Assignments:")
	for _, it := range items {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", it.Entry.ID)
		}
		line := fmt.Sprintf("  %s  %s - %s%s", it.DueLabel, it.Entry.Name, it.Entry.Course, idStr)
		if it.Overdue {
			line = overdueStyle.Render(line + "  OVERDUE")
		}
		ctx.Println(line)
	}
	return nil
}

func dueLabel(a models.AssignmentEntry, loc *time.Location) string {
	due, err := a.DueTime(loc)
	if err != nil {
		return a.Due
	}
	return render.DueLabel(due, loc)
}
