package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/planner"
)

type ClassFormModel struct {
	Name     string
	Day      string
	Time     string
	Duration string
}

func newClassFormModel(d planner.ClassDraft) *ClassFormModel {
	fm := &ClassFormModel{
		Name: d.Name,
		Day:  d.Day,
		Time: d.Time,
	}
	if d.Duration > 0 {
		fm.Duration = d.Duration.String()
	}
	if fm.Day == "" {
		fm.Day = models.Weekdays[0].String()
	}
	return fm
}

func (fm ClassFormModel) Draft() (planner.ClassDraft, error) {
	dur, err := parseDuration(fm.Duration)
	if err != nil {
		return planner.ClassDraft{}, err
	}
	return planner.ClassDraft{
		Name:     fm.Name,
		Day:      fm.Day,
		Time:     fm.Time,
		Duration: dur,
	}, nil
}

type AssignmentFormModel struct {
	Name   string
	Course string
	Due    string
}

func newAssignmentFormModel(d planner.AssignmentDraft) *AssignmentFormModel {
	return &AssignmentFormModel{Name: d.Name, Course: d.Course, Due: d.Due}
}

func (fm AssignmentFormModel) Draft() planner.AssignmentDraft {
	return planner.AssignmentDraft{Name: fm.Name, Course: fm.Course, Due: fm.Due}
}

// ConfirmFormModel backs a yes/no huh form.
type ConfirmFormModel struct {
	Confirmed bool
}

func parseDuration(s string) (models.Hours, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("duration must be a number of hours")
	}
	if f <= 0 {
		return 0, fmt.Errorf("duration must be greater than zero")
	}
	return models.Hours(f), nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func validateClock(s string) error {
	if _, err := time.Parse(constants.TimeFormat, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("time must be HH:MM")
	}
	return nil
}

func dayOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(models.Weekdays))
	for _, wd := range models.Weekdays {
		opts = append(opts, huh.NewOption(wd.String(), wd.String()))
	}
	return opts
}

// NewClassForm builds the create/edit form for a class.
func NewClassForm(fm *ClassFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title),
			huh.NewInput().
				Title("Class Name").
				Value(&fm.Name).
				Validate(required("class name")),
			huh.NewSelect[string]().
				Title("Day").
				Options(dayOptions()...).
				Value(&fm.Day),
			huh.NewInput().
				Title("Start Time").
				Placeholder("HH:MM").
				Value(&fm.Time).
				Validate(validateClock),
			huh.NewInput().
				Title("Duration (hours)").
				Placeholder("1.5").
				Value(&fm.Duration).
				Validate(func(s string) error {
					_, err := parseDuration(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewAssignmentForm builds the create/edit form for an assignment. Due
// dates are validated in loc.
func NewAssignmentForm(fm *AssignmentFormModel, title string, loc *time.Location) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title),
			huh.NewInput().
				Title("Assignment Name").
				Value(&fm.Name).
				Validate(required("assignment name")),
			huh.NewInput().
				Title("Course").
				Value(&fm.Course).
				Validate(required("course")),
			huh.NewInput().
				Title("Due Date").
				Description("YYYY-MM-DDTHH:MM").
				Placeholder(time.Now().In(loc).Format(constants.DueFormat)).
				Value(&fm.Due).
				Validate(func(s string) error {
					_, err := models.ParseDue(s, loc)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewPermissionForm asks whether reminders may be delivered.
func NewPermissionForm(fm *ConfirmFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable assignment reminders?").
				Description("A notification is sent one hour before each assignment is due.").
				Affirmative("Allow").
				Negative("Block").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
