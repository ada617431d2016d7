package assignments

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/studyplan/internal/cli/clitest"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/storage"
)

func ptr[T any](v T) *T { return &v }

func init() {
	now = func() time.Time { return clitest.Start }
}

func add(t *testing.T, env *clitest.Env, name, course, due string) models.AssignmentEntry {
	t.Helper()
	cmd := &AssignmentAddCmd{Name: name, Course: course, Due: due}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, a := range env.Ctx.Planner().Assignments() {
		if a.Name == name {
			return a
		}
	}
	t.Fatalf("assignment %q not stored", name)
	return models.AssignmentEntry{}
}

func TestAssignmentAddValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     AssignmentAddCmd
		wantErr bool
	}{
		{"valid", AssignmentAddCmd{Name: "Essay", Course: "History", Due: "2025-01-10T09:00"}, false},
		{"missing course", AssignmentAddCmd{Name: "Essay", Course: "", Due: "2025-01-10T09:00"}, true},
		{"bad due", AssignmentAddCmd{Name: "Essay", Course: "History", Due: "next friday"}, true},
		{"empty name", AssignmentAddCmd{Name: "", Course: "History", Due: "2025-01-10T09:00"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssignmentAddArmsReminderWhenGranted(t *testing.T) {
	env := clitest.New(t, models.PermissionGranted)
	add(t, env, "Essay", "History", "2025-01-10T09:00")

	pending := env.Ctx.Scheduler.Pending()
	if len(pending) != 1 {
		t.Fatalf("Pending() = %d, want 1", len(pending))
	}
	if !pending[0].FireAt.Equal(time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("FireAt = %v", pending[0].FireAt)
	}

	env.Clock.Advance(30 * time.Minute)
	if len(env.Notifier.Sent) != 1 || env.Notifier.Sent[0] != "Assignment Due Soon: Essay for History is due in 1 hour!" {
		t.Errorf("sent = %v", env.Notifier.Sent)
	}
}

func TestAssignmentListOrderAndOverdue(t *testing.T) {
	env := clitest.New(t, models.PermissionDefault)
	add(t, env, "Essay", "History", "2025-01-11T09:00")
	add(t, env, "Lab", "Chem", "2025-01-09T09:00")
	env.Out.Reset()

	if err := (&AssignmentListCmd{ShowIDs: true}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Out.String()
	lab := strings.Index(out, "Lab")
	essay := strings.Index(out, "Essay")
	if lab < 0 || essay < 0 || lab > essay {
		t.Errorf("list order wrong:\n%s", out)
	}
	if !strings.Contains(out, "OVERDUE") {
		t.Errorf("overdue marker missing:\n%s", out)
	}
	if strings.Count(out, "OVERDUE") != 1 {
		t.Errorf("only Lab is overdue:\n%s", out)
	}
}

func TestAssignmentEditReschedules(t *testing.T) {
	env := clitest.New(t, models.PermissionGranted)
	a := add(t, env, "Essay", "History", "2025-01-10T09:00")

	if err := (&AssignmentEditCmd{ID: a.ID, Due: ptr("2025-01-10T12:00")}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	got, _ := env.Ctx.Planner().Assignment(a.ID)
	if got.Due != "2025-01-10T12:00" || got.Name != "Essay" {
		t.Errorf("edited = %+v", got)
	}
	pending := env.Ctx.Scheduler.Pending()
	if len(pending) != 1 || !pending[0].FireAt.Equal(time.Date(2025, 1, 10, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("Pending() = %+v", pending)
	}
}

func TestAssignmentDeleteCancelsReminder(t *testing.T) {
	env := clitest.New(t, models.PermissionGranted)
	a := add(t, env, "Essay", "History", "2025-01-10T09:00")

	env.Answer = true
	if err := (&AssignmentDeleteCmd{ID: a.ID}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if len(env.Asked) != 1 {
		t.Errorf("asked %d times", len(env.Asked))
	}
	if len(storage.LoadAssignments(env.Store)) != 0 {
		t.Error("assignment still stored")
	}
	if len(env.Ctx.Scheduler.Pending()) != 0 {
		t.Error("reminder still armed")
	}
}

func TestAssignmentDeleteNotFound(t *testing.T) {
	env := clitest.New(t, models.PermissionDefault)
	if err := (&AssignmentDeleteCmd{ID: "nope", Yes: true}).Run(env.Ctx); err == nil {
		t.Error("expected not found error")
	}
}
