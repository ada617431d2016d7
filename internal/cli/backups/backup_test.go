package backups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/studyplan/internal/cli/clitest"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/planner"
	"github.com/julianstephens/studyplan/internal/storage"
)

func addClass(t *testing.T, env *clitest.Env, name string) {
	t.Helper()
	if _, err := env.Ctx.Planner().AddClass(planner.ClassDraft{Name: name, Day: "Monday", Time: "09:00", Duration: 1}); err != nil {
		t.Fatal(err)
	}
}

func createBackup(t *testing.T, env *clitest.Env) string {
	t.Helper()
	if err := (&BackupCreateCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	mgr, err := env.Ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backups, err := mgr.ListBackups()
	if err != nil || len(backups) == 0 {
		t.Fatalf("no backups after create: %v", err)
	}
	return backups[0].Path
}

func TestBackupCreateAndList(t *testing.T) {
	env := clitest.New(t, models.PermissionDefault)
	addClass(t, env, "Algorithms")

	path := createBackup(t, env)
	if !strings.Contains(env.Out.String(), filepath.Base(path)) {
		t.Errorf("create output = %q", env.Out.String())
	}

	env.Out.Reset()
	if err := (&BackupListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Out.String()
	if !strings.Contains(out, "Available backups (1 total") || !strings.Contains(out, filepath.Base(path)) {
		t.Errorf("list output = %q", out)
	}
}

func TestBackupListEmpty(t *testing.T) {
	env := clitest.New(t, models.PermissionDefault)
	if err := (&BackupListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), "No backups found.") {
		t.Errorf("output = %q", env.Out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	env := clitest.New(t, models.PermissionDefault)
	addClass(t, env, "Algorithms")
	path := createBackup(t, env)
	addClass(t, env, "Databases")

	env.Answer = false
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(path)}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), "Restore cancelled.") {
		t.Errorf("output = %q", env.Out.String())
	}

	env.Answer = true
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(path)}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}

	restored := storage.NewJSONStore(env.Store.GetConfigPath())
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	classes := storage.LoadClasses(restored)
	if len(classes) != 1 || classes[0].Name != "Algorithms" {
		t.Errorf("restored classes = %+v", classes)
	}
	if len(env.Asked) != 2 {
		t.Errorf("asked %d times, want 2", len(env.Asked))
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	env := clitest.New(t, models.PermissionDefault)
	err := (&BackupRestoreCmd{BackupFile: "studyplan-backup-nope.json", Yes: true}).Run(env.Ctx)
	if err == nil || !strings.Contains(err.Error(), "backup file not found") {
		t.Errorf("error = %v", err)
	}
}
