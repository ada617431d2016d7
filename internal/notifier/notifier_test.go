package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := userConfigDirFunc
	t.Cleanup(func() { userConfigDirFunc = old })
	userConfigDirFunc = func() (string, error) { return dir, nil }
	return dir
}

func withProcess(t *testing.T, executable string) {
	t.Helper()
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = func(pid int) (ps.Process, error) {
		if executable == "" {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: executable}, nil
	}
}

func serverPort(url string) string {
	parts := strings.Split(url, ":")
	return parts[len(parts)-1]
}

func writeLockfile(t *testing.T, configDir, content string) {
	t.Helper()
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := withConfigDir(t)

	expectedDefault := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	if err := os.MkdirAll(expectedDefault, 0755); err != nil {
		t.Fatal(err)
	}
	customDir := "/custom/studyplan/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(expectedDefault, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing lockfile")
	}

	invalid := map[string]string{
		"two parts":      "8080|12345",
		"garbage":        "invalid",
		"empty secret":   "8080|12345|",
		"empty port":     "|12345|secret",
		"port too large": "99999|12345|secret",
		"bad pid":        "8080|abc|secret",
	}
	for name, content := range invalid {
		t.Run(name, func(t *testing.T) {
			if err := os.WriteFile(lockfilePath, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
				t.Errorf("expected error for lockfile %q", content)
			}
		})
	}

	if err := os.WriteFile(lockfilePath, []byte("8080|12345|testsecret123"), 0644); err != nil {
		t.Fatal(err)
	}

	withProcess(t, "")
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err != ErrTrayNotRunning {
		t.Errorf("expected ErrTrayNotRunning, got %v", err)
	}

	withProcess(t, "other-app")
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for wrong executable")
	}

	withProcess(t, constants.TrayExecutableName)
	port, secret, err := findAndValidateTrayProcess(lockfilePath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port != "8080" || secret != "testsecret123" {
		t.Errorf("got port %s secret %s", port, secret)
	}
}

func TestNotifyDeliversPayload(t *testing.T) {
	var got WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(constants.TraySecretHeader) != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	configDir := withConfigDir(t)
	withProcess(t, constants.TrayExecutableName)
	writeLockfile(t, configDir, serverPort(server.URL)+"|4242|test-secret")

	n := New()
	if !n.Available() {
		t.Fatal("Available() = false with a live tray")
	}
	if err := n.Notify(constants.ReminderTitle, "Essay for History is due in 1 hour!"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if got.Title != "Assignment Due Soon" || got.Text != "Essay for History is due in 1 hour!" {
		t.Errorf("payload = %+v", got)
	}
	if got.DurationMs != constants.NotificationDurationMs {
		t.Errorf("DurationMs = %d", got.DurationMs)
	}
}

func TestNotifyRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	configDir := withConfigDir(t)
	withProcess(t, constants.TrayExecutableName)
	writeLockfile(t, configDir, serverPort(server.URL)+"|4242|s")

	n := New()
	n.retryDelay = 0
	if err := n.Notify("t", "b"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}

	atomic.StoreInt32(&calls, -10)
	n.maxRetries = 2
	if err := n.Notify("t", "b"); err == nil {
		t.Error("expected error once retries are exhausted")
	}
}

func TestNotifyWithoutTray(t *testing.T) {
	withConfigDir(t)

	n := New()
	if n.Available() {
		t.Error("Available() = true without a lockfile")
	}
	if err := n.Notify("t", "b"); err == nil {
		t.Error("expected error without a tray")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		available bool
		stored    models.Permission
		want      models.Permission
		label     string
	}{
		{false, models.PermissionGranted, models.PermissionUnsupported, "Notifications not supported"},
		{true, models.PermissionGranted, models.PermissionGranted, "Notifications enabled"},
		{true, models.PermissionDenied, models.PermissionDenied, "Notifications blocked"},
		{true, models.PermissionDefault, models.PermissionDefault, ""},
		{true, "", models.PermissionDefault, ""},
	}

	for _, tt := range tests {
		got := Status(tt.available, tt.stored)
		if got != tt.want {
			t.Errorf("Status(%v, %q) = %q, want %q", tt.available, tt.stored, got, tt.want)
		}
		if label := StatusLabel(got); label != tt.label {
			t.Errorf("StatusLabel(%q) = %q, want %q", got, label, tt.label)
		}
		if CanRequest(got) != (tt.want == models.PermissionDefault) {
			t.Errorf("CanRequest(%q) mismatch", got)
		}
	}
}
