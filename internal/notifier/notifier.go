package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// ErrTrayNotRunning is returned when no live tray process can be found.
var ErrTrayNotRunning = errors.New(constants.TrayExecutableName + " is not running")

// Notifier delivers desktop notifications through the tray app's local webhook.
type Notifier struct {
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
}

type WebhookPayload struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{
		client:     &http.Client{Timeout: 5 * time.Second},
		maxRetries: constants.NotifyMaxRetries,
		retryDelay: constants.NotifyRetryDelay,
	}
}

// Available reports whether a tray process is running and reachable through
// its lockfile.
func (n *Notifier) Available() bool {
	_, _, err := n.locate()
	return err == nil
}

// Notify shows a notification. Delivery is retried a few times since the
// tray may be restarting.
func (n *Notifier) Notify(title, body string) error {
	port, secret, err := n.locate()
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Title:      title,
		Text:       body,
		DurationMs: constants.NotificationDurationMs,
	}

	attempts := n.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		err = n.send(port, secret, payload)
		if err == nil {
			return nil
		}
		logger.Debug("Notification attempt failed", "attempt", attempt, "error", err)
		if attempt < attempts {
			time.Sleep(n.retryDelay)
		}
	}
	return fmt.Errorf("notification failed after %d attempts: %w", attempts, err)
}

func (n *Notifier) locate() (string, string, error) {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return "", "", err
	}
	return findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
}

// GetTrayAppConfigDir returns the configuration directory used by the tray
// application, honoring a lockfile_dir override in its settings.json.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}

	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil {
		logger.Warn("Ignoring unreadable tray settings", "error", err)
		return trayConfigDir, nil
	}
	if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
		return *store.Settings.LockfileDir, nil
	}
	return trayConfigDir, nil
}

// findAndValidateTrayProcess parses a "port|pid|secret" lockfile and checks
// that the pid belongs to a live tray process.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutableName) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutableName, process.Executable())
	}

	return port, secret, nil
}

func (n *Notifier) send(port, secret string, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1:"+port, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.TraySecretHeader, secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}

// Status combines host support with the stored answer. Unsupported is
// never persisted; it only reflects the current host.
func Status(available bool, stored models.Permission) models.Permission {
	if !available {
		return models.PermissionUnsupported
	}
	switch stored {
	case models.PermissionGranted, models.PermissionDenied:
		return stored
	}
	return models.PermissionDefault
}

// StatusLabel is the user-facing description of a permission. The default
// state has no label; surfaces show the request affordance instead.
func StatusLabel(p models.Permission) string {
	switch p {
	case models.PermissionUnsupported:
		return "Notifications not supported"
	case models.PermissionGranted:
		return "Notifications enabled"
	case models.PermissionDenied:
		return "Notifications blocked"
	}
	return ""
}

// CanRequest reports whether the request affordance should be shown.
func CanRequest(p models.Permission) bool {
	return p == models.PermissionDefault
}
