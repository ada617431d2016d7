package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "studyplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/studyplan/studyplan.db"
	Version            = "v0.3.0"

	// DBConnectionEnv names the environment variable holding a PostgreSQL DSN
	DBConnectionEnv = "STUDYPLAN_DB_CONNECTION"
	// EnvFileName is loaded from the config directory when present
	EnvFileName = ".env"

	// DueFormat is the datetime-local layout assignment due dates are entered in
	DueFormat = "2006-01-02T15:04"

	// DueLabelFormat renders a due date as "Fri Jan 10, 09:00"
	DueLabelFormat = "Mon Jan 2, 15:04"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Storage keys
	KeyClasses     = "classes"
	KeyAssignments = "assignments"
	KeySettings    = "settings"

	// Schedule grid bounds (inclusive hours)
	GridFirstHour = 8
	GridLastHour  = 20

	// Reminder constants
	DefaultReminderLead = time.Hour
	ReminderTitle       = "Assignment Due Soon"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "studyplan-"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "studyplan-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.studyplan"
	TrayExecutableName     = "studyplan-tray"
	TraySecretHeader       = "X-Studyplan-Secret"
)

// Session States
const (
	StateSchedule SessionState = iota
	StateAssignments
	StateEditClass
	StateEditAssignment
	StateConfirmDelete
	StateConfirmPermission
)
