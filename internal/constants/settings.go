package constants

// Settings defaults
const (
	DefaultTimezone        = "Local" // system local timezone
	DefaultReminderLeadMin = 60
)
