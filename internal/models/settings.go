package models

import (
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
)

// Permission is the user's answer to the notification prompt.
type Permission string

const (
	PermissionDefault     Permission = "default" // not yet decided
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
	PermissionUnsupported Permission = "unsupported" // never stored; reported when no notifier exists
)

// Settings represents application-wide settings
type Settings struct {
	Timezone               string     `json:"timezone"`                // IANA name or "Local"
	NotificationPermission Permission `json:"notification_permission"` // default, granted or denied
	ReminderLeadMin        int        `json:"reminder_lead_min"`       // minutes before due to remind
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	switch settings.NotificationPermission {
	case PermissionGranted, PermissionDenied:
	default:
		settings.NotificationPermission = PermissionDefault
	}
	if settings.ReminderLeadMin <= 0 {
		settings.ReminderLeadMin = constants.DefaultReminderLeadMin
	}
}

// Location resolves Timezone, falling back to the system zone.
func (s Settings) Location() *time.Location {
	if s.Timezone == "" || s.Timezone == constants.DefaultTimezone {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ReminderLead is how long before the due time a reminder fires.
func (s Settings) ReminderLead() time.Duration {
	if s.ReminderLeadMin <= 0 {
		return constants.DefaultReminderLead
	}
	return time.Duration(s.ReminderLeadMin) * time.Minute
}
