package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekdays are the columns of the schedule grid, in display order.
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// Hours is a class duration. It decodes from either a JSON number or a
// numeric string, since older stores kept the raw form value.
type Hours float64

func (h *Hours) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*h = Hours(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a number or numeric string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*h = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*h = Hours(f)
	return nil
}

func (h Hours) String() string {
	return strconv.FormatFloat(float64(h), 'f', -1, 64)
}

type ClassEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Day      string `json:"day"`  // Monday..Friday
	Time     string `json:"time"` // HH:MM
	Duration Hours  `json:"duration"`
}

// StartHour returns the integer before the colon in Time. "9:30" is hour 9.
func (c ClassEntry) StartHour() (int, bool) {
	return HourOf(c.Time)
}

// HourOf extracts the hour component of an HH:MM string.
func HourOf(hhmm string) (int, bool) {
	head, _, _ := strings.Cut(strings.TrimSpace(hhmm), ":")
	hour, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return hour, true
}

func (c *ClassEntry) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("class name cannot be empty")
	}
	if _, err := ParseDay(c.Day); err != nil {
		return err
	}
	if _, err := time.Parse("15:04", c.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be greater than zero")
	}
	return nil
}

// ParseDay normalizes a weekday name, abbreviation or number (1=Monday) to
// the stored form ("Tuesday"). Only Monday through Friday are accepted.
func ParseDay(s string) (string, error) {
	dayMap := map[string]time.Weekday{
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tues":      time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thur":      time.Thursday,
		"thurs":     time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
	}

	key := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[key]; ok {
		return wd.String(), nil
	}
	if num, err := strconv.Atoi(key); err == nil && num >= 1 && num <= 5 {
		return time.Weekday(num).String(), nil
	}
	return "", fmt.Errorf("invalid day: %q (expected Monday-Friday)", s)
}
