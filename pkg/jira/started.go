package jira

import (
	"fmt"
	"strings"
	"time"
)

// StartedLayout is the worklog "started" format: milliseconds and a numeric offset.
const StartedLayout = "2006-01-02T15:04:05.000-0700"

var startedInputLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FormatStarted renders t in loc using StartedLayout.
func FormatStarted(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(StartedLayout)
}

// ParseStarted interprets user input for --startedAt. Empty input and "now"
// return now. Values without an offset are read in loc.
func ParseStarted(value string, loc *time.Location, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "now") {
		return now.In(loc), nil
	}

	for _, layout := range []string{time.RFC3339, StartedLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(loc), nil
		}
	}
	for _, layout := range startedInputLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized start time %q", value)
}
