package schedule

import (
	"strings"
	"time"
)

// scheduleTimeLayout is the timestamp format used by the schedule page for
// both the document date and case times.
const scheduleTimeLayout = "2006-01-02 15:04:05"

// FormatDate converts the raw schedule date into a long-form human-readable
// date ("Monday, January 02, 2006"). Unparseable input is returned verbatim;
// this never fails, only degrades.
func FormatDate(raw string) string {
	t, err := time.Parse(scheduleTimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return t.Format("Monday, January 02, 2006")
}

// FormatClock converts a case timestamp into a short clock time ("7:30 AM").
// Unparseable input is returned verbatim.
func FormatClock(raw string) string {
	t, err := time.Parse(scheduleTimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return t.Format("3:04 PM")
}
