package domain

import (
	"fmt"
	"strings"
	"time"
)

// Duration is the days/hours/minutes split entered in the timer form.
// Values are taken as-is; the command surface constrains the ranges.
type Duration struct {
	Days    int
	Hours   int
	Minutes int
}

func (d Duration) IsZero() bool {
	return d.Days == 0 && d.Hours == 0 && d.Minutes == 0
}

// CalculateEndTime returns now plus the duration. Days are added as
// calendar days so the end time lands on the expected wall-clock moment
// across DST and month boundaries.
func CalculateEndTime(now time.Time, d Duration) time.Time {
	return now.AddDate(0, 0, d.Days).
		Add(time.Duration(d.Hours)*time.Hour + time.Duration(d.Minutes)*time.Minute)
}

// FormatRemainingTime renders the time left until end as a compact human
// string: "" for no timer, "Complete" once the end has passed, otherwise
// "2d 3h 4m". Seconds appear only when the countdown is inside its last
// minute ("45s") or as a trailing supplement when the minute component is
// zero ("1h 0m 30s"), so the final minute stays visible to the second
// while longer countdowns remain coarse.
func FormatRemainingTime(end *time.Time, now time.Time) string {
	if end == nil {
		return ""
	}
	if !end.After(now) {
		return "Complete"
	}

	days := calendarDays(now, *end)
	rest := end.Sub(now.AddDate(0, 0, days))
	hours := int(rest / time.Hour)
	minutes := int(rest/time.Minute) % 60
	seconds := int(rest/time.Second) % 60

	if days == 0 && hours == 0 && minutes == 0 {
		return fmt.Sprintf("%ds", seconds)
	}

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if days > 0 || hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	parts = append(parts, fmt.Sprintf("%dm", minutes))
	if minutes == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}

	return strings.Join(parts, " ")
}

// calendarDays counts whole calendar days between from and to, stepping by
// date rather than dividing a raw duration, so a 23- or 25-hour DST day
// still counts as one day.
func calendarDays(from, to time.Time) int {
	days := int(to.Sub(from) / (24 * time.Hour))
	for !from.AddDate(0, 0, days+1).After(to) {
		days++
	}
	for days > 0 && from.AddDate(0, 0, days).After(to) {
		days--
	}

	return days
}
