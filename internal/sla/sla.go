// Package sla provides the time arithmetic shared by every report: elapsed
// and remaining days against the statutory review window, and the overdue
// predicate. All functions are pure given an explicit "now"; a single report
// cycle must thread one captured now through every call so no two reports in
// the same cycle disagree about the current time.
package sla

import (
	"math"
	"time"

	"ria-analytics/internal/records"
)

// WindowDays is the statutory end-to-end review window.
const WindowDays = 14

// StuckThresholdDays is how long a submission may sit in one stage before it
// counts as stuck.
const StuckThresholdDays = 3

// DaysElapsed returns the whole days between since and now, rounded down.
// Callers are expected to pass since <= now; if that is violated the result
// is negative, and callers must tolerate it rather than crash.
func DaysElapsed(now time.Time, since time.Time) int {
	return int(math.Floor(now.Sub(since).Hours() / 24))
}

// DaysRemaining returns the whole days left in the statutory window, never
// negative.
func DaysRemaining(now time.Time, since time.Time) int {
	remaining := WindowDays - DaysElapsed(now, since)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsOverdue reports whether a submission has exceeded the statutory window.
// Completed submissions are never overdue, regardless of elapsed days.
func IsOverdue(now time.Time, since time.Time, status records.SubmissionStatus) bool {
	if status == records.StatusCompleted {
		return false
	}
	return DaysElapsed(now, since) > WindowDays
}

// DaysBetween returns the whole days from start to end, rounded down and
// clamped to zero. Used for dwell and turnaround measurements where a
// negative span means out-of-order data, not negative time.
func DaysBetween(start, end time.Time) int {
	days := int(math.Floor(end.Sub(start).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
