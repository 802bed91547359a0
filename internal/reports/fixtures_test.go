package reports_test

import (
	"time"

	"ria-analytics/internal/records"
	"ria-analytics/internal/snapshot"
)

// base is day 0 of every fixture; day(n) is n whole days later. Tests pin
// "now" explicitly so the arithmetic is exact.
var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func day(n int) *time.Time {
	t := base.AddDate(0, 0, n)
	return &t
}

func entry(subID string, stage int, at *time.Time) records.StageHistoryEntry {
	return records.StageHistoryEntry{
		SubmissionID: subID,
		StageNumber:  stage,
		CreatedAt:    at,
		ActionByName: "Desk Officer",
	}
}

func snapOf(subs []records.Submission, history []records.StageHistoryEntry, comments []records.Comment, staff []records.StaffProfile) *snapshot.Snapshot {
	return snapshot.New(*day(10), subs, history, comments, staff)
}
