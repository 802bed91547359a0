package reports

import (
	"sort"
	"time"

	"ria-analytics/internal/records"
	"ria-analytics/internal/sla"
	"ria-analytics/internal/snapshot"
)

// LiveStatusEntry is the current state of one submission against the
// statutory window.
type LiveStatusEntry struct {
	SubmissionID        string                   `json:"submissionId"`
	TrackingNumber      string                   `json:"trackingNumber"`
	Title               string                   `json:"title"`
	Organization        string                   `json:"organization"`
	CurrentStage        int                      `json:"currentStage"`
	StageName           string                   `json:"stageName"`
	Status              records.SubmissionStatus `json:"status"`
	ProgressPercentage  int                      `json:"progressPercentage"`
	DaysElapsed         int                      `json:"daysElapsed"`
	DaysRemaining       int                      `json:"daysRemaining"`
	IsOverdue           bool                     `json:"isOverdue"`
	AssignedOfficerName string                   `json:"assignedOfficerName,omitempty"`
}

// LiveStatus reports every submission with its elapsed and remaining days
// against the statutory window, sorted by submitted date ascending with ID
// as the tie-break. Submissions without a submitted date report zero days
// elapsed and sort last.
func LiveStatus(snap *snapshot.Snapshot, now time.Time) []LiveStatusEntry {
	var out []LiveStatusEntry
	order := make(map[string]*time.Time, len(snap.Submissions))

	for _, sub := range snap.Submissions {
		entry := LiveStatusEntry{
			SubmissionID:        sub.ID,
			TrackingNumber:      sub.TrackingNumber,
			Title:               sub.Title,
			Organization:        sub.Organization,
			CurrentStage:        sub.CurrentStage,
			StageName:           sub.StageName,
			Status:              sub.Status,
			ProgressPercentage:  sub.ProgressPercentage,
			DaysRemaining:       sla.WindowDays,
			AssignedOfficerName: sub.AssignedOfficerName,
		}
		if sub.SubmittedAt != nil {
			entry.DaysElapsed = sla.DaysElapsed(now, *sub.SubmittedAt)
			entry.DaysRemaining = sla.DaysRemaining(now, *sub.SubmittedAt)
			entry.IsOverdue = sla.IsOverdue(now, *sub.SubmittedAt, sub.Status)
		}
		order[sub.ID] = sub.SubmittedAt
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := order[out[i].SubmissionID], order[out[j].SubmissionID]
		switch {
		case a == nil && b == nil:
			return out[i].SubmissionID < out[j].SubmissionID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		default:
			return out[i].SubmissionID < out[j].SubmissionID
		}
	})

	return out
}

// OverdueEntry is one submission past the statutory window.
type OverdueEntry struct {
	LiveStatusEntry
	DaysOverdue int `json:"daysOverdue"`
}

// Overdue reports the overdue subset of the live status view, sorted by days
// overdue descending. It classifies identically to LiveStatus because both
// share the same predicate and the same captured now.
func Overdue(snap *snapshot.Snapshot, now time.Time) []OverdueEntry {
	var out []OverdueEntry
	for _, entry := range LiveStatus(snap, now) {
		if !entry.IsOverdue {
			continue
		}
		out = append(out, OverdueEntry{
			LiveStatusEntry: entry,
			DaysOverdue:     entry.DaysElapsed - sla.WindowDays,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysOverdue != out[j].DaysOverdue {
			return out[i].DaysOverdue > out[j].DaysOverdue
		}
		return out[i].TrackingNumber < out[j].TrackingNumber
	})

	return out
}
