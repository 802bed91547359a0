package reports

import (
	"sort"
	"time"

	"ria-analytics/internal/sla"
	"ria-analytics/internal/snapshot"
)

// StuckSubmission is a non-completed submission that has sat in its current
// stage beyond the stuck threshold.
type StuckSubmission struct {
	SubmissionID        string   `json:"submissionId"`
	TrackingNumber      string   `json:"trackingNumber"`
	Title               string   `json:"title"`
	Organization        string   `json:"organization"`
	CurrentStage        int      `json:"currentStage"`
	StageName           string   `json:"stageName"`
	DaysInStage         int      `json:"daysInStage"`
	AlertLevel          Severity `json:"alertLevel"`
	AssignedOfficerName string   `json:"assignedOfficerName,omitempty"`
}

// StuckSubmissions finds every non-completed submission whose days in its
// current stage exceed the stuck threshold, sorted by days in stage
// descending. A submission with no history entry for its current stage
// cannot be assessed and is treated as not stuck.
func StuckSubmissions(snap *snapshot.Snapshot, now time.Time) []StuckSubmission {
	var out []StuckSubmission

	for _, sub := range snap.Submissions {
		if sub.IsCompleted() {
			continue
		}

		daysInStage := 0
		if entry, ok := snap.HistoryEntry(sub.ID, sub.CurrentStage); ok && entry.CreatedAt != nil {
			daysInStage = sla.DaysElapsed(now, *entry.CreatedAt)
		}
		if daysInStage <= sla.StuckThresholdDays {
			continue
		}

		out = append(out, StuckSubmission{
			SubmissionID:        sub.ID,
			TrackingNumber:      sub.TrackingNumber,
			Title:               sub.Title,
			Organization:        sub.Organization,
			CurrentStage:        sub.CurrentStage,
			StageName:           sub.StageName,
			DaysInStage:         daysInStage,
			AlertLevel:          classifyStuck(daysInStage),
			AssignedOfficerName: sub.AssignedOfficerName,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysInStage != out[j].DaysInStage {
			return out[i].DaysInStage > out[j].DaysInStage
		}
		return out[i].TrackingNumber < out[j].TrackingNumber
	})

	return out
}
