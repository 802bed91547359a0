package reports

import (
	"math"
	"sort"

	"ria-analytics/internal/sla"
	"ria-analytics/internal/snapshot"
)

// SLACompliance labels whether one completed submission met the statutory
// window.
type SLACompliance string

const (
	ComplianceMet      SLACompliance = "Met"
	ComplianceExceeded SLACompliance = "Exceeded"
)

// TurnaroundEntry is the end-to-end measurement for one completed
// submission.
type TurnaroundEntry struct {
	SubmissionID   string        `json:"submissionId"`
	TrackingNumber string        `json:"trackingNumber"`
	Title          string        `json:"title"`
	Organization   string        `json:"organization"`
	TotalDays      int           `json:"totalDays"`
	SLACompliance  SLACompliance `json:"slaCompliance"`
	VarianceDays   int           `json:"varianceDays"`
}

// TurnaroundSummary aggregates the completed set. ComplianceRate is zero,
// not NaN, when nothing has completed.
type TurnaroundSummary struct {
	CompletedCount int     `json:"completedCount"`
	AverageDays    float64 `json:"averageDays"`
	MetCount       int     `json:"metCount"`
	ExceededCount  int     `json:"exceededCount"`
	ComplianceRate float64 `json:"complianceRate"`
}

// TurnaroundReport is the full turnaround/SLA view.
type TurnaroundReport struct {
	Entries []TurnaroundEntry `json:"entries"`
	Summary TurnaroundSummary `json:"summary"`
}

// Turnaround measures end-to-end review time for completed submissions with
// both endpoint timestamps set, and aggregates SLA compliance. Entries are
// sorted by total days descending, tracking number tie-break.
func Turnaround(snap *snapshot.Snapshot) TurnaroundReport {
	var report TurnaroundReport
	totalSum := 0

	for _, sub := range snap.Submissions {
		if !sub.IsCompleted() || sub.SubmittedAt == nil || sub.CompletedAt == nil {
			continue
		}

		totalDays := sla.DaysBetween(*sub.SubmittedAt, *sub.CompletedAt)
		entry := TurnaroundEntry{
			SubmissionID:   sub.ID,
			TrackingNumber: sub.TrackingNumber,
			Title:          sub.Title,
			Organization:   sub.Organization,
			TotalDays:      totalDays,
			VarianceDays:   totalDays - sla.WindowDays,
		}
		if totalDays <= sla.WindowDays {
			entry.SLACompliance = ComplianceMet
			report.Summary.MetCount++
		} else {
			entry.SLACompliance = ComplianceExceeded
			report.Summary.ExceededCount++
		}
		totalSum += totalDays
		report.Entries = append(report.Entries, entry)
	}

	report.Summary.CompletedCount = len(report.Entries)
	if report.Summary.CompletedCount > 0 {
		n := float64(report.Summary.CompletedCount)
		report.Summary.AverageDays = math.Round(float64(totalSum)/n*10) / 10
		report.Summary.ComplianceRate = math.Round(float64(report.Summary.MetCount)/n*1000) / 10
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		if report.Entries[i].TotalDays != report.Entries[j].TotalDays {
			return report.Entries[i].TotalDays > report.Entries[j].TotalDays
		}
		return report.Entries[i].TrackingNumber < report.Entries[j].TrackingNumber
	})

	return report
}
