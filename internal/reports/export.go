package reports

import (
	"fmt"
	"strconv"
	"time"

	"ria-analytics/internal/records"
)

// Table is the uniform shape handed to the external delimited-text
// formatter. Every row has exactly len(Headers) cells in the same order;
// the formatter owns quoting and serialization.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// statusLabel renders a submission status for display surfaces that want a
// human phrase rather than the raw enum.
func statusLabel(status records.SubmissionStatus) string {
	switch status {
	case records.StatusSubmitted:
		return "Submitted"
	case records.StatusInReview:
		return "In Review"
	case records.StatusCompleted:
		return "Completed"
	default:
		return string(status)
	}
}

// LiveStatusTable flattens the live status report with a fixed column order.
func LiveStatusTable(entries []LiveStatusEntry) Table {
	t := Table{Headers: []string{
		"Tracking Number", "Title", "Organization", "Stage", "Stage Name",
		"Status", "Progress %", "Days Elapsed", "Days Remaining", "Overdue", "Assigned Officer",
	}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			e.TrackingNumber, e.Title, e.Organization,
			strconv.Itoa(e.CurrentStage), e.StageName,
			statusLabel(e.Status), strconv.Itoa(e.ProgressPercentage),
			strconv.Itoa(e.DaysElapsed), strconv.Itoa(e.DaysRemaining),
			strconv.FormatBool(e.IsOverdue), e.AssignedOfficerName,
		})
	}
	return t
}

// OverdueTable flattens the overdue report.
func OverdueTable(entries []OverdueEntry) Table {
	t := Table{Headers: []string{
		"Tracking Number", "Title", "Organization", "Stage Name",
		"Days Elapsed", "Days Overdue", "Assigned Officer",
	}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			e.TrackingNumber, e.Title, e.Organization, e.StageName,
			strconv.Itoa(e.DaysElapsed), strconv.Itoa(e.DaysOverdue), e.AssignedOfficerName,
		})
	}
	return t
}

// StageDurationsTable flattens the per-stage duration statistics.
func StageDurationsTable(stats []StageDurationStats) Table {
	t := Table{Headers: []string{
		"Stage", "Stage Name", "Expected Days", "Measured", "Mean Days",
		"Min Days", "Max Days", "% Exceeding Expected",
	}}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(s.StageNumber), s.StageName, strconv.Itoa(s.ExpectedDays),
			strconv.Itoa(s.Count), formatFloat(s.MeanDays),
			strconv.Itoa(s.MinDays), strconv.Itoa(s.MaxDays), formatFloat(s.PctExceedingExpected),
		})
	}
	return t
}

// StuckTable flattens the stuck-in-stage report.
func StuckTable(entries []StuckSubmission) Table {
	t := Table{Headers: []string{
		"Tracking Number", "Title", "Organization", "Stage", "Stage Name",
		"Days In Stage", "Alert Level", "Assigned Officer",
	}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			e.TrackingNumber, e.Title, e.Organization,
			strconv.Itoa(e.CurrentStage), e.StageName,
			strconv.Itoa(e.DaysInStage), string(e.AlertLevel), e.AssignedOfficerName,
		})
	}
	return t
}

// WorkloadTable flattens the officer workload report.
func WorkloadTable(entries []OfficerWorkload) Table {
	t := Table{Headers: []string{
		"Officer", "Total Assigned", "Active", "Completed", "Avg Handling Days", "Status",
	}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			e.OfficerName, strconv.Itoa(e.TotalAssigned), strconv.Itoa(e.Active),
			strconv.Itoa(e.Completed), formatFloat(e.AvgHandlingDays), string(e.Status),
		})
	}
	return t
}

// BottlenecksTable flattens the severity heatmap.
func BottlenecksTable(entries []BottleneckStage) Table {
	t := Table{Headers: []string{
		"Stage", "Stage Name", "Expected Days", "Mean Days", "Variance", "Severity", "Measured",
	}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(e.StageNumber), e.StageName, strconv.Itoa(e.ExpectedDays),
			formatFloat(e.MeanDays), formatFloat(e.Variance), string(e.Severity),
			strconv.Itoa(e.MeasuredCount),
		})
	}
	return t
}

// TimelineTable flattens a reconstructed timeline.
func TimelineTable(events []TimelineEvent) Table {
	t := Table{Headers: []string{
		"Type", "Date", "Title", "Actor", "Details", "Status", "Duration Days",
	}}
	for _, e := range events {
		duration := ""
		if e.DurationDays != nil {
			duration = strconv.Itoa(*e.DurationDays)
		}
		t.Rows = append(t.Rows, []string{
			string(e.Kind), formatDate(e.Date), e.Title, e.Actor, e.Details,
			string(e.Status), duration,
		})
	}
	return t
}

// TurnaroundTable flattens the turnaround report; the summary travels as a
// trailing row so the export stays a single uniform table.
func TurnaroundTable(report TurnaroundReport) Table {
	t := Table{Headers: []string{
		"Tracking Number", "Title", "Organization", "Total Days", "SLA", "Variance Days",
	}}
	for _, e := range report.Entries {
		t.Rows = append(t.Rows, []string{
			e.TrackingNumber, e.Title, e.Organization,
			strconv.Itoa(e.TotalDays), string(e.SLACompliance), strconv.Itoa(e.VarianceDays),
		})
	}
	t.Rows = append(t.Rows, []string{
		"TOTAL",
		fmt.Sprintf("avg %s days", formatFloat(report.Summary.AverageDays)),
		"",
		strconv.Itoa(report.Summary.CompletedCount),
		fmt.Sprintf("%s%% compliant", formatFloat(report.Summary.ComplianceRate)),
		"",
	})
	return t
}
