package records

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{"empty is absent", "", nil},
		{"rfc3339", "2026-03-01T12:00:00Z",
			timePtr(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))},
		{"rfc3339 with fraction", "2026-03-01T12:00:00.250Z",
			timePtr(time.Date(2026, 3, 1, 12, 0, 0, 250000000, time.UTC))},
		{"space separated", "2026-03-01 12:00:00",
			timePtr(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))},
		{"date only", "2026-03-01",
			timePtr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))},
		{"garbage is absent", "yesterday", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := parseTimestamp(tc.raw)
			switch {
			case tc.want == nil && got != nil:
				t.Errorf("parseTimestamp(%q) = %v, want nil", tc.raw, got)
			case tc.want != nil && (got == nil || !got.Equal(*tc.want)):
				t.Errorf("parseTimestamp(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestMapSubmission(t *testing.T) {
	dto := submissionDTO{
		ID:                  "s1",
		TrackingNumber:      "RIA-2026-0001",
		Title:               "Data Act",
		Status:              "in_review",
		CurrentStage:        4,
		SubmittedAt:         "2026-03-01T12:00:00Z",
		CompletedAt:         "",
		AssignedOfficerID:   "u1",
		AssignedOfficerName: "Grace Mensah",
		SupportingDocs:      []supportingDocDTO{{Filename: "annex-a.pdf"}},
	}

	sub := mapSubmission(dto)
	if sub.Status != StatusInReview {
		t.Errorf("Status = %q, want %q", sub.Status, StatusInReview)
	}
	if sub.SubmittedAt == nil || sub.CompletedAt != nil {
		t.Errorf("timestamps = %v / %v, want present / nil", sub.SubmittedAt, sub.CompletedAt)
	}
	if len(sub.SupportingDocs) != 1 || sub.SupportingDocs[0].Filename != "annex-a.pdf" {
		t.Errorf("SupportingDocs = %+v", sub.SupportingDocs)
	}
	if sub.IsCompleted() {
		t.Error("in_review submission must not report completed")
	}
}

func TestMapStageHistory_ReSorts(t *testing.T) {
	dtos := []stageHistoryDTO{
		{SubmissionID: "s1", StageNumber: 5, CreatedAt: ""},
		{SubmissionID: "s1", StageNumber: 3, CreatedAt: "2026-03-05T09:00:00Z"},
		{SubmissionID: "s1", StageNumber: 1, CreatedAt: "2026-03-01T09:00:00Z"},
		{SubmissionID: "s1", StageNumber: 2, CreatedAt: "2026-03-05T09:00:00Z"},
	}

	out := mapStageHistory(dtos)
	wantStages := []int{1, 2, 3, 5}
	for i, h := range out {
		if h.StageNumber != wantStages[i] {
			t.Fatalf("position %d has stage %d, want order %v", i, h.StageNumber, wantStages)
		}
	}
	if out[3].CreatedAt != nil {
		t.Error("undated entry must sort last and stay undated")
	}
}
