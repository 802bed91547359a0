package snapshot

import (
	"testing"
	"time"

	"ria-analytics/internal/records"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func day(n int) *time.Time {
	t := base.AddDate(0, 0, n)
	return &t
}

func TestNew_DropsOrphans(t *testing.T) {
	subs := []records.Submission{{ID: "s1", TrackingNumber: "RIA-1"}}
	history := []records.StageHistoryEntry{
		{SubmissionID: "s1", StageNumber: 1, CreatedAt: day(0)},
		{SubmissionID: "ghost", StageNumber: 2, CreatedAt: day(1)},
	}
	comments := []records.Comment{
		{SubmissionID: "s1", CreatedAt: day(0), Comment: "kept"},
		{SubmissionID: "ghost", CreatedAt: day(1), Comment: "dropped"},
	}

	snap := New(base, subs, history, comments, nil)

	if len(snap.StageHistory) != 1 || snap.StageHistory[0].SubmissionID != "s1" {
		t.Errorf("StageHistory = %+v, want only s1's entry", snap.StageHistory)
	}
	if len(snap.Comments) != 1 || snap.Comments[0].Comment != "kept" {
		t.Errorf("Comments = %+v, want only s1's comment", snap.Comments)
	}
	if got := snap.HistoryFor("ghost"); got != nil {
		t.Errorf("HistoryFor(ghost) = %+v, want nil", got)
	}
}

func TestNew_SortsHistoryAndComments(t *testing.T) {
	subs := []records.Submission{{ID: "s1"}}
	history := []records.StageHistoryEntry{
		{SubmissionID: "s1", StageNumber: 3, CreatedAt: nil},
		{SubmissionID: "s1", StageNumber: 2, CreatedAt: day(5)},
		{SubmissionID: "s1", StageNumber: 1, CreatedAt: day(2)},
		{SubmissionID: "s1", StageNumber: 4, CreatedAt: day(5)},
	}
	comments := []records.Comment{
		{SubmissionID: "s1", CreatedAt: day(8), Comment: "later"},
		{SubmissionID: "s1", CreatedAt: day(1), Comment: "earlier"},
	}

	snap := New(base, subs, history, comments, nil)

	got := snap.HistoryFor("s1")
	wantStages := []int{1, 2, 4, 3}
	for i, h := range got {
		if h.StageNumber != wantStages[i] {
			t.Fatalf("history order = %v at %d, want stages %v (dates ascending, ties by stage, undated last)",
				h.StageNumber, i, wantStages)
		}
	}

	cs := snap.CommentsFor("s1")
	if cs[0].Comment != "earlier" || cs[1].Comment != "later" {
		t.Errorf("comments not sorted oldest first: %+v", cs)
	}
}

func TestSnapshot_Lookups(t *testing.T) {
	subs := []records.Submission{{ID: "s1", TrackingNumber: "RIA-1"}}
	history := []records.StageHistoryEntry{
		{SubmissionID: "s1", StageNumber: 1, CreatedAt: day(0)},
		{SubmissionID: "s1", StageNumber: 2, CreatedAt: day(3)},
	}
	staff := []records.StaffProfile{{UserID: "u1", FullName: "Grace Mensah"}}

	snap := New(base, subs, history, nil, staff)

	if _, ok := snap.Submission("s1"); !ok {
		t.Error("Submission(s1) not found")
	}
	if _, ok := snap.Submission("missing"); ok {
		t.Error("Submission(missing) should not be found")
	}

	h, ok := snap.HistoryEntry("s1", 2)
	if !ok || !h.CreatedAt.Equal(*day(3)) {
		t.Errorf("HistoryEntry(s1, 2) = %+v, %v", h, ok)
	}
	if _, ok := snap.HistoryEntry("s1", 9); ok {
		t.Error("HistoryEntry for an unreached stage should report absent")
	}

	p, ok := snap.StaffByID("u1")
	if !ok || p.FullName != "Grace Mensah" {
		t.Errorf("StaffByID(u1) = %+v, %v", p, ok)
	}
}
