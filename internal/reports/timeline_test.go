package reports_test

import (
	"errors"
	"testing"

	"ria-analytics/internal/catalog"
	"ria-analytics/internal/records"
	"ria-analytics/internal/reports"
)

func inReviewSubmission() ([]records.Submission, []records.StageHistoryEntry) {
	subs := []records.Submission{{
		ID:                  "s1",
		TrackingNumber:      "RIA-1",
		SubmitterName:       "Jordan Nkrumah",
		CurrentStage:        3,
		Status:              records.StatusInReview,
		SubmittedAt:         day(0),
		AssignedOfficerID:   "off-1",
		AssignedOfficerName: "Amadi Okafor",
		AssignedAt:          day(1),
		DocumentFilename:    "assessment.pdf",
		SupportingDocs:      []records.SupportingDoc{{Filename: "annex-a.xlsx"}},
	}}
	history := []records.StageHistoryEntry{
		entry("s1", 1, day(0)),
		entry("s1", 2, day(2)),
		entry("s1", 3, day(5)),
	}
	return subs, history
}

func TestTimeline_StageSkeleton(t *testing.T) {
	subs, history := inReviewSubmission()
	snap := snapOf(subs, history, nil, nil)

	events, err := reports.Timeline(snap, "s1")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}

	// The first 15 events are always the full stage skeleton, in strictly
	// ascending stage order, before any other event kind.
	if len(events) < catalog.StageCount {
		t.Fatalf("expected at least %d events, got %d", catalog.StageCount, len(events))
	}
	for i := 0; i < catalog.StageCount; i++ {
		ev := events[i]
		if ev.Kind != reports.EventStage {
			t.Fatalf("event %d is %s, want a stage event", i, ev.Kind)
		}
		if ev.Stage == nil || ev.Stage.StageNumber != i+1 {
			t.Fatalf("event %d has stage payload %+v, want stage %d", i, ev.Stage, i+1)
		}
	}
	for i := catalog.StageCount; i < len(events); i++ {
		if events[i].Kind == reports.EventStage {
			t.Fatalf("stage event found at index %d, after non-stage events began", i)
		}
	}

	// Stage statuses: 1-2 done, 3 current, 4-15 pending with no date.
	if events[0].Status != reports.EventDone || events[1].Status != reports.EventDone {
		t.Error("stages before the current one should be done")
	}
	if events[2].Status != reports.EventCurrent || !events[2].Stage.IsDone {
		t.Errorf("stage 3 = %s (isDone=%v), want current and done", events[2].Status, events[2].Stage.IsDone)
	}
	for i := 3; i < catalog.StageCount; i++ {
		ev := events[i]
		if ev.Status != reports.EventPending || ev.Actor != "Pending" || ev.Date != nil {
			t.Errorf("stage %d = status %s actor %q date %v, want pending/Pending/nil", i+1, ev.Status, ev.Actor, ev.Date)
		}
	}
}

func TestTimeline_CompletedTerminalStageIsDone(t *testing.T) {
	completed := day(20)
	subs := []records.Submission{{
		ID: "s1", CurrentStage: 15, Status: records.StatusCompleted,
		SubmittedAt: day(0), CompletedAt: completed,
	}}
	snap := snapOf(subs, []records.StageHistoryEntry{entry("s1", 15, day(18))}, nil, nil)

	events, err := reports.Timeline(snap, "s1")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if events[14].Status != reports.EventDone {
		t.Errorf("terminal stage of a completed submission = %s, want done", events[14].Status)
	}
}

func TestTimeline_TerminalStageStillCurrentWhenNotCompleted(t *testing.T) {
	subs := []records.Submission{{
		ID: "s1", CurrentStage: 15, Status: records.StatusInReview, SubmittedAt: day(0),
	}}
	snap := snapOf(subs, nil, nil, nil)

	events, err := reports.Timeline(snap, "s1")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if events[14].Status != reports.EventCurrent {
		t.Errorf("stage 15 without completion = %s, want current", events[14].Status)
	}
}

func TestTimeline_DoneStageWithoutHistoryHasNoDate(t *testing.T) {
	// currentStage says 3, but history only covers stage 1: stages 2 and 3
	// are done with a null date because history lags the authoritative stage.
	subs := []records.Submission{{
		ID: "s1", CurrentStage: 3, Status: records.StatusInReview, SubmittedAt: day(0),
	}}
	snap := snapOf(subs, []records.StageHistoryEntry{entry("s1", 1, day(0))}, nil, nil)

	events, err := reports.Timeline(snap, "s1")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if events[1].Status != reports.EventDone || events[1].Date != nil {
		t.Errorf("lagging stage 2 = %s date %v, want done with nil date", events[1].Status, events[1].Date)
	}
}

func TestTimeline_NonStageEventsSortedByDateNullsLast(t *testing.T) {
	subs, history := inReviewSubmission()
	comments := []records.Comment{
		{SubmissionID: "s1", CreatedAt: day(6), CreatedByName: "Grace Mensah", Comment: "late note"},
		{SubmissionID: "s1", CreatedAt: nil, CreatedByName: "Grace Mensah", Comment: "undated note"},
		{SubmissionID: "s1", CreatedAt: day(4), CreatedByName: "Grace Mensah", Comment: "early note", IsInternal: true},
	}
	snap := snapOf(subs, history, comments, nil)

	events, err := reports.Timeline(snap, "s1")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}

	tail := events[catalog.StageCount:]
	// Expected tail order: assignment (day 1), initial document (day 0)...
	// no: non-stage events sort purely by date, so document day 0 first,
	// then assignment day 1, comment day 4, comment day 6, then the undated
	// comment and the undated supporting document last.
	var kinds []reports.EventKind
	for _, ev := range tail {
		kinds = append(kinds, ev.Kind)
	}

	if tail[0].Kind != reports.EventDocument || tail[0].Date == nil {
		t.Fatalf("first non-stage event = %v, want the dated initial document; kinds=%v", tail[0].Kind, kinds)
	}
	if tail[1].Kind != reports.EventAssignment {
		t.Errorf("second non-stage event = %v, want assignment; kinds=%v", tail[1].Kind, kinds)
	}
	if tail[2].Details != "early note" || tail[3].Details != "late note" {
		t.Errorf("comments out of order: %q then %q", tail[2].Details, tail[3].Details)
	}
	for _, ev := range tail[:4] {
		if ev.Date == nil {
			t.Error("dated events must sort before undated ones")
		}
	}
	for _, ev := range tail[4:] {
		if ev.Date != nil {
			t.Errorf("undated events must sort last, found dated %s", ev.Kind)
		}
	}

	// Internal flag survives as display metadata, unfiltered.
	if tail[2].Comment == nil || !tail[2].Comment.IsInternal {
		t.Error("internal comment must keep its IsInternal flag")
	}
}

func TestTimeline_DurationAnnotation(t *testing.T) {
	subs, history := inReviewSubmission()
	snap := snapOf(subs, history, nil, nil)

	events, err := reports.Timeline(snap, "s1")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}

	// Stage 1 (day 0) -> stage 2 (day 2): gap of 2 days.
	if events[0].DurationDays == nil || *events[0].DurationDays != 2 {
		t.Errorf("stage 1 duration = %v, want 2", events[0].DurationDays)
	}
	// Stage 2 (day 2) -> stage 3 (day 5): gap of 3 days.
	if events[1].DurationDays == nil || *events[1].DurationDays != 3 {
		t.Errorf("stage 2 duration = %v, want 3", events[1].DurationDays)
	}
	// Stage 3 is current, not done: no duration even though dated.
	if events[2].DurationDays != nil {
		t.Errorf("current stage duration = %v, want nil", *events[2].DurationDays)
	}
	// Pending stages carry no duration.
	if events[7].DurationDays != nil {
		t.Error("pending stages must not carry durations")
	}
}

func TestTimeline_DurationMeasuresGapToNextEmittedEvent(t *testing.T) {
	// The last dated stage's duration is the gap to the first dated
	// non-stage event in the sorted sequence, not to the next stage.
	subs := []records.Submission{{
		ID: "s1", CurrentStage: 2, Status: records.StatusCompleted, SubmittedAt: day(0),
	}}
	history := []records.StageHistoryEntry{
		entry("s1", 1, day(0)),
		entry("s1", 2, day(2)),
	}
	comments := []records.Comment{
		{SubmissionID: "s1", CreatedAt: day(9), CreatedByName: "Grace Mensah", Comment: "wrap-up"},
	}
	snap := snapOf(subs, history, comments, nil)

	events, err := reports.Timeline(snap, "s1")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}

	// Stage 2 is done (submission completed). Its successor in the sorted
	// sequence is stage 3, which is pending and undated, so no duration. The
	// 13 pending stages separate it from the comment.
	if events[1].DurationDays != nil {
		t.Errorf("stage 2 duration = %v, want nil (next emitted event is undated)", *events[1].DurationDays)
	}
}

func TestTimeline_UnknownSubmission(t *testing.T) {
	snap := snapOf(nil, nil, nil, nil)
	_, err := reports.Timeline(snap, "ghost")
	if !errors.Is(err, reports.ErrSubmissionNotFound) {
		t.Errorf("error = %v, want ErrSubmissionNotFound", err)
	}
}
