package reports

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"ria-analytics/internal/catalog"
	"ria-analytics/internal/sla"
	"ria-analytics/internal/snapshot"
)

// EventKind tags a timeline event variant.
type EventKind string

const (
	EventStage      EventKind = "stage"
	EventAssignment EventKind = "assignment"
	EventComment    EventKind = "comment"
	EventDocument   EventKind = "document"
)

// EventStatus is the narrative state of a timeline event.
type EventStatus string

const (
	EventDone    EventStatus = "done"
	EventCurrent EventStatus = "current"
	EventPending EventStatus = "pending"
)

// DocumentKind distinguishes the three document event sources.
type DocumentKind string

const (
	DocumentInitial     DocumentKind = "initial"
	DocumentSupporting  DocumentKind = "supporting"
	DocumentFinalReport DocumentKind = "final_report"
)

// StageEventPayload carries the stage-specific fields of a stage event.
type StageEventPayload struct {
	StageNumber int    `json:"stageNumber"`
	StageName   string `json:"stageName"`
	IsDone      bool   `json:"isDone"`
	Notes       string `json:"notes,omitempty"`
}

// CommentEventPayload carries the comment-specific fields. IsInternal is
// display metadata only; filtering internal comments is the caller's policy.
type CommentEventPayload struct {
	IsInternal bool `json:"isInternal"`
}

// DocumentEventPayload carries the document-specific fields.
type DocumentEventPayload struct {
	Kind     DocumentKind `json:"kind"`
	Filename string       `json:"filename"`
}

// TimelineEvent is one entry of the reconstructed narrative. Exactly one of
// the payload pointers matching Kind is set.
type TimelineEvent struct {
	Kind    EventKind   `json:"kind"`
	Date    *time.Time  `json:"date"`
	Title   string      `json:"title"`
	Actor   string      `json:"actor"`
	Details string      `json:"details,omitempty"`
	Status  EventStatus `json:"status"`

	// DurationDays is the whole-day gap to the next dated event in the
	// sorted sequence, set only on dated, done events.
	DurationDays *int `json:"durationDays,omitempty"`

	Stage      *StageEventPayload    `json:"stage,omitempty"`
	Comment    *CommentEventPayload  `json:"comment,omitempty"`
	Document   *DocumentEventPayload `json:"document,omitempty"`
	Assignment *struct{}             `json:"assignment,omitempty"`
}

// ErrSubmissionNotFound is returned when a timeline is requested for a
// submission absent from the snapshot.
var ErrSubmissionNotFound = errors.New("submission not found in snapshot")

// Timeline reconstructs the full narrative for one submission: the fixed
// 15-stage skeleton first, in stage order regardless of dates, then every
// incidental event (assignment, comments, documents) in date order after it.
// Incidental events are annotations layered after the skeleton, not
// interleaved into it, so the stage backbone stays contiguous even when
// dates are missing or out of order.
func Timeline(snap *snapshot.Snapshot, submissionID string) ([]TimelineEvent, error) {
	sub, ok := snap.Submission(submissionID)
	if !ok {
		return nil, fmt.Errorf("submission %s: %w", submissionID, ErrSubmissionNotFound)
	}

	var events []TimelineEvent

	// 1. Stage skeleton: one event per catalog stage, reached or not.
	// currentStage is authoritative for where the submission stands today;
	// history is only authoritative for entry dates, which may lag.
	for _, stage := range catalog.Stages() {
		ev := TimelineEvent{
			Kind:  EventStage,
			Title: stage.Name,
			Stage: &StageEventPayload{
				StageNumber: stage.Number,
				StageName:   stage.Name,
			},
		}

		switch {
		case stage.Number > sub.CurrentStage:
			ev.Status = EventPending
			ev.Actor = "Pending"
		case stage.Number == sub.CurrentStage && !sub.IsCompleted():
			ev.Status = EventCurrent
			ev.Stage.IsDone = true
		default:
			ev.Status = EventDone
			ev.Stage.IsDone = true
		}

		if ev.Status != EventPending {
			if entry, found := snap.HistoryEntry(sub.ID, stage.Number); found {
				ev.Date = entry.CreatedAt
				ev.Actor = entry.ActionByName
				ev.Details = entry.Notes
				ev.Stage.Notes = entry.Notes
			}
		}

		events = append(events, ev)
	}

	// 2. Assignment.
	if sub.AssignedAt != nil {
		events = append(events, TimelineEvent{
			Kind:       EventAssignment,
			Date:       sub.AssignedAt,
			Title:      "Officer Assigned",
			Actor:      sub.AssignedOfficerName,
			Details:    fmt.Sprintf("Assigned to %s", sub.AssignedOfficerName),
			Status:     EventDone,
			Assignment: &struct{}{},
		})
	}

	// 3. Comments, unfiltered.
	for _, c := range snap.CommentsFor(sub.ID) {
		events = append(events, TimelineEvent{
			Kind:    EventComment,
			Date:    c.CreatedAt,
			Title:   "Comment",
			Actor:   c.CreatedByName,
			Details: c.Comment,
			Status:  EventDone,
			Comment: &CommentEventPayload{IsInternal: c.IsInternal},
		})
	}

	// 4. Documents: the initial submission document, each supporting
	// document, and the final report.
	if sub.DocumentFilename != "" {
		events = append(events, documentEvent(DocumentInitial, sub.DocumentFilename, "Submission Document", sub.SubmitterName, sub.SubmittedAt))
	}
	for _, doc := range sub.SupportingDocs {
		events = append(events, documentEvent(DocumentSupporting, doc.Filename, "Supporting Document", sub.SubmitterName, nil))
	}
	if sub.FinalReportPath != "" {
		events = append(events, documentEvent(DocumentFinalReport, sub.FinalReportPath, "Final Report", sub.AssignedOfficerName, sub.CompletedAt))
	}

	sortTimeline(events)
	annotateDurations(events)

	return events, nil
}

func documentEvent(kind DocumentKind, filename, title, actor string, date *time.Time) TimelineEvent {
	return TimelineEvent{
		Kind:     EventDocument,
		Date:     date,
		Title:    title,
		Actor:    actor,
		Details:  filename,
		Status:   EventDone,
		Document: &DocumentEventPayload{Kind: kind, Filename: filename},
	}
}

// sortTimeline applies the two-tier order: all stage events first, strictly
// by stage number; every non-stage event after them, by date ascending with
// undated events last. The emission order breaks date ties, keeping the
// result stable.
func sortTimeline(events []TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if (a.Kind == EventStage) != (b.Kind == EventStage) {
			return a.Kind == EventStage
		}
		if a.Kind == EventStage {
			return a.Stage.StageNumber < b.Stage.StageNumber
		}
		switch {
		case a.Date == nil:
			return false
		case b.Date == nil:
			return true
		default:
			return a.Date.Before(*b.Date)
		}
	})
}

// annotateDurations fills in the dwell gap from each dated done event to the
// next dated event in the sorted sequence. The gap is to the next emitted
// event, not the next stage; consumers depend on that exact definition.
func annotateDurations(events []TimelineEvent) {
	for i := 0; i < len(events)-1; i++ {
		if events[i].Status != EventDone || events[i].Date == nil {
			continue
		}
		next := events[i+1]
		if next.Date == nil {
			continue
		}
		days := sla.DaysElapsed(*next.Date, *events[i].Date)
		events[i].DurationDays = &days
	}
}
