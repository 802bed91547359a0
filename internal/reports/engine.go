// Package reports computes the eight analytical views over a workflow
// snapshot. Every computation is a pure function of the snapshot plus the
// one "now" captured when the snapshot was taken; recomputing with the same
// snapshot always yields identical output. Nothing here mutates submission
// state or caches results.
package reports

import (
	"time"

	"ria-analytics/internal/snapshot"
)

// Engine is the report façade: the single entry point the presentation
// layer uses.
type Engine struct {
	snap *snapshot.Snapshot
	now  time.Time
}

// New creates an engine whose "now" is the snapshot's capture time, keeping
// every report in one computation cycle time-consistent.
func New(snap *snapshot.Snapshot) *Engine {
	return NewAt(snap, snap.TakenAt)
}

// NewAt creates an engine with an explicit "now". Used by tests to pin the
// clock.
func NewAt(snap *snapshot.Snapshot, now time.Time) *Engine {
	return &Engine{snap: snap, now: now}
}

// Now returns the engine's captured clock.
func (e *Engine) Now() time.Time {
	return e.now
}

// LiveStatus reports every submission's current position against the
// statutory window.
func (e *Engine) LiveStatus() []LiveStatusEntry {
	return LiveStatus(e.snap, e.now)
}

// Overdue reports the submissions past the statutory window.
func (e *Engine) Overdue() []OverdueEntry {
	return Overdue(e.snap, e.now)
}

// StageDurations reports per-stage dwell statistics.
func (e *Engine) StageDurations() []StageDurationStats {
	return StageDurations(e.snap, e.now)
}

// StuckSubmissions reports submissions sitting too long in one stage.
func (e *Engine) StuckSubmissions() []StuckSubmission {
	return StuckSubmissions(e.snap, e.now)
}

// OfficerWorkloads reports per-officer load and handling time.
func (e *Engine) OfficerWorkloads() []OfficerWorkload {
	return OfficerWorkloads(e.snap)
}

// Bottlenecks reports the per-stage severity heatmap.
func (e *Engine) Bottlenecks() []BottleneckStage {
	return Bottlenecks(e.snap, e.now)
}

// Timeline reconstructs the narrative for one submission.
func (e *Engine) Timeline(submissionID string) ([]TimelineEvent, error) {
	return Timeline(e.snap, submissionID)
}

// Turnaround reports end-to-end review time and SLA compliance.
func (e *Engine) Turnaround() TurnaroundReport {
	return Turnaround(e.snap)
}
