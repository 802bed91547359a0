package reports

import (
	"math"
	"time"

	"ria-analytics/internal/catalog"
	"ria-analytics/internal/sla"
	"ria-analytics/internal/snapshot"
)

// StageDurationStats summarizes the observed dwell durations for one stage
// across every submission that passed through it. When Count is zero every
// other statistic is zero too; callers must check Count before reading Mean,
// since "no measurements" and "zero delay" are otherwise indistinguishable.
type StageDurationStats struct {
	StageNumber          int     `json:"stageNumber"`
	StageName            string  `json:"stageName"`
	ExpectedDays         int     `json:"expectedDays"`
	Count                int     `json:"count"`
	MeanDays             float64 `json:"meanDays"`
	MinDays              int     `json:"minDays"`
	MaxDays              int     `json:"maxDays"`
	PctExceedingExpected float64 `json:"pctExceedingExpected"`
}

// collectStageDurations gathers the multiset of measured dwell durations per
// stage. For a history entry at stage s, the dwell ends at the entry for
// s+1 on the same submission when one exists, or at now when the submission
// is still sitting in s. Entries with no usable end (skipped or backfilled
// stages) yield no measurement.
func collectStageDurations(snap *snapshot.Snapshot, now time.Time) map[int][]int {
	durations := make(map[int][]int)

	for _, h := range snap.StageHistory {
		if h.CreatedAt == nil {
			continue
		}
		sub, ok := snap.Submission(h.SubmissionID)
		if !ok {
			continue
		}

		var end *time.Time
		if next, ok := snap.HistoryEntry(h.SubmissionID, h.StageNumber+1); ok && next.CreatedAt != nil {
			end = next.CreatedAt
		} else if sub.CurrentStage == h.StageNumber {
			end = &now
		}
		if end == nil {
			continue
		}

		durations[h.StageNumber] = append(durations[h.StageNumber], sla.DaysBetween(*h.CreatedAt, *end))
	}

	return durations
}

// StageDurations computes per-stage dwell statistics for all 15 stages in
// catalog order.
func StageDurations(snap *snapshot.Snapshot, now time.Time) []StageDurationStats {
	durations := collectStageDurations(snap, now)

	var out []StageDurationStats
	for _, stage := range catalog.Stages() {
		stats := StageDurationStats{
			StageNumber:  stage.Number,
			StageName:    stage.Name,
			ExpectedDays: stage.ExpectedDays,
		}

		observed := durations[stage.Number]
		if len(observed) > 0 {
			sum := 0
			min, max := observed[0], observed[0]
			exceeding := 0
			for _, d := range observed {
				sum += d
				if d < min {
					min = d
				}
				if d > max {
					max = d
				}
				if d > stage.ExpectedDays {
					exceeding++
				}
			}
			stats.Count = len(observed)
			stats.MeanDays = math.Round(float64(sum)/float64(len(observed))*10) / 10
			stats.MinDays = min
			stats.MaxDays = max
			stats.PctExceedingExpected = math.Round(float64(exceeding)/float64(len(observed))*1000) / 10
		}

		out = append(out, stats)
	}
	return out
}

// BottleneckStage classifies one stage's observed mean against its expected
// duration. MeasuredCount of zero means the severity reflects an absence of
// data, not a healthy stage.
type BottleneckStage struct {
	StageNumber   int      `json:"stageNumber"`
	StageName     string   `json:"stageName"`
	ExpectedDays  int      `json:"expectedDays"`
	MeanDays      float64  `json:"meanDays"`
	Variance      float64  `json:"variance"`
	Severity      Severity `json:"severity"`
	MeasuredCount int      `json:"measuredCount"`
}

// Bottlenecks derives the severity heatmap from the stage duration
// statistics, in catalog order.
func Bottlenecks(snap *snapshot.Snapshot, now time.Time) []BottleneckStage {
	var out []BottleneckStage
	for _, stats := range StageDurations(snap, now) {
		variance := math.Round((stats.MeanDays-float64(stats.ExpectedDays))*10) / 10
		out = append(out, BottleneckStage{
			StageNumber:   stats.StageNumber,
			StageName:     stats.StageName,
			ExpectedDays:  stats.ExpectedDays,
			MeanDays:      stats.MeanDays,
			Variance:      variance,
			Severity:      ClassifyVariance(variance),
			MeasuredCount: stats.Count,
		})
	}
	return out
}
