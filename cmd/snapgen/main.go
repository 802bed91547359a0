// Command snapgen generates a synthetic review-pipeline snapshot and stores
// it in a snapshot cache database. Generation is seeded, so a given seed and
// count always produce the same snapshot and therefore identical reports:
// useful for demos and for regenerating test fixtures.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"ria-analytics/internal/catalog"
	"ria-analytics/internal/records"
	"ria-analytics/internal/snapshot"
)

func main() {
	var (
		out   = flag.String("out", "snapshots.db", "snapshot cache database to write")
		count = flag.Int("count", 40, "number of submissions to generate")
		seed  = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := generate(*count, *seed, now)

	cache, err := snapshot.OpenCache(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cache.Close()

	id, err := cache.Save(snap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated snapshot %s: %d submissions, %d history entries, %d comments\n",
		id, len(snap.Submissions), len(snap.StageHistory), len(snap.Comments))
}

var officers = []records.StaffProfile{
	{UserID: "off-1", FullName: "Amadi Okafor", ContactEmail: "amadi.okafor@example.gov"},
	{UserID: "off-2", FullName: "Grace Mensah", ContactEmail: "grace.mensah@example.gov"},
	{UserID: "off-3", FullName: "Kwame Asante", ContactEmail: "kwame.asante@example.gov"},
}

var organizations = []string{
	"Ministry of Trade", "Central Bank", "Energy Commission",
	"Telecom Authority", "Food Standards Agency",
}

func generate(count int, seed int64, now time.Time) *snapshot.Snapshot {
	rng := rand.New(rand.NewSource(seed))

	var subs []records.Submission
	var history []records.StageHistoryEntry
	var comments []records.Comment

	for i := 0; i < count; i++ {
		id := fmt.Sprintf("sub-%03d", i+1)
		submitted := now.AddDate(0, 0, -(5 + rng.Intn(60)))

		// Walk the pipeline stage by stage until we run out of elapsed time
		// or reach the end.
		stage := 1
		entered := submitted
		history = append(history, historyEntry(id, 1, entered))
		for stage < catalog.StageCount {
			dwell := time.Duration(rng.Intn(4*24)) * time.Hour
			next := entered.Add(dwell)
			if next.After(now) {
				break
			}
			stage++
			entered = next
			history = append(history, historyEntry(id, stage, entered))
		}

		sub := records.Submission{
			ID:                 id,
			TrackingNumber:     fmt.Sprintf("RIA-2026-%04d", i+1),
			Title:              fmt.Sprintf("Impact Assessment %d", i+1),
			Organization:       organizations[rng.Intn(len(organizations))],
			SubmitterName:      fmt.Sprintf("Submitter %d", i+1),
			CurrentStage:       stage,
			StageName:          catalog.Name(stage),
			Status:             records.StatusInReview,
			ProgressPercentage: stage * 100 / catalog.StageCount,
			SubmittedAt:        &submitted,
			DocumentFilename:   fmt.Sprintf("assessment-%03d.pdf", i+1),
		}

		if stage == 1 {
			sub.Status = records.StatusSubmitted
		}
		if stage == catalog.StageCount {
			sub.Status = records.StatusCompleted
			completed := entered
			sub.CompletedAt = &completed
			sub.ProgressPercentage = 100
			sub.FinalReportPath = fmt.Sprintf("reports/final-%03d.pdf", i+1)
		}

		if rng.Float64() < 0.85 {
			officer := officers[rng.Intn(len(officers))]
			assigned := submitted.Add(24 * time.Hour)
			sub.AssignedOfficerID = officer.UserID
			sub.AssignedOfficerName = officer.FullName
			sub.AssignedAt = &assigned
		}

		for c := 0; c < rng.Intn(3); c++ {
			at := submitted.AddDate(0, 0, 1+rng.Intn(5))
			comments = append(comments, records.Comment{
				SubmissionID:  id,
				CreatedAt:     &at,
				CreatedByName: officers[rng.Intn(len(officers))].FullName,
				Comment:       fmt.Sprintf("Review note %d for %s", c+1, id),
				IsInternal:    rng.Float64() < 0.5,
			})
		}

		subs = append(subs, sub)
	}

	return snapshot.New(now, subs, history, comments, officers)
}

func historyEntry(submissionID string, stage int, at time.Time) records.StageHistoryEntry {
	created := at
	return records.StageHistoryEntry{
		SubmissionID: submissionID,
		StageNumber:  stage,
		CreatedAt:    &created,
		ActionByName: "Pipeline Officer",
	}
}
