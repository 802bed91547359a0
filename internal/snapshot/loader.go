package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"ria-analytics/internal/records"
)

// Loader fetches the four record collections and assembles a Snapshot.
type Loader struct {
	client records.Client
}

// NewLoader creates a Loader over the given record-store client.
func NewLoader(client records.Client) *Loader {
	return &Loader{client: client}
}

// Fetch issues the four collection reads concurrently and joins them. All
// four must succeed; a failure of any one aborts the snapshot so reports are
// never computed over partial data. Cancellation is caller-driven through
// ctx.
func (l *Loader) Fetch(ctx context.Context) (*Snapshot, error) {
	started := time.Now()

	var (
		subs     []records.Submission
		history  []records.StageHistoryEntry
		comments []records.Comment
		staff    []records.StaffProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subs, err = l.client.ListSubmissions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = l.client.ListStageHistory(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = l.client.ListComments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		staff, err = l.client.ListStaff(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("snapshot fetch failed: %w", err)
	}

	// TakenAt is captured once here, after all reads joined, and becomes the
	// single "now" for every report computed from this snapshot.
	snap := New(time.Now(), subs, history, comments, staff)

	log.Info().
		Int("submissions", len(subs)).
		Int("history", len(history)).
		Int("comments", len(comments)).
		Int("staff", len(staff)).
		Dur("elapsed", time.Since(started)).
		Msg("Snapshot assembled")

	return snap, nil
}
