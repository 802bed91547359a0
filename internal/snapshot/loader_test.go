package snapshot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ria-analytics/internal/records"
)

type fakeClient struct {
	subs     []records.Submission
	history  []records.StageHistoryEntry
	comments []records.Comment
	staff    []records.StaffProfile

	historyErr error
}

func (f *fakeClient) ListSubmissions(ctx context.Context) ([]records.Submission, error) {
	return f.subs, nil
}

func (f *fakeClient) ListStageHistory(ctx context.Context) ([]records.StageHistoryEntry, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeClient) ListComments(ctx context.Context) ([]records.Comment, error) {
	return f.comments, nil
}

func (f *fakeClient) ListStaff(ctx context.Context) ([]records.StaffProfile, error) {
	return f.staff, nil
}

func TestLoader_FetchJoinsAllCollections(t *testing.T) {
	client := &fakeClient{
		subs:     []records.Submission{{ID: "s1", TrackingNumber: "RIA-1"}},
		history:  []records.StageHistoryEntry{{SubmissionID: "s1", StageNumber: 1, CreatedAt: day(0)}},
		comments: []records.Comment{{SubmissionID: "s1", CreatedAt: day(0), Comment: "hello"}},
		staff:    []records.StaffProfile{{UserID: "u1", FullName: "Grace Mensah"}},
	}

	snap, err := NewLoader(client).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if snap.TakenAt.IsZero() {
		t.Error("TakenAt not captured")
	}
	if len(snap.Submissions) != 1 || len(snap.StageHistory) != 1 || len(snap.Comments) != 1 || len(snap.Staff) != 1 {
		t.Errorf("collection sizes = %d/%d/%d/%d, want 1 each",
			len(snap.Submissions), len(snap.StageHistory), len(snap.Comments), len(snap.Staff))
	}
}

func TestLoader_FetchAbortsOnAnyFailure(t *testing.T) {
	storeErr := errors.New("JWT expired")
	client := &fakeClient{
		subs:       []records.Submission{{ID: "s1"}},
		historyErr: storeErr,
	}

	snap, err := NewLoader(client).Fetch(context.Background())
	if snap != nil {
		t.Error("a failed fetch must not yield a partial snapshot")
	}
	if !errors.Is(err, storeErr) {
		t.Fatalf("error %v should wrap the store error", err)
	}
	if !strings.Contains(err.Error(), "snapshot fetch failed") {
		t.Errorf("error = %q, want the snapshot fetch prefix", err)
	}
}
