package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	"ria-analytics/internal/records"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func sampleSnapshot() *Snapshot {
	subs := []records.Submission{
		{ID: "s1", TrackingNumber: "RIA-1", Title: "Data Act", CurrentStage: 3,
			Status: records.StatusInReview, SubmittedAt: day(0)},
	}
	history := []records.StageHistoryEntry{
		{SubmissionID: "s1", StageNumber: 1, CreatedAt: day(0), ActionByName: "Grace Mensah"},
		{SubmissionID: "s1", StageNumber: 2, CreatedAt: day(2), ActionByName: "Grace Mensah"},
	}
	comments := []records.Comment{
		{SubmissionID: "s1", CreatedAt: day(1), CreatedByName: "Grace Mensah", Comment: "reviewing", IsInternal: true},
	}
	staff := []records.StaffProfile{{UserID: "u1", FullName: "Grace Mensah"}}
	return New(base, subs, history, comments, staff)
}

func TestCache_RoundTrip(t *testing.T) {
	cache := openTestCache(t)

	id, err := cache.Save(sampleSnapshot())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored, err := cache.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !restored.TakenAt.Equal(base) {
		t.Errorf("TakenAt = %v, want %v", restored.TakenAt, base)
	}

	sub, ok := restored.Submission("s1")
	if !ok || sub.TrackingNumber != "RIA-1" || sub.SubmittedAt == nil || !sub.SubmittedAt.Equal(base) {
		t.Errorf("restored submission = %+v, %v", sub, ok)
	}
	if got := restored.HistoryFor("s1"); len(got) != 2 || got[1].StageNumber != 2 {
		t.Errorf("restored history = %+v", got)
	}
	cs := restored.CommentsFor("s1")
	if len(cs) != 1 || !cs[0].IsInternal {
		t.Errorf("restored comments = %+v", cs)
	}
	if _, ok := restored.StaffByID("u1"); !ok {
		t.Error("restored staff index missing u1")
	}
}

func TestCache_LoadLatest(t *testing.T) {
	cache := openTestCache(t)

	if _, ok, err := cache.LoadLatest(); err != nil || ok {
		t.Fatalf("LoadLatest on empty cache = ok %v, err %v", ok, err)
	}

	first := sampleSnapshot()
	if _, err := cache.Save(first); err != nil {
		t.Fatalf("Save first: %v", err)
	}

	// saved_at orders lexically on RFC 3339 text, so a strictly later save
	// wins. The sleep keeps the two timestamps distinct.
	time.Sleep(10 * time.Millisecond)

	second := New(base.AddDate(0, 0, 1), []records.Submission{{ID: "s2"}}, nil, nil, nil)
	if _, err := cache.Save(second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	latest, ok, err := cache.LoadLatest()
	if err != nil || !ok {
		t.Fatalf("LoadLatest = ok %v, err %v", ok, err)
	}
	if _, found := latest.Submission("s2"); !found {
		t.Error("LoadLatest did not return the most recent snapshot")
	}

	infos, err := cache.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(infos))
	}
	if infos[0].TakenAt.Before(infos[1].TakenAt) {
		t.Error("List should return newest snapshots first")
	}
}

func TestCache_LoadUnknownID(t *testing.T) {
	cache := openTestCache(t)
	if _, err := cache.Load("does-not-exist"); err == nil {
		t.Fatal("expected an error for an unknown snapshot ID")
	}
}
