// Package snapshot assembles a single point-in-time, internally consistent
// read of the four record collections the analytics engine computes over.
// A snapshot is immutable once built; "live" behavior is re-fetching a new
// snapshot and re-running the reports, never patching one in place.
package snapshot

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"ria-analytics/internal/records"
)

// Snapshot holds the four collections plus derived lookup indexes. TakenAt
// is the one "now" every report computed from this snapshot must share.
type Snapshot struct {
	TakenAt time.Time `json:"takenAt"`

	Submissions  []records.Submission        `json:"submissions"`
	StageHistory []records.StageHistoryEntry `json:"stageHistory"`
	Comments     []records.Comment           `json:"comments"`
	Staff        []records.StaffProfile      `json:"staff"`

	submissionsByID      map[string]records.Submission
	historyBySubmission  map[string][]records.StageHistoryEntry
	commentsBySubmission map[string][]records.Comment
	staffByID            map[string]records.StaffProfile
}

// New builds a snapshot from raw collections, indexing them for lookup.
// History entries and comments that reference a submission absent from the
// loaded set are dropped silently: the store is eventually consistent and an
// orphan row is expected noise, not an error.
func New(takenAt time.Time, subs []records.Submission, history []records.StageHistoryEntry, comments []records.Comment, staff []records.StaffProfile) *Snapshot {
	s := &Snapshot{
		TakenAt:              takenAt,
		Submissions:          subs,
		Staff:                staff,
		submissionsByID:      make(map[string]records.Submission, len(subs)),
		historyBySubmission:  make(map[string][]records.StageHistoryEntry),
		commentsBySubmission: make(map[string][]records.Comment),
		staffByID:            make(map[string]records.StaffProfile, len(staff)),
	}

	for _, sub := range subs {
		s.submissionsByID[sub.ID] = sub
	}
	for _, p := range staff {
		s.staffByID[p.UserID] = p
	}

	orphanHistory := 0
	for _, h := range history {
		if _, ok := s.submissionsByID[h.SubmissionID]; !ok {
			orphanHistory++
			continue
		}
		s.StageHistory = append(s.StageHistory, h)
		s.historyBySubmission[h.SubmissionID] = append(s.historyBySubmission[h.SubmissionID], h)
	}

	orphanComments := 0
	for _, c := range comments {
		if _, ok := s.submissionsByID[c.SubmissionID]; !ok {
			orphanComments++
			continue
		}
		s.Comments = append(s.Comments, c)
		s.commentsBySubmission[c.SubmissionID] = append(s.commentsBySubmission[c.SubmissionID], c)
	}

	if orphanHistory > 0 || orphanComments > 0 {
		log.Debug().
			Int("history", orphanHistory).
			Int("comments", orphanComments).
			Msg("Dropped records referencing unknown submissions")
	}

	for id := range s.historyBySubmission {
		sortHistory(s.historyBySubmission[id])
	}
	for id := range s.commentsBySubmission {
		sortComments(s.commentsBySubmission[id])
	}

	return s
}

// Submission looks up one submission by ID.
func (s *Snapshot) Submission(id string) (records.Submission, bool) {
	sub, ok := s.submissionsByID[id]
	return sub, ok
}

// HistoryFor returns the stage-history entries for one submission, sorted by
// entry date ascending (undated entries last).
func (s *Snapshot) HistoryFor(submissionID string) []records.StageHistoryEntry {
	return s.historyBySubmission[submissionID]
}

// HistoryEntry returns the entry for a (submission, stage) pair, if any.
func (s *Snapshot) HistoryEntry(submissionID string, stageNumber int) (records.StageHistoryEntry, bool) {
	for _, h := range s.historyBySubmission[submissionID] {
		if h.StageNumber == stageNumber {
			return h, true
		}
	}
	return records.StageHistoryEntry{}, false
}

// CommentsFor returns the comments for one submission, oldest first.
func (s *Snapshot) CommentsFor(submissionID string) []records.Comment {
	return s.commentsBySubmission[submissionID]
}

// StaffByID looks up one staff profile.
func (s *Snapshot) StaffByID(userID string) (records.StaffProfile, bool) {
	p, ok := s.staffByID[userID]
	return p, ok
}

func sortHistory(entries []records.StageHistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].CreatedAt, entries[j].CreatedAt
		switch {
		case a == nil && b == nil:
			return entries[i].StageNumber < entries[j].StageNumber
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		default:
			return entries[i].StageNumber < entries[j].StageNumber
		}
	})
}

func sortComments(comments []records.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		a, b := comments[i].CreatedAt, comments[j].CreatedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
}
