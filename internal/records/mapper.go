package records

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// parseTimestamp converts a store timestamp string into a *time.Time.
// Empty strings become nil (absent optional), and unparseable values are
// logged and treated as absent rather than failing the whole snapshot.
func parseTimestamp(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	log.Warn().Str("value", raw).Msg("Skipping unparseable timestamp")
	return nil
}

func mapSubmission(dto submissionDTO) Submission {
	sub := Submission{
		ID:                  dto.ID,
		TrackingNumber:      dto.TrackingNumber,
		Title:               dto.Title,
		Organization:        dto.Organization,
		SubmitterName:       dto.SubmitterName,
		CurrentStage:        dto.CurrentStage,
		StageName:           dto.StageName,
		Status:              SubmissionStatus(dto.Status),
		ProgressPercentage:  dto.ProgressPercentage,
		SubmittedAt:         parseTimestamp(dto.SubmittedAt),
		CompletedAt:         parseTimestamp(dto.CompletedAt),
		AssignedOfficerID:   dto.AssignedOfficerID,
		AssignedOfficerName: dto.AssignedOfficerName,
		AssignedAt:          parseTimestamp(dto.AssignedAt),
		DocumentFilename:    dto.DocumentFilename,
		FinalReportPath:     dto.FinalReportPath,
	}
	for _, doc := range dto.SupportingDocs {
		sub.SupportingDocs = append(sub.SupportingDocs, SupportingDoc(doc))
	}
	return sub
}

func mapSubmissions(dtos []submissionDTO) []Submission {
	out := make([]Submission, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, mapSubmission(dto))
	}
	return out
}

// mapStageHistory converts history rows and re-sorts them by entry date
// ascending. The store is asked for this order already, but the engine
// depends on it, so it is not trusted blindly. Entries without a date sort
// last, then stage number breaks ties deterministically.
func mapStageHistory(dtos []stageHistoryDTO) []StageHistoryEntry {
	out := make([]StageHistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, StageHistoryEntry{
			SubmissionID: dto.SubmissionID,
			StageNumber:  dto.StageNumber,
			CreatedAt:    parseTimestamp(dto.CreatedAt),
			ActionByName: dto.ActionByName,
			Notes:        dto.Notes,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CreatedAt, out[j].CreatedAt
		switch {
		case a == nil && b == nil:
			return out[i].StageNumber < out[j].StageNumber
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		default:
			return out[i].StageNumber < out[j].StageNumber
		}
	})
	return out
}

func mapComments(dtos []commentDTO) []Comment {
	out := make([]Comment, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, Comment{
			SubmissionID:  dto.SubmissionID,
			CreatedAt:     parseTimestamp(dto.CreatedAt),
			CreatedByName: dto.CreatedByName,
			Comment:       dto.Comment,
			IsInternal:    dto.IsInternal,
		})
	}
	return out
}

func mapStaff(dtos []staffDTO) []StaffProfile {
	out := make([]StaffProfile, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, StaffProfile{
			UserID:       dto.UserID,
			FullName:     dto.FullName,
			ContactEmail: dto.ContactEmail,
		})
	}
	return out
}
