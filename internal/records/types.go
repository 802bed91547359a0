package records

import "time"

// SubmissionStatus is the lifecycle state of a submission.
type SubmissionStatus string

const (
	StatusSubmitted SubmissionStatus = "submitted"
	StatusInReview  SubmissionStatus = "in_review"
	StatusCompleted SubmissionStatus = "completed"
)

// Submission is one regulatory-impact-assessment submission progressing
// through the review pipeline. The analytics engine treats it as read-only
// input; advancement happens elsewhere (staff action against the record
// store).
type Submission struct {
	ID                 string           `json:"id"`
	TrackingNumber     string           `json:"trackingNumber"`
	Title              string           `json:"title"`
	Organization       string           `json:"organization"`
	SubmitterName      string           `json:"submitterName"`
	CurrentStage       int              `json:"currentStage"`
	StageName          string           `json:"stageName"`
	Status             SubmissionStatus `json:"status"`
	ProgressPercentage int              `json:"progressPercentage"`
	SubmittedAt        *time.Time       `json:"submittedAt"`
	CompletedAt        *time.Time       `json:"completedAt,omitempty"`

	AssignedOfficerID   string     `json:"assignedOfficerId,omitempty"`
	AssignedOfficerName string     `json:"assignedOfficerName,omitempty"`
	AssignedAt          *time.Time `json:"assignedAt,omitempty"`

	DocumentFilename string          `json:"documentFilename,omitempty"`
	SupportingDocs   []SupportingDoc `json:"supportingDocs,omitempty"`
	FinalReportPath  string          `json:"finalReportPath,omitempty"`
}

// SupportingDoc is an attachment reference carried on a submission.
type SupportingDoc struct {
	Filename string `json:"filename"`
}

// IsCompleted reports whether the submission reached the terminal state.
func (s Submission) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// StageHistoryEntry records when a submission entered a stage. At most one
// entry exists per (submission, stage) pair; gaps mean "entry date unknown",
// not an error.
type StageHistoryEntry struct {
	SubmissionID string     `json:"submissionId"`
	StageNumber  int        `json:"stageNumber"`
	CreatedAt    *time.Time `json:"createdAt"`
	ActionByName string     `json:"actionByName,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// Comment is an append-only remark on a submission. IsInternal is a display
// attribute; visibility policy belongs to the presentation layer.
type Comment struct {
	SubmissionID  string     `json:"submissionId"`
	CreatedAt     *time.Time `json:"createdAt"`
	CreatedByName string     `json:"createdByName"`
	Comment       string     `json:"comment"`
	IsInternal    bool       `json:"isInternal"`
}

// StaffProfile is reference data for attributing officer names.
type StaffProfile struct {
	UserID       string `json:"userId"`
	FullName     string `json:"fullName"`
	ContactEmail string `json:"contactEmail"`
}
