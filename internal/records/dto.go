package records

// DTO structs mirror the record store's wire shapes. The store exposes
// snake_case column names and RFC3339 timestamps as strings; the mapper in
// mapper.go converts these into the model types in types.go.

// submissionDTO is one row of the submissions collection.
type submissionDTO struct {
	ID                  string             `json:"id"`
	TrackingNumber      string             `json:"tracking_number"`
	Title               string             `json:"title"`
	Organization        string             `json:"organization"`
	SubmitterName       string             `json:"submitter_name"`
	CurrentStage        int                `json:"current_stage"`
	StageName           string             `json:"stage_name"`
	Status              string             `json:"status"`
	ProgressPercentage  int                `json:"progress_percentage"`
	SubmittedAt         string             `json:"submitted_at"`
	CompletedAt         string             `json:"completed_at"`
	AssignedOfficerID   string             `json:"assigned_officer_id"`
	AssignedOfficerName string             `json:"assigned_officer_name"`
	AssignedAt          string             `json:"assigned_at"`
	DocumentFilename    string             `json:"document_filename"`
	SupportingDocs      []supportingDocDTO `json:"supporting_docs"`
	FinalReportPath     string             `json:"final_report_path"`
}

type supportingDocDTO struct {
	Filename string `json:"filename"`
}

// stageHistoryDTO is one row of the stage_history collection.
type stageHistoryDTO struct {
	SubmissionID string `json:"submission_id"`
	StageNumber  int    `json:"stage_number"`
	CreatedAt    string `json:"created_at"`
	ActionByName string `json:"action_by_name"`
	Notes        string `json:"notes"`
}

// commentDTO is one row of the comments collection.
type commentDTO struct {
	SubmissionID  string `json:"submission_id"`
	CreatedAt     string `json:"created_at"`
	CreatedByName string `json:"created_by_name"`
	Comment       string `json:"comment"`
	IsInternal    bool   `json:"is_internal"`
}

// staffDTO is one row of the staff_profiles collection.
type staffDTO struct {
	UserID       string `json:"user_id"`
	FullName     string `json:"full_name"`
	ContactEmail string `json:"contact_email"`
}

// storeError is the record store's uniform error body. Its message is
// surfaced to callers verbatim.
type storeError struct {
	Message string `json:"message"`
}
