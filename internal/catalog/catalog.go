package catalog

// Stage is one fixed step of the 15-stage regulatory-impact-assessment
// review pipeline. The catalog is static process metadata: defined once at
// startup, never persisted, never mutated.
type Stage struct {
	Number       int    `json:"number"`
	Name         string `json:"name"`
	ExpectedDays int    `json:"expectedDays"`
}

// StageCount is the fixed length of the review pipeline.
const StageCount = 15

// FinalStage is the terminal stage number; a submission is only ever
// completed there.
const FinalStage = StageCount

var stages = []Stage{
	{Number: 1, Name: "Submission Received", ExpectedDays: 1},
	{Number: 2, Name: "Completeness Screening", ExpectedDays: 1},
	{Number: 3, Name: "Preliminary Assessment", ExpectedDays: 1},
	{Number: 4, Name: "Technical Review", ExpectedDays: 2},
	{Number: 5, Name: "Legal Review", ExpectedDays: 2},
	{Number: 6, Name: "Economic Analysis Review", ExpectedDays: 2},
	{Number: 7, Name: "Stakeholder Consultation", ExpectedDays: 3},
	{Number: 8, Name: "Consultation Analysis", ExpectedDays: 2},
	{Number: 9, Name: "Revision Request", ExpectedDays: 1},
	{Number: 10, Name: "Revised Submission Review", ExpectedDays: 1},
	{Number: 11, Name: "Quality Assurance", ExpectedDays: 1},
	{Number: 12, Name: "Director Review", ExpectedDays: 1},
	{Number: 13, Name: "Final Approval", ExpectedDays: 1},
	{Number: 14, Name: "Report Generation", ExpectedDays: 1},
	{Number: 15, Name: "Published", ExpectedDays: 0},
}

// Stages returns the full pipeline in stage-number order. Callers receive a
// copy and may not alter the catalog through it.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// ByNumber returns the stage with the given number, or false when the number
// is outside the pipeline.
func ByNumber(number int) (Stage, bool) {
	if number < 1 || number > StageCount {
		return Stage{}, false
	}
	return stages[number-1], true
}

// Name returns the stage name for a number, or an empty string when the
// number is outside the pipeline.
func Name(number int) string {
	s, ok := ByNumber(number)
	if !ok {
		return ""
	}
	return s.Name
}
