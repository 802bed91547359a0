package reports

// Severity is the ordinal classification of how far a measured duration
// exceeds its expectation. It is shared by the bottleneck heatmap and, with
// its own thresholds, the stuck-in-stage alert level.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ClassifyVariance maps a duration variance (observed mean − expected days)
// to a severity. Boundaries are exclusive on the lower side: a variance of
// exactly 0 is low, exactly 1 is medium, exactly 3 is high.
func ClassifyVariance(variance float64) Severity {
	switch {
	case variance > 3:
		return SeverityCritical
	case variance > 1:
		return SeverityHigh
	case variance > 0:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// classifyStuck maps days spent in the current stage to an alert level.
// Every stuck submission is at least medium because the stuck threshold
// already filtered out anything at or under it.
func classifyStuck(daysInStage int) Severity {
	switch {
	case daysInStage > 7:
		return SeverityCritical
	case daysInStage > 5:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
