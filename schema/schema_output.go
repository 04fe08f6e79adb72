package schema

// Score label constants on the 0-10 scale.
const (
	ExceptionalValue = "Exceptional"
	StrongValue      = "Strong"
	SolidValue       = "Solid"
	EmergingValue    = "Emerging"
)

// EnrichedProjectResult adds presentation data to a ProjectResult.
type EnrichedProjectResult struct {
	Label string `json:"label"`
	ProjectResult
}

// GetPlainLabel returns a plain text label for a score on the 0-10 scale.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 8:
		return ExceptionalValue
	case score >= 6:
		return StrongValue
	case score >= 4:
		return SolidValue
	default:
		return EmergingValue
	}
}

// EnrichProjects adds labels to a list of ranked project results.
func EnrichProjects(results []ProjectResult) []EnrichedProjectResult {
	output := make([]EnrichedProjectResult, len(results))
	for i, r := range results {
		output[i] = EnrichedProjectResult{
			Label:         GetPlainLabel(r.Score()),
			ProjectResult: r,
		}
	}
	return output
}
