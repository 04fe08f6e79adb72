package schema

// MetricsComponent describes one weighted component of the final score for display purposes.
type MetricsComponent struct {
	Key     BreakdownKey `json:"key"`
	Purpose string       `json:"purpose"`
	Weight  float64      `json:"weight"`
	Formula string       `json:"formula"`
}

// MetricsKeyword is a single keyword indicator and its weight.
type MetricsKeyword struct {
	Keyword string  `json:"keyword"`
	Weight  float64 `json:"weight"`
}

// MetricsCategory is a keyword indicator table used by technical complexity.
type MetricsCategory struct {
	Name     string           `json:"name"`
	Weight   float64          `json:"weight"`
	Keywords []MetricsKeyword `json:"keywords"`
}

// MetricsRenderModel contains all processed data needed for displaying metrics definitions.
type MetricsRenderModel struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Formula     string             `json:"formula"`
	Components  []MetricsComponent `json:"components"`
	Categories  []MetricsCategory  `json:"categories"`
	Notes       []string           `json:"notes"`
}
