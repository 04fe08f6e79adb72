package schema

// Custom string types for type safety.
type (
	// BreakdownKey represents keys used in scoring breakdowns.
	BreakdownKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// Breakdown keys used in the scoring logic.
const (
	BreakdownTechnicalComplexity BreakdownKey = "technical_complexity" // keyword heuristics
	BreakdownGitHubMetrics       BreakdownKey = "github_metrics"       // stars, forks, watchers
	BreakdownRecency             BreakdownKey = "recency"              // decay since last update
)

// Component weights of the final score. They sum to 1.0 and are not configurable.
const (
	WeightTechnicalComplexity = 0.5
	WeightGitHubMetrics       = 0.3
	WeightRecency             = 0.2
)

// Score bounds shared by every sub-score and the final score.
const (
	MinScore = 0.0
	MaxScore = 10.0
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	PromOut    OutputMode = "prom"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllBreakdownKeys lists the score components in display order.
var AllBreakdownKeys = []BreakdownKey{BreakdownTechnicalComplexity, BreakdownGitHubMetrics, BreakdownRecency}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
	PromOut:    {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// GetDefaultWeights returns the weight table of the final score.
// A fresh map is returned on every call so callers may not alter the constants.
func GetDefaultWeights() map[BreakdownKey]float64 {
	return map[BreakdownKey]float64{
		BreakdownTechnicalComplexity: WeightTechnicalComplexity,
		BreakdownGitHubMetrics:       WeightGitHubMetrics,
		BreakdownRecency:             WeightRecency,
	}
}
