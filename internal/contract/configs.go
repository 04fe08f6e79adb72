package contract

import (
	"context"
	"fmt"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/folio/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit   = 10
	MaxResultLimit       = 1000
	DefaultPrecision     = 2
	DefaultGitHubAPIURL  = "https://api.github.com"
	DefaultGitHubRate    = 5.0
	DefaultFeaturedLimit = 6
	DefaultFlaggedOnly   = true
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for ranking.
// This struct is the "final, validated" config.
type Config struct {
	Target      string // project id or name for score, seed path for import
	ResultLimit int
	Offset      int // number of ranked results to skip
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Explain     bool
	Detail      bool
	Excludes    []string
	Language    string
	Since       time.Time // zero means no filter
	AsOf        time.Time // reference time for recency
	Width       int       // Terminal width override (0 = auto-detect)
	UseColors   bool

	DBBackend schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext

	GitHubUser   string
	GitHubToken  string // Please use env var as this is plaintext
	GitHubAPIURL string
	GitHubRate   float64 // requests per second
	GitHubCache  bool

	Record        bool // persist ranking runs in the history tables
	FeaturedLimit int
	FlaggedOnly   bool
	Watch         bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Target string

	// --- Fields from rootCmd.PersistentFlags() ---
	Limit        int     `mapstructure:"limit"`
	Offset       int     `mapstructure:"offset"`
	Precision    int     `mapstructure:"precision"`
	Output       string  `mapstructure:"output"`
	OutputFile   string  `mapstructure:"output-file"`
	Workers      int     `mapstructure:"workers"`
	Exclude      string  `mapstructure:"exclude"`
	Language     string  `mapstructure:"language"`
	Since        string  `mapstructure:"since"`
	AsOf         string  `mapstructure:"as-of"`
	Width        int     `mapstructure:"width"`
	Color        string  `mapstructure:"color"`
	DBBackend    string  `mapstructure:"db-backend"`
	DBConnect    string  `mapstructure:"db-connect"`
	GitHubUser   string  `mapstructure:"github-user"`
	GitHubToken  string  `mapstructure:"github-token"`
	GitHubAPIURL string  `mapstructure:"github-api-url"`
	GitHubRate   float64 `mapstructure:"github-rate"`
	GitHubCache  string  `mapstructure:"github-cache"`

	// --- Fields from rankCmd.Flags() ---
	Explain bool `mapstructure:"explain"`
	Detail  bool `mapstructure:"detail"`
	Record  bool `mapstructure:"record"`

	// --- Fields from featuredCmd.Flags() ---
	FeaturedLimit int  `mapstructure:"featured-limit"`
	FlaggedOnly   bool `mapstructure:"flagged-only"`

	// --- Fields from importCmd.Flags() ---
	Watch bool `mapstructure:"watch"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// ReferenceTime returns the time recency is measured against.
func (c *Config) ReferenceTime() time.Time {
	if c.AsOf.IsZero() {
		return time.Now().UTC()
	}
	return c.AsOf
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(_ context.Context, cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processGitHubConfig(cfg, input); err != nil {
		return err
	}
	return processTimeFilters(cfg, input, time.Now().UTC())
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output and filtering fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Target = strings.TrimSpace(input.Target)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.Record = input.Record
	cfg.FlaggedOnly = input.FlaggedOnly
	cfg.Watch = input.Watch
	cfg.Language = strings.TrimSpace(input.Language)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Offset < 0 {
		return fmt.Errorf("offset cannot be negative (received %d)", input.Offset)
	}
	cfg.Offset = input.Offset

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.FeaturedLimit < 0 || input.FeaturedLimit > MaxResultLimit {
		return fmt.Errorf("featured-limit must be between 0 and %d (received %d)", MaxResultLimit, input.FeaturedLimit)
	}
	cfg.FeaturedLimit = input.FeaturedLimit
	if cfg.FeaturedLimit == 0 {
		cfg.FeaturedLimit = DefaultFeaturedLimit
	}

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, prom", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	cfg.Excludes = nil
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.Excludes = append(cfg.Excludes, trimmed)
			}
		}
	}

	return nil
}

// validateBackendConfig validates the database backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.DBBackend = schema.DatabaseBackend(strings.ToLower(input.DBBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.DBBackend]; !ok {
		return fmt.Errorf("invalid db backend '%s'. must be sqlite, mysql, postgresql, none", input.DBBackend)
	}
	cfg.DBConnect = input.DBConnect
	return ValidateDatabaseConnectionString(cfg.DBBackend, cfg.DBConnect)
}

// processGitHubConfig validates the GitHub API settings.
func processGitHubConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.GitHubUser = strings.TrimSpace(input.GitHubUser)
	cfg.GitHubToken = strings.TrimSpace(input.GitHubToken)

	cfg.GitHubAPIURL = strings.TrimRight(strings.TrimSpace(input.GitHubAPIURL), "/")
	if cfg.GitHubAPIURL == "" {
		cfg.GitHubAPIURL = DefaultGitHubAPIURL
	}
	u, err := url.Parse(cfg.GitHubAPIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid github-api-url '%s'. must be an http(s) URL", input.GitHubAPIURL)
	}

	if input.GitHubRate <= 0 {
		return fmt.Errorf("github-rate must be greater than 0 (received %.2f)", input.GitHubRate)
	}
	cfg.GitHubRate = input.GitHubRate

	useCache, err := ParseBoolString(input.GitHubCache)
	if err != nil {
		return fmt.Errorf("invalid --github-cache value: %w", err)
	}
	cfg.GitHubCache = useCache
	return nil
}

// processTimeFilters handles the --since filter and the --as-of reference time.
func processTimeFilters(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.AsOf = time.Time{}
	if input.AsOf != "" {
		t, err := ParseTimeInput(input.AsOf, now)
		if err != nil {
			return fmt.Errorf("invalid --as-of: %w", err)
		}
		cfg.AsOf = t
	}

	cfg.Since = time.Time{}
	if input.Since != "" {
		t, err := ParseTimeInput(input.Since, cfg.ReferenceTime())
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		cfg.Since = t
	}

	if !cfg.Since.IsZero() && !cfg.AsOf.IsZero() && cfg.Since.After(cfg.AsOf) {
		return fmt.Errorf("since (%s) cannot be after as-of (%s)", cfg.Since.Format(DateTimeFormat), cfg.AsOf.Format(DateTimeFormat))
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
