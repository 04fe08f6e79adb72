package contract

import (
	"context"
	"testing"
	"time"

	"github.com/huangsam/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns raw input equivalent to the CLI defaults.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:        DefaultResultLimit,
		Precision:    DefaultPrecision,
		Output:       "text",
		Workers:      4,
		Color:        "yes",
		DBBackend:    "sqlite",
		GitHubAPIURL: DefaultGitHubAPIURL,
		GitHubRate:   DefaultGitHubRate,
		GitHubCache:  "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{"valid defaults", func(*ConfigRawInput) {}, false},
		{"limit zero", func(in *ConfigRawInput) { in.Limit = 0 }, true},
		{"limit above max", func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, true},
		{"negative offset", func(in *ConfigRawInput) { in.Offset = -1 }, true},
		{"offset", func(in *ConfigRawInput) { in.Offset = 20 }, false},
		{"workers zero", func(in *ConfigRawInput) { in.Workers = 0 }, true},
		{"precision three", func(in *ConfigRawInput) { in.Precision = 3 }, true},
		{"uppercase output accepted", func(in *ConfigRawInput) { in.Output = "JSON" }, false},
		{"unknown output", func(in *ConfigRawInput) { in.Output = "xml" }, true},
		{"parquet without file", func(in *ConfigRawInput) { in.Output = "parquet" }, true},
		{"parquet with file", func(in *ConfigRawInput) { in.Output = "parquet"; in.OutputFile = "out.parquet" }, false},
		{"bad color", func(in *ConfigRawInput) { in.Color = "sometimes" }, true},
		{"bad github cache", func(in *ConfigRawInput) { in.GitHubCache = "often" }, true},
		{"unknown backend", func(in *ConfigRawInput) { in.DBBackend = "oracle" }, true},
		{"mysql without dsn", func(in *ConfigRawInput) { in.DBBackend = "mysql" }, true},
		{"mysql with dsn", func(in *ConfigRawInput) {
			in.DBBackend = "mysql"
			in.DBConnect = "user:pass@tcp(localhost:3306)/folio"
		}, false},
		{"postgres missing dbname", func(in *ConfigRawInput) {
			in.DBBackend = "postgresql"
			in.DBConnect = "host=localhost user=folio"
		}, true},
		{"none backend", func(in *ConfigRawInput) { in.DBBackend = "none" }, false},
		{"github url without scheme", func(in *ConfigRawInput) { in.GitHubAPIURL = "api.github.com" }, true},
		{"github rate zero", func(in *ConfigRawInput) { in.GitHubRate = 0 }, true},
		{"negative featured limit", func(in *ConfigRawInput) { in.FeaturedLimit = -1 }, true},
		{"relative since", func(in *ConfigRawInput) { in.Since = "6 months ago" }, false},
		{"bad since", func(in *ConfigRawInput) { in.Since = "a while back" }, true},
		{"since after as-of", func(in *ConfigRawInput) {
			in.AsOf = "2024-01-01T00:00:00Z"
			in.Since = "2024-06-01T00:00:00Z"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(context.Background(), cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateFields(t *testing.T) {
	input := validInput()
	input.Target = "  options-pricing "
	input.Exclude = "demo-, dotfiles*, ,archive"
	input.Output = "CSV"
	input.GitHubAPIURL = "http://localhost:8080/"
	input.AsOf = "2025-01-01T00:00:00"
	input.Since = "30 days ago"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, input))

	assert.Equal(t, "options-pricing", cfg.Target)
	assert.Equal(t, []string{"demo-", "dotfiles*", "archive"}, cfg.Excludes)
	assert.Equal(t, schema.CSVOut, cfg.Output)
	assert.Equal(t, "http://localhost:8080", cfg.GitHubAPIURL)
	assert.Equal(t, DefaultFeaturedLimit, cfg.FeaturedLimit)
	assert.True(t, cfg.UseColors)
	assert.True(t, cfg.GitHubCache)

	asOf := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, asOf, cfg.AsOf)
	assert.Equal(t, asOf, cfg.ReferenceTime())
	assert.Equal(t, asOf.Add(-30*24*time.Hour), cfg.Since)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{ResultLimit: 5, Excludes: []string{"demo"}}
	clone := cfg.Clone()
	clone.Excludes[0] = "changed"
	clone.ResultLimit = 9

	assert.Equal(t, "demo", cfg.Excludes[0])
	assert.Equal(t, 5, cfg.ResultLimit)
}

func TestReferenceTimeDefaultsToNow(t *testing.T) {
	before := time.Now().UTC()
	got := (&Config{}).ReferenceTime()
	assert.False(t, got.Before(before))
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user@localhost/folio"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user@tcp(localhost)"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost dbname=folio"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, ""))
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "folio"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "folio", profile.Prefix)
}
