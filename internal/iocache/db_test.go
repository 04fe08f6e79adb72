package iocache

import (
	"testing"
	"time"

	"github.com/huangsam/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	for _, name := range []string{projectsTable, rankingRunsTable, "_tmp", "T1"} {
		assert.NoError(t, validateTableName(name), name)
	}
	for _, name := range []string{"", "1abc", "drop table;", "a-b", "a b", `x"y`} {
		assert.Error(t, validateTableName(name), name)
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`folio_projects`", quoteTableName(projectsTable, schema.MySQLBackend))
	assert.Equal(t, `"folio_projects"`, quoteTableName(projectsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"folio_projects"`, quoteTableName(projectsTable, schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$3", placeholder(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?", placeholder(schema.MySQLBackend, 3))
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?, ?", placeholders(schema.SQLiteBackend, 2))
	assert.Equal(t, "", placeholders(schema.SQLiteBackend, 0))
}

func TestFormatTime(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 6, 1, 14, 0, 0, 0, zone)

	assert.Nil(t, formatTime(time.Time{}, schema.SQLiteBackend))
	assert.Equal(t, "2024-06-01T12:00:00.000000000Z", formatTime(ts, schema.SQLiteBackend))
	assert.Equal(t, ts.UTC(), formatTime(ts, schema.PostgreSQLBackend))
}

func TestFormatTime_SQLiteSortsAsText(t *testing.T) {
	whole := time.Date(2024, 6, 1, 12, 0, 5, 0, time.UTC)
	half := whole.Add(500 * time.Millisecond)

	a := formatTime(whole, schema.SQLiteBackend).(string)
	b := formatTime(half, schema.SQLiteBackend).(string)
	assert.Len(t, b, len(a))
	assert.Less(t, a, b)

	var scanned nullTime
	require.NoError(t, scanned.Scan(b))
	assert.True(t, half.Equal(scanned.Time))
}

func TestNullTimeScan(t *testing.T) {
	want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		src   any
		valid bool
	}{
		{"nil", nil, false},
		{"native", want.In(time.FixedZone("X", 3600)), true},
		{"rfc3339 string", "2024-06-01T12:00:00Z", true},
		{"mysql bytes", []byte("2024-06-01 12:00:00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n nullTime
			require.NoError(t, n.Scan(tt.src))
			assert.Equal(t, tt.valid, n.Valid)
			if tt.valid {
				assert.True(t, want.Equal(n.Time))
				assert.Equal(t, time.UTC, n.Time.Location())
			}
		})
	}

	var n nullTime
	assert.Error(t, n.Scan(42))
	assert.Error(t, n.Scan("not a time"))
}

func TestOpenDBErrors(t *testing.T) {
	_, err := openDB("oracle", "")
	assert.Error(t, err)

	_, err = openDB(schema.MySQLBackend, "invalid://connection")
	assert.Error(t, err)
}
