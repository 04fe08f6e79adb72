// Package importer loads project seed files into the project store.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/huangsam/folio/core/algo"
	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// Load reads a JSON or YAML seed file into project records.
// The file holds a list of projects or an object with a "projects" list.
func Load(path string) ([]schema.ProjectRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON seed %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML seed %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported seed file extension %q: use .json, .yaml or .yml", filepath.Ext(path))
	}

	return decodeProjects(raw)
}

// decodeProjects converts a decoded document into validated project records.
func decodeProjects(raw any) ([]schema.ProjectRecord, error) {
	if doc, ok := raw.(map[string]any); ok {
		raw = doc["projects"]
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: seed must be a list of projects or an object with a projects list", algo.ErrInvalidInput)
	}

	records := make([]schema.ProjectRecord, 0, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: record %d: expected an object, got %T", algo.ErrInvalidInput, i, item)
		}
		p, err := decodeProject(fields)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, p)
	}
	return records, nil
}

func decodeProject(fields map[string]any) (schema.ProjectRecord, error) {
	var p schema.ProjectRecord
	var err error

	if p.Name, err = stringField(fields, "name"); err != nil {
		return p, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return p, fmt.Errorf("%w: field \"name\" is required", algo.ErrInvalidInput)
	}
	if p.Description, err = stringField(fields, "description"); err != nil {
		return p, err
	}
	if p.Language, err = stringField(fields, "language"); err != nil {
		return p, err
	}
	if p.URL, err = stringField(fields, "url"); err != nil {
		return p, err
	}

	var id, githubID int64
	if id, err = intField(fields, "id"); err != nil {
		return p, err
	}
	if githubID, err = intField(fields, "github_id"); err != nil {
		return p, err
	}
	p.ID, p.GitHubID = id, githubID

	for _, c := range []struct {
		key string
		dst *int
	}{{"stars", &p.Stars}, {"forks", &p.Forks}, {"watchers", &p.Watchers}} {
		n, err := intField(fields, c.key)
		if err != nil {
			return p, err
		}
		if n < 0 {
			return p, fmt.Errorf("%w: field %q must be >= 0 (received %d)", algo.ErrInvalidInput, c.key, n)
		}
		*c.dst = int(n)
	}

	if p.Topics, err = topicsField(fields); err != nil {
		return p, err
	}
	if p.Featured, err = boolField(fields, "featured"); err != nil {
		return p, err
	}
	if p.CreatedAt, err = timeField(fields, "created_at"); err != nil {
		return p, err
	}
	if p.UpdatedAt, err = timeField(fields, "updated_at"); err != nil {
		return p, err
	}
	return p, algo.Validate(p)
}

func stringField(fields map[string]any, key string) (string, error) {
	switch v := fields[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("%w: field %q must be a string, got %T", algo.ErrInvalidInput, key, v)
	}
}

func intField(fields map[string]any, key string) (int64, error) {
	switch v := fields[key].(type) {
	case nil:
		return 0, nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			break
		}
		return int64(v), nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int64(v), nil
		}
	}
	return 0, fmt.Errorf("%w: field %q must be an integer, got %v", algo.ErrInvalidInput, key, fields[key])
}

func boolField(fields map[string]any, key string) (bool, error) {
	switch v := fields[key].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	default:
		return false, fmt.Errorf("%w: field %q must be a boolean, got %T", algo.ErrInvalidInput, key, v)
	}
}

func topicsField(fields map[string]any) ([]string, error) {
	switch v := fields["topics"].(type) {
	case nil:
		return nil, nil
	case []any:
		topics := make([]string, 0, len(v))
		for _, t := range v {
			s, ok := t.(string)
			if !ok {
				return nil, fmt.Errorf("%w: field \"topics\" must contain strings, got %T", algo.ErrInvalidInput, t)
			}
			topics = append(topics, s)
		}
		return topics, nil
	default:
		return nil, fmt.Errorf("%w: field \"topics\" must be a list, got %T", algo.ErrInvalidInput, v)
	}
}

// timeField accepts ISO-8601 strings and YAML timestamps. Naive values are UTC.
func timeField(fields map[string]any, key string) (time.Time, error) {
	switch v := fields[key].(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v.UTC(), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return time.Time{}, nil
		}
		t, err := contract.ParseTimestamp(v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: field %q: %v", algo.ErrInvalidInput, key, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("%w: field %q must be a timestamp, got %T", algo.ErrInvalidInput, key, v)
	}
}

// Import upserts records into store, matching on GitHub id and then name.
func Import(ctx context.Context, store contract.ProjectStore, records []schema.ProjectRecord) (schema.ImportResult, error) {
	result := schema.ImportResult{Total: len(records)}
	for _, p := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		_, created, err := store.Upsert(ctx, p)
		if err != nil {
			return result, fmt.Errorf("failed to import %q: %w", p.Name, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result, nil
}
