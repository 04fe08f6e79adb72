package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/folio/schema"
)

// Color variables for console output.
var (
	ExceptionalColor = color.New(color.FgGreen, color.Bold) // ExceptionalColor marks standout work.
	StrongColor      = color.New(color.FgCyan, color.Bold)  // StrongColor marks solid portfolio pieces.
	SolidColor       = color.New(color.FgYellow)            // SolidColor is not bold on purpose.
	EmergingColor    = color.New(color.FgWhite)             // EmergingColor is the low-signal default.
)

// GetColorLabel returns a colored text label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := schema.GetPlainLabel(score)

	switch text {
	case schema.ExceptionalValue:
		return ExceptionalColor.Sprint(text)
	case schema.StrongValue:
		return StrongColor.Sprint(text)
	case schema.SolidValue:
		return SolidColor.Sprint(text)
	default:
		return EmergingColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnore returns true if the project name matches any of the exclude patterns.
// Patterns with wildcard characters (*, ?, [ ]) are matched with filepath.Match.
// Patterns ending with '-' are treated as prefixes. Anything else is a
// case-insensitive substring match, so "demo" excludes "django-demo".
func ShouldIgnore(name string, excludes []string) bool {
	lower := strings.ToLower(name)
	for _, ex := range excludes {
		ex = strings.ToLower(strings.TrimSpace(ex))
		if ex == "" {
			continue
		}

		if strings.ContainsAny(ex, "*?[") {
			if ok, err := filepath.Match(ex, lower); err == nil && ok {
				return true
			}
			continue
		}

		switch {
		case strings.HasSuffix(ex, "-"):
			if strings.HasPrefix(lower, ex) {
				return true
			}
		case strings.Contains(lower, ex):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for project storage.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".folio.db"
	}
	return filepath.Join(homeDir, ".folio.db")
}

// TruncateName truncates a project name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
