//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	// sharedFolioPath holds the path to a shared folio binary built once for all tests.
	sharedFolioPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// seedPath is the seed file shared by the integration tests, relative to the project root.
const seedPath = "integration/testdata/projects.yaml"

// asOf pins recency so that rankings are reproducible.
const asOf = "2024-06-01T00:00:00Z"

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getFolioBinary returns the path to the folio binary, building it once if needed.
func getFolioBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "folio-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		folioPath := filepath.Join(tempDir, "folio")
		buildCmd := exec.Command("go", "build", "-o", folioPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build folio: %v\n%s", err, out))
		}

		sharedFolioPath = folioPath
	})

	return sharedFolioPath
}

// runFolioCommand runs folio from the project root and returns its stdout.
func runFolioCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getFolioBinary(), args...)
	cmd.Dir = "../" // Run from project root
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), stdout.String(), stderr.String())
		return stdout.String(), err
	}
	return stdout.String(), nil
}
