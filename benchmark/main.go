// Package main provides a performance benchmarking tool for the Folio CLI.
// It generates seed catalogs of increasing size, imports them into a scratch
// SQLite store and ranks them, treating the first successful run of each command
// as cold and averaging the rest as warm. Results are written as CSV.
//
// Prerequisites:
// - folio binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated seed files and scratch stores
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// BenchmarkResult holds the result of a benchmark command (cold run and average of warm runs).
type BenchmarkResult struct {
	Size     int
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir string
	Timeout time.Duration
	Runs    int
	Sizes   []int
	AsOf    string
}

// seedProject is the subset of a catalog entry the generator fills in.
type seedProject struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Language    string   `yaml:"language"`
	Topics      []string `yaml:"topics,omitempty"`
	Stars       int      `yaml:"stars"`
	Forks       int      `yaml:"forks"`
	Watchers    int      `yaml:"watchers"`
	Featured    bool     `yaml:"featured"`
	UpdatedAt   string   `yaml:"updated_at,omitempty"`
}

var (
	languages    = []string{"Go", "Python", "Rust", "TypeScript", "C++", "Shell"}
	descriptions = []string{
		"Distributed scheduler built on Kubernetes",
		"Machine learning pipeline for time series forecasting",
		"Quantitative trading backtester",
		"Compiler frontend with an LLVM backend",
		"Personal website",
		"Command line utility",
	}
	topicPool = []string{"kubernetes", "ml", "finance", "compiler", "cli", "web", "database"}
)

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 5 * time.Minute,
		Runs:    4,
		Sizes:   []int{100, 1000, 10000},
		AsOf:    "2024-06-01T00:00:00Z",
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the folio binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("folio"); err != nil {
		return fmt.Errorf("folio binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// runBenchmarks executes the import and rank suites for every catalog size
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: sizes %v, %v timeout, %d runs per command\n",
		config.Sizes, config.Timeout, config.Runs)

	for _, size := range config.Sizes {
		fmt.Printf("Benchmarking %d projects\n", size)

		seedPath := filepath.Join(config.WorkDir, fmt.Sprintf("seed_%d.yaml", size))
		if err := writeSeed(seedPath, size); err != nil {
			return nil, fmt.Errorf("failed to write seed for size %d: %w", size, err)
		}

		// Each size gets its own store so runs do not interfere
		home := filepath.Join(config.WorkDir, fmt.Sprintf("home_%d", size))
		if err := os.RemoveAll(home); err != nil {
			return nil, err
		}
		if err := os.MkdirAll(home, 0o755); err != nil {
			return nil, err
		}

		results = append(results,
			runBenchmarkSuite(config, size, home, "import", "Imported", seedPath),
			runBenchmarkSuite(config, size, home, "rank", "", "--as-of", config.AsOf, "--limit", strconv.Itoa(min(size, 1000))),
			runBenchmarkSuite(config, size, home, "featured", "", "--as-of", config.AsOf),
		)
	}

	return results, nil
}

// runBenchmarkSuite runs a command repeatedly and summarizes cold and warm timings
func runBenchmarkSuite(config BenchmarkConfig, size int, home, command, marker string, extraArgs ...string) BenchmarkResult {
	fmt.Printf("  %s (%d runs)\n", command, config.Runs)

	cold, warm := runBenchmark(config, home, command, marker, extraArgs, config.Runs)

	coldTimeStr := "TIMEOUT"
	if cold > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", cold)
	}
	warmAvg := "TIMEOUT"
	if len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Size:     size,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a folio command multiple times against the scratch store
func runBenchmark(config BenchmarkConfig, home, command, marker string, extraArgs []string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{command, "--db-backend", "sqlite"}, extraArgs...)

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("folio", args...)
		cmd.Env = append(os.Environ(), "HOME="+home)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && strings.Contains(string(output), marker) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// writeSeed generates a catalog with the given number of projects
func writeSeed(path string, size int) error {
	rng := rand.New(rand.NewPCG(uint64(size), 42))
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	projects := make([]seedProject, size)
	for i := range projects {
		p := seedProject{
			Name:        fmt.Sprintf("project-%05d", i),
			Description: descriptions[rng.IntN(len(descriptions))],
			Language:    languages[rng.IntN(len(languages))],
			Stars:       rng.IntN(500),
			Forks:       rng.IntN(100),
			Watchers:    rng.IntN(50),
			Featured:    rng.IntN(10) == 0,
		}
		for range rng.IntN(3) {
			p.Topics = append(p.Topics, topicPool[rng.IntN(len(topicPool))])
		}
		if rng.IntN(20) != 0 {
			p.UpdatedAt = base.AddDate(0, 0, -rng.IntN(1000)).Format(time.RFC3339)
		}
		projects[i] = p
	}

	data, err := yaml.Marshal(map[string][]seedProject{"projects": projects})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/folio_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"size", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{strconv.Itoa(result.Size), result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, command := range []string{"import", "rank", "featured"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %6d projects: Cold: %s, Warm: %s\n", result.Size, result.ColdTime, result.WarmTime)
			}
		}
	}
}
