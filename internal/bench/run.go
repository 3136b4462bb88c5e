// Package bench benchmarks the litewrap database/sql driver against
// mattn/go-sqlite3 on the same workloads.
package bench

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/litewrap/litewrap/internal/util/numutil"
	"github.com/litewrap/litewrap/internal/version"
)

// benchmarkResult stores the outcome of a benchmark.
type benchmarkResult struct {
	Name        string
	Duration    time.Duration
	TotalReads  uint64
	TotalWrites uint64
}

// Run executes benchmarks for two SQLite drivers and prints the results.
func Run(ctx context.Context) error {
	fmt.Println(version.BenchVersion())

	tmpDir, err := os.MkdirTemp("", "litewrapbench_*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	mattnDb, err := createMattnDriver(tmpDir)
	if err != nil {
		return fmt.Errorf("error opening mattn/go-sqlite3 db: %w", err)
	}
	defer mattnDb.Close()

	litewrapDb, err := createLitewrapDriver(tmpDir)
	if err != nil {
		return fmt.Errorf("error opening litewrap db: %w", err)
	}
	defer litewrapDb.Close()

	fmt.Println("\n--- Benchmarks for mattn/go-sqlite3 ---")
	mattnResults, err := runBenchmark(mattnDb, getMattnConfig())
	if err != nil {
		return fmt.Errorf("error benchmarking mattn/go-sqlite3: %w", err)
	}
	printResults(mattnResults)

	fmt.Println("\n--- Benchmarks for litewrap ---")
	litewrapResults, err := runBenchmark(litewrapDb, getLitewrapConfig())
	if err != nil {
		return fmt.Errorf("error benchmarking litewrap: %w", err)
	}
	printResults(litewrapResults)

	return nil
}

func printResults(results []benchmarkResult) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
	tw.AppendHeader(table.Row{"Name", "Reads", "Writes", "Duration"})

	for _, r := range results {
		tw.AppendRow(table.Row{
			r.Name,
			numutil.IntWithCommas(int(r.TotalReads)),
			numutil.IntWithCommas(int(r.TotalWrites)),
			r.Duration,
		})
	}

	fmt.Println(tw.Render())
}

// runBenchmark executes all benchmarks, and returns results.
//
// It recreates the schema before each benchmark.
func runBenchmark(db *sql.DB, cfg benchmarksConfig) ([]benchmarkResult, error) {
	benchs := []func(*sql.DB, benchmarksConfig) (benchmarkResult, error){
		runBenchmarkSimple,
		runBenchmarkMany,
		runBenchmarkLarge,
	}

	var results []benchmarkResult

	for _, bench := range benchs {
		if err := recreateSchema(db); err != nil {
			return nil, err
		}

		res, err := bench(db, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}
