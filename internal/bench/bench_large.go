package bench

import (
	"bytes"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/litewrap/litewrap/internal/bench/benchbar"
)

type benchmarkLargeConfig struct {
	insertXBlobs     int
	insertYBytes     int
	insertGoroutines int
}

// runBenchmarkLarge inserts X rows of Y bytes of binary data each and then
// reads all of them back in a single query.
func runBenchmarkLarge(
	db *sql.DB, fullConfig benchmarksConfig,
) (benchmarkResult, error) {
	conf := fullConfig.benchmarkLargeConfig
	start := time.Now()
	var totalReads uint64 = 0
	var totalWrites uint64 = 0

	wg := sync.WaitGroup{}
	wgch := make(chan bool, conf.insertGoroutines)
	errChan := make(chan error, conf.insertXBlobs)
	bar := benchbar.NewBar(
		fmt.Sprintf("Inserting %d blobs of %d bytes", conf.insertXBlobs, conf.insertYBytes),
		conf.insertXBlobs,
	)

	data := bytes.Repeat([]byte{0x5a}, conf.insertYBytes)
	for i := 0; i < conf.insertXBlobs; i++ {
		wg.Add(1)
		wgch <- true

		go func() {
			defer func() {
				wg.Done()
				<-wgch
			}()

			res, err := db.Exec(
				"INSERT INTO blobs (created, data) VALUES (?, ?)",
				time.Now().Unix(), data,
			)
			if err != nil {
				errChan <- err
				return
			}

			rowsAffected, err := res.RowsAffected()
			if err != nil {
				errChan <- err
				return
			}

			bar.Inc()
			atomic.AddUint64(&totalWrites, uint64(rowsAffected))
		}()
	}

	wg.Wait()
	close(wgch)
	close(errChan)

	for e := range errChan {
		if e != nil {
			return benchmarkResult{}, fmt.Errorf("error when inserting: %w", e)
		}
	}

	bar.Finish()
	bar = benchbar.NewBar("Reading blobs", 1)

	rows, err := db.Query("SELECT id, created, data FROM blobs ORDER BY id")
	if err != nil {
		return benchmarkResult{}, fmt.Errorf("error when querying: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, created int
		var data []byte
		err = rows.Scan(&id, &created, &data)
		if err != nil {
			return benchmarkResult{}, fmt.Errorf("error when scanning: %w", err)
		}
		atomic.AddUint64(&totalReads, 1)
	}

	bar.Finish()
	return benchmarkResult{
		Name:        "Large",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}
