package bench

import (
	"database/sql"
	"fmt"
	"os"
	"path"

	_ "github.com/litewrap/litewrap/litewrapdrv"
	_ "github.com/mattn/go-sqlite3"
)

func createMattnDriver(dir string) (*sql.DB, error) {
	dbPath := path.Join(dir, "mattn", "bench.db")

	if err := os.MkdirAll(path.Dir(dbPath), 0755); err != nil {
		return nil, err
	}
	fmt.Println("mattn/go-sqlite3 db path:", dbPath)

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func createLitewrapDriver(dir string) (*sql.DB, error) {
	dbPath := path.Join(dir, "litewrap", "bench.db")

	if err := os.MkdirAll(path.Dir(dbPath), 0755); err != nil {
		return nil, err
	}
	fmt.Println("litewrap db path:", dbPath)

	db, err := sql.Open("litewrap", dbPath)
	if err != nil {
		return nil, err
	}

	// One connection keeps every statement on the same handle, matching the
	// single-goroutine contract of the underlying wrapper.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
