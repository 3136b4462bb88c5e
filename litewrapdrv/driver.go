// Package litewrapdrv provides a database/sql/driver implementation on top
// of the SQLite C API wrapper of this project.
//
// It exists so that code written against database/sql, including the
// benchmark tool, can run on the same low-level layer the object wrapper
// uses. Statement lifetime here is managed by database/sql itself; the
// reference-counted sharing model lives in the litewrap package, not in this
// driver.
package litewrapdrv

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"time"

	"github.com/litewrap/litewrap/internal/sqlitec"
)

var (
	_ driver.Driver          = (*Driver)(nil)
	_ driver.Conn            = (*Conn)(nil)
	_ driver.Validator       = (*Conn)(nil)
	_ driver.SessionResetter = (*Conn)(nil)
	_ driver.Connector       = (*Connector)(nil)
	_ driver.Stmt            = (*Stmt)(nil)
	_ driver.Rows            = (*Rows)(nil)
	_ driver.Tx              = (*Tx)(nil)
	_ driver.Result          = (*Result)(nil)
)

func init() {
	sql.Register("litewrap", &Driver{})
}

// Driver implements the database/sql/driver interface
type Driver struct{}

// Open creates a new connection to the SQLite database
func (d *Driver) Open(dsn string) (driver.Conn, error) {
	connector := NewConnector(dsn)
	return connector.Connect(context.Background())
}

type connectorOption func(*Connector)

// WithPostConnectQueries sets a slice of queries to be executed after a
// connection is established
func WithPostConnectQueries(queries []string) connectorOption {
	return func(connector *Connector) {
		connector.postConnectQueries = queries
	}
}

// Connector implements the database/sql/driver.Connector interface
type Connector struct {
	dsn                string
	postConnectQueries []string
}

// NewConnector creates a new connector to the SQLite database
func NewConnector(dsn string, options ...connectorOption) driver.Connector {
	connector := &Connector{
		dsn: dsn,
	}

	for _, option := range options {
		option(connector)
	}

	return connector
}

// Connect creates a new connection to the SQLite database
func (connector *Connector) Connect(_ context.Context) (driver.Conn, error) {
	return newConn(connector.dsn, connector.postConnectQueries)
}

// Driver returns the driver
func (connector *Connector) Driver() driver.Driver {
	return &Driver{}
}

// Conn implements the database/sql/driver.Conn interface
type Conn struct {
	conn *sqlitec.Conn
}

// newConn creates a new connection to the SQLite database
func newConn(dsn string, postConnectQueries []string) (driver.Conn, error) {
	conn, err := sqlitec.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	for _, query := range postConnectQueries {
		if err := conn.Exec(query); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf(`failed to execute "%s" post-connect query: %w`, query, err)
		}
	}

	return &Conn{
		conn: conn,
	}, nil
}

// RawConn returns the underlying SQLite C API connection
func (conn *Conn) RawConn() *sqlitec.Conn {
	return conn.conn
}

// Close closes the connection to the SQLite database
func (conn *Conn) Close() error {
	if err := conn.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

// Prepare compiles the query into a driver statement
func (conn *Conn) Prepare(query string) (driver.Stmt, error) {
	raw, err := conn.conn.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	return &Stmt{conn: conn.conn, raw: raw}, nil
}

// Begin starts an explicit transaction
func (conn *Conn) Begin() (driver.Tx, error) {
	if err := conn.conn.Exec("BEGIN"); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{conn: conn.conn}, nil
}

// ResetSession is no-op
func (conn *Conn) ResetSession(_ context.Context) error {
	return nil
}

// IsValid reports whether the connection can be reused
func (conn *Conn) IsValid() bool {
	return true
}

// Tx implements the database/sql/driver.Tx interface
type Tx struct {
	conn *sqlitec.Conn
}

func (tx *Tx) Commit() error {
	if err := tx.conn.Exec("COMMIT"); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (tx *Tx) Rollback() error {
	if err := tx.conn.Exec("ROLLBACK"); err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// Stmt implements the database/sql/driver.Stmt interface
type Stmt struct {
	conn *sqlitec.Conn
	raw  *sqlitec.Stmt
}

// Close finalizes the prepared statement
func (s *Stmt) Close() error {
	return s.raw.Finalize()
}

// NumInput returns the number of placeholders in the statement
func (s *Stmt) NumInput() int {
	return s.raw.BindParameterCount()
}

// bindArgs resets the statement and binds the given driver values to its
// placeholders in order
func (s *Stmt) bindArgs(args []driver.Value) error {
	if err := s.raw.Reset(); err != nil {
		return err
	}
	if err := s.raw.ClearBindings(); err != nil {
		return err
	}

	for i, arg := range args {
		index := i + 1
		var err error

		switch v := arg.(type) {
		case nil:
			err = s.raw.BindNull(index)
		case bool:
			n := 0
			if v {
				n = 1
			}
			err = s.raw.BindInt(index, n)
		case int64:
			err = s.raw.BindInt64(index, v)
		case float64:
			err = s.raw.BindFloat64(index, v)
		case string:
			err = s.raw.BindText(index, v)
		case []byte:
			err = s.raw.BindBlob(index, v)
		case time.Time:
			err = s.raw.BindText(index, v.Format(time.RFC3339Nano))
		default:
			err = fmt.Errorf("unsupported bind type %T", arg)
		}
		if err != nil {
			return fmt.Errorf("failed to bind argument %d: %w", index, err)
		}
	}

	return nil
}

// Exec runs the statement to completion and reports the write counters
func (s *Stmt) Exec(args []driver.Value) (driver.Result, error) {
	if err := s.bindArgs(args); err != nil {
		return nil, err
	}

	hasNext := true
	var err error
	for hasNext {
		hasNext, err = s.raw.Step()
		if err != nil {
			return nil, fmt.Errorf("failed to step statement: %w", err)
		}
	}

	return &Result{
		lastInsertID: s.conn.LastInsertRowID(),
		rowsAffected: s.conn.RowsAffected(),
	}, nil
}

// Query runs the statement and returns its result rows
func (s *Stmt) Query(args []driver.Value) (driver.Rows, error) {
	if err := s.bindArgs(args); err != nil {
		return nil, err
	}
	return &Rows{raw: s.raw}, nil
}

// Result implements the database/sql/driver.Result interface
type Result struct {
	lastInsertID int64
	rowsAffected int64
}

func (r *Result) LastInsertId() (int64, error) {
	return r.lastInsertID, nil
}

func (r *Result) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

// Rows implements the database/sql/driver.Rows interface. It steps the
// shared prepared statement; Close resets the statement instead of
// finalizing it so database/sql can reuse it.
type Rows struct {
	raw *sqlitec.Stmt
}

// Columns returns the names of the result columns
func (r *Rows) Columns() []string {
	columns := make([]string, r.raw.ColumnCount())
	for i := range columns {
		columns[i] = r.raw.ColumnName(i)
	}
	return columns
}

// Close resets the underlying statement
func (r *Rows) Close() error {
	return r.raw.Reset()
}

// Next steps to the next row and decodes every cell by its runtime type
func (r *Rows) Next(dest []driver.Value) error {
	hasRow, err := r.raw.Step()
	if err != nil {
		return fmt.Errorf("failed to step statement: %w", err)
	}
	if !hasRow {
		return io.EOF
	}

	for i := range dest {
		switch r.raw.ColumnType(i) {
		case sqlitec.SQLITE_INTEGER:
			dest[i] = r.raw.ColumnInt64(i)
		case sqlitec.SQLITE_FLOAT:
			dest[i] = r.raw.ColumnFloat64(i)
		case sqlitec.SQLITE_TEXT:
			dest[i] = r.raw.ColumnText(i)
		case sqlitec.SQLITE_BLOB:
			dest[i] = r.raw.ColumnBlob(i)
		default:
			dest[i] = nil
		}
	}

	return nil
}
