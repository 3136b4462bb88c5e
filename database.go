package litewrap

import (
	"errors"
	"time"

	"github.com/litewrap/litewrap/internal/sqlitec"
)

// OpenFlag controls the access mode of a connection. Flags combine with
// bitwise or and map directly onto the sqlite3_open_v2 flags.
type OpenFlag int

const (
	OpenReadOnly     OpenFlag = sqlitec.OPEN_READONLY
	OpenReadWrite    OpenFlag = sqlitec.OPEN_READWRITE
	OpenCreate       OpenFlag = sqlitec.OPEN_CREATE
	OpenURI          OpenFlag = sqlitec.OPEN_URI
	OpenMemory       OpenFlag = sqlitec.OPEN_MEMORY
	OpenNoMutex      OpenFlag = sqlitec.OPEN_NOMUTEX
	OpenFullMutex    OpenFlag = sqlitec.OPEN_FULLMUTEX
	OpenSharedCache  OpenFlag = sqlitec.OPEN_SHAREDCACHE
	OpenPrivateCache OpenFlag = sqlitec.OPEN_PRIVATECACHE
)

// Database owns one connection to a SQLite database for its whole lifetime.
// It is the sole creator of Statements and Transactions for that connection.
//
// A Database must outlive every Statement prepared from it. The wrapper does
// not track live statements; closing the connection early is left to the
// engine to reject or defer.
type Database struct {
	conn  *sqlitec.Conn
	path  string
	flags OpenFlag
}

// Open opens the database file at path with the given access-mode flags. On
// failure no half-open resource is left behind.
func Open(path string, flags OpenFlag) (*Database, error) {
	conn, err := sqlitec.OpenV2(path, int(flags))
	if err != nil {
		var openErr *sqlitec.OpenError
		if errors.As(err, &openErr) {
			return nil, &Error{Kind: KindOpen, Code: openErr.Code, ExtendedCode: openErr.Code, Msg: openErr.Msg}
		}
		return nil, &Error{Kind: KindOpen, Code: sqlitec.SQLITE_CANTOPEN, Msg: err.Error()}
	}

	return &Database{conn: conn, path: path, flags: flags}, nil
}

// Close closes the connection. It is a no-op on an already-closed Database.
func (db *Database) Close() error {
	if err := db.conn.Close(); err != nil {
		return errFromConn(KindClose, db.conn)
	}
	return nil
}

// Prepare compiles the query into a Statement. Malformed SQL or engine-level
// rejection surfaces as an Error of kind prepare.
func (db *Database) Prepare(query string) (*Statement, error) {
	handle, err := acquireStmt(db.conn, query)
	if err != nil {
		return nil, err
	}

	return &Statement{
		handle:      handle,
		query:       query,
		columnCount: handle.raw.ColumnCount(),
	}, nil
}

// Exec runs one or more semicolon-separated statements, discarding any
// result rows.
func (db *Database) Exec(query string) error {
	if err := db.conn.Exec(query); err != nil {
		return errFromConn(KindExec, db.conn)
	}
	return nil
}

// ExecAndGetText runs the query and returns the text of the first column of
// the first result row. A query producing no rows fails with kind exec.
func (db *Database) ExecAndGetText(query string) (string, error) {
	stmt, err := db.Prepare(query)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	hasRow, err := stmt.Step()
	if err != nil {
		return "", err
	}
	if !hasRow {
		return "", logicErr(KindExec, sqlitec.SQLITE_MISUSE, "query returned no rows")
	}

	col, err := stmt.Column(0)
	if err != nil {
		return "", err
	}
	defer col.Close()

	return col.Text(), nil
}

// TableExists reports whether a table with the given name exists.
func (db *Database) TableExists(name string) (bool, error) {
	stmt, err := db.Prepare("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?")
	if err != nil {
		return false, err
	}
	defer stmt.Close()

	if err := stmt.BindText(1, name); err != nil {
		return false, err
	}
	if _, err := stmt.Step(); err != nil {
		return false, err
	}

	col, err := stmt.Column(0)
	if err != nil {
		return false, err
	}
	defer col.Close()

	return col.Int() == 1, nil
}

// Begin starts a Transaction. Beginning while another transaction is open on
// this connection fails with kind begin.
func (db *Database) Begin() (*Transaction, error) {
	if err := db.conn.Exec("BEGIN TRANSACTION"); err != nil {
		return nil, errFromConn(KindBegin, db.conn)
	}
	return &Transaction{db: db}, nil
}

// LastInsertRowID returns the rowid of the most recent successful INSERT on
// this connection.
func (db *Database) LastInsertRowID() int64 {
	return db.conn.LastInsertRowID()
}

// Changes returns the number of rows modified by the most recent INSERT,
// UPDATE or DELETE on this connection.
func (db *Database) Changes() int64 {
	return db.conn.RowsAffected()
}

// TotalChanges returns the number of rows modified since the connection was
// opened.
func (db *Database) TotalChanges() int64 {
	return db.conn.TotalRowsAffected()
}

// InTransaction reports whether an explicit transaction is open.
func (db *Database) InTransaction() bool {
	return !db.conn.Autocommit()
}

// SetBusyTimeout makes the engine retry for up to d when a table is locked
// by another connection.
func (db *Database) SetBusyTimeout(d time.Duration) error {
	if err := db.conn.BusyTimeout(int(d.Milliseconds())); err != nil {
		return errFromConn(KindConfig, db.conn)
	}
	return nil
}

// Filename returns the path the Database was opened with.
func (db *Database) Filename() string {
	return db.path
}
