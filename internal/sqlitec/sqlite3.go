package sqlitec

/*
#cgo LDFLAGS: -lsqlite3
#cgo CFLAGS: -DSQLITE_ENABLE_COLUMN_METADATA=1
#include <sqlite3.h>
#include <stdlib.h>

// cgo doesn't handle the SQLITE_TRANSIENT pointer constant.
static int lw_bind_text(sqlite3_stmt *s, int i, const char *p, int n) {
	return sqlite3_bind_text(s, i, p, n, SQLITE_TRANSIENT);
}
static int lw_bind_blob(sqlite3_stmt *s, int i, const void *p, int n) {
	return sqlite3_bind_blob(s, i, p, n, SQLITE_TRANSIENT);
}
*/
import "C"
import (
	"errors"
	"fmt"
	"unsafe"
)

// Conn represents a high-level connection to a SQLite database.
//
// https://www.sqlite.org/c3ref/sqlite3.html
type Conn struct {
	cDB *C.sqlite3
}

// Stmt represents a prepared statement in SQLite.
//
// https://www.sqlite.org/c3ref/stmt.html
type Stmt struct {
	conn  *Conn
	cStmt *C.sqlite3_stmt
}

// getLastError returns the last error message from the SQLite database.
func (conn *Conn) getLastError() error {
	if conn.cDB == nil {
		return errors.New("failed to get last error: database connection is nil")
	}
	return errors.New(C.GoString(C.sqlite3_errmsg(conn.cDB)))
}

// Open opens a new SQLite database connection using the given path and the
// default read-write-create mode.
//
// https://www.sqlite.org/c3ref/open.html
func Open(filePath string) (*Conn, error) {
	return OpenV2(filePath, OPEN_READWRITE|OPEN_CREATE)
}

// OpenError reports a failed sqlite3_open_v2 call with its result code.
type OpenError struct {
	Code int
	Msg  string
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open database: %s: %s", ResCodeStr(e.Code), e.Msg)
}

// OpenV2 opens a new SQLite database connection using the given path and
// OPEN_* flags. On failure the returned error is an *OpenError and no
// half-open handle is left behind.
//
// https://www.sqlite.org/c3ref/open.html
func OpenV2(filePath string, flags int) (*Conn, error) {
	cFilePath := C.CString(filePath)
	defer C.free(unsafe.Pointer(cFilePath))

	var db *C.sqlite3
	resCode := C.sqlite3_open_v2(cFilePath, &db, C.int(flags), nil)
	if resCode != SQLITE_OK {
		errMsg := (&Conn{cDB: db}).ErrMsg()
		_ = C.sqlite3_close(db)
		return nil, &OpenError{Code: int(resCode), Msg: errMsg}
	}

	return &Conn{cDB: db}, nil
}

// Close finalizes the connection to the SQLite database.
//
// https://www.sqlite.org/c3ref/close.html
func (conn *Conn) Close() error {
	if conn.cDB == nil {
		return nil
	}

	// The sqlite3_close_v2() interface is intended for use with host
	// languages that are garbage collected, and where the order in which
	// destructors are called is arbitrary.
	resCode := C.sqlite3_close_v2(conn.cDB)
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to close database: %s: %s", ResCodeStr(int(resCode)), conn.getLastError())
	}
	conn.cDB = nil

	return nil
}

// ErrCode returns the numeric result code of the most recent failed call on
// this connection.
//
// https://www.sqlite.org/c3ref/errcode.html
func (conn *Conn) ErrCode() int {
	if conn.cDB == nil {
		return SQLITE_MISUSE
	}
	return int(C.sqlite3_errcode(conn.cDB))
}

// ExtendedErrCode returns the extended result code of the most recent failed
// call on this connection.
//
// https://www.sqlite.org/c3ref/errcode.html
func (conn *Conn) ExtendedErrCode() int {
	if conn.cDB == nil {
		return SQLITE_MISUSE
	}
	return int(C.sqlite3_extended_errcode(conn.cDB))
}

// ErrMsg returns the English-language text of the most recent error on this
// connection.
//
// https://www.sqlite.org/c3ref/errcode.html
func (conn *Conn) ErrMsg() string {
	if conn.cDB == nil {
		return "database connection is nil"
	}
	return C.GoString(C.sqlite3_errmsg(conn.cDB))
}

// LastInsertRowID returns the row ID of the most recent successful INSERT
// into the database from the current connection.
//
// https://www.sqlite.org/c3ref/last_insert_rowid.html
func (conn *Conn) LastInsertRowID() int64 {
	return int64(C.sqlite3_last_insert_rowid(conn.cDB))
}

// RowsAffected returns the number of rows modified, inserted, or deleted by
// the most recent successful INSERT, UPDATE, or DELETE statement from the
// current connection.
//
// https://www.sqlite.org/c3ref/changes.html
func (conn *Conn) RowsAffected() int64 {
	return int64(C.sqlite3_changes(conn.cDB))
}

// TotalRowsAffected returns the number of rows modified, inserted, or deleted
// by all statements completed since the connection was opened.
//
// https://www.sqlite.org/c3ref/total_changes.html
func (conn *Conn) TotalRowsAffected() int64 {
	return int64(C.sqlite3_total_changes(conn.cDB))
}

// Autocommit returns true if the connection is in autocommit mode, that is,
// outside of an explicit transaction.
//
// https://www.sqlite.org/c3ref/get_autocommit.html
func (conn *Conn) Autocommit() bool {
	return C.sqlite3_get_autocommit(conn.cDB) != 0
}

// Filename returns the path of the main database file, or an empty string
// for an in-memory or temporary database.
//
// https://www.sqlite.org/c3ref/db_filename.html
func (conn *Conn) Filename() string {
	cMain := C.CString("main")
	defer C.free(unsafe.Pointer(cMain))
	return C.GoString(C.sqlite3_db_filename(conn.cDB, cMain))
}

// BusyTimeout sets the busy handler to sleep up to the given number of
// milliseconds when a table is locked.
//
// https://www.sqlite.org/c3ref/busy_timeout.html
func (conn *Conn) BusyTimeout(ms int) error {
	resCode := C.sqlite3_busy_timeout(conn.cDB, C.int(ms))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to set busy timeout: %s", ResCodeStr(int(resCode)))
	}
	return nil
}

// Exec executes the given SQL query on the SQLite database connection
// from start to finish, without returning any data.
//
// https://www.sqlite.org/c3ref/exec.html
func (conn *Conn) Exec(query string) error {
	cQuery := C.CString(query)
	defer C.free(unsafe.Pointer(cQuery))

	var errMsg *C.char
	resCode := C.sqlite3_exec(conn.cDB, cQuery, nil, nil, &errMsg)
	if resCode != SQLITE_OK {
		defer C.sqlite3_free(unsafe.Pointer(errMsg))
		return fmt.Errorf("failed to execute query: %s: %s", ResCodeStr(int(resCode)), C.GoString(errMsg))
	}

	return nil
}

// Prepare compiles the given SQL query into a prepared statement.
//
// https://www.sqlite.org/c3ref/prepare.html
func (conn *Conn) Prepare(query string) (*Stmt, error) {
	cQuery := C.CString(query)
	defer C.free(unsafe.Pointer(cQuery))

	var cStmt *C.sqlite3_stmt
	resCode := C.sqlite3_prepare_v2(conn.cDB, cQuery, C.int(-1), &cStmt, nil)
	if resCode != SQLITE_OK {
		return nil, fmt.Errorf("failed to prepare statement: %s: %s", ResCodeStr(int(resCode)), conn.getLastError())
	}
	return &Stmt{conn: conn, cStmt: cStmt}, nil
}

// Conn returns the connection this statement was prepared against.
func (stmt *Stmt) Conn() *Conn {
	return stmt.conn
}

// ReadOnly returns true if the given SQL query is read-only.
//
// https://www.sqlite.org/c3ref/stmt_readonly.html
func (stmt *Stmt) ReadOnly() bool {
	return C.sqlite3_stmt_readonly(stmt.cStmt) != 0
}

// BindParameterCount returns the number of SQL parameters in the statement.
//
// https://www.sqlite.org/c3ref/bind_parameter_count.html
func (stmt *Stmt) BindParameterCount() int {
	return int(C.sqlite3_bind_parameter_count(stmt.cStmt))
}

// BindParameterIndex returns the index of the SQL parameter with the given
// name, or 0 if no parameter matches.
//
// https://www.sqlite.org/c3ref/bind_parameter_index.html
func (stmt *Stmt) BindParameterIndex(name string) int {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return int(C.sqlite3_bind_parameter_index(stmt.cStmt, cName))
}

// BindInt binds an int parameter at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindInt(index int, value int) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_int(stmt.cStmt, C.int(index), C.int(value))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind int: %s", ResCodeStr(int(resCode)))
	}
	return nil
}

// BindInt64 binds an int64 parameter at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindInt64(index int, value int64) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_int64(stmt.cStmt, C.int(index), C.sqlite3_int64(value))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind int64: %s", ResCodeStr(int(resCode)))
	}
	return nil
}

// BindFloat64 binds a float64 parameter at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindFloat64(index int, value float64) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_double(stmt.cStmt, C.int(index), C.double(value))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind float64: %s", ResCodeStr(int(resCode)))
	}
	return nil
}

// BindText binds a string parameter at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindText(index int, value string) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}
	cStr := C.CString(value)
	defer C.free(unsafe.Pointer(cStr))

	resCode := C.lw_bind_text(stmt.cStmt, C.int(index), cStr, C.int(len(value)))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind text: %s", ResCodeStr(int(resCode)))
	}
	return nil
}

// BindBlob binds a byte slice parameter at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindBlob(index int, data []byte) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}
	if len(data) == 0 {
		return stmt.BindNull(index)
	}

	resCode := C.lw_bind_blob(stmt.cStmt, C.int(index), unsafe.Pointer(&data[0]), C.int(len(data)))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind blob: %s", ResCodeStr(int(resCode)))
	}
	return nil
}

// BindNull binds a NULL value at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindNull(index int) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_null(stmt.cStmt, C.int(index))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind null: %s", ResCodeStr(int(resCode)))
	}
	return nil
}

// Step advances the statement to the next row of data, returning true if a new row
// is available, or false if there are no more rows. If an error occurs, it is returned.
//
// https://www.sqlite.org/c3ref/step.html
func (stmt *Stmt) Step() (bool, error) {
	resCode := C.sqlite3_step(stmt.cStmt)

	if resCode == SQLITE_DONE {
		return false, nil
	}

	if resCode == SQLITE_ROW {
		return true, nil
	}

	return false, fmt.Errorf("failed to step statement: %s", ResCodeStr(int(resCode)))
}

// Reset returns the statement to its initial state, ready to be re-executed.
// Bound parameter values are retained.
//
// https://www.sqlite.org/c3ref/reset.html
func (stmt *Stmt) Reset() error {
	resCode := C.sqlite3_reset(stmt.cStmt)
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to reset statement: %s", ResCodeStr(int(resCode)))
	}
	return nil
}

// ClearBindings sets all bound parameters back to NULL.
//
// https://www.sqlite.org/c3ref/clear_bindings.html
func (stmt *Stmt) ClearBindings() error {
	resCode := C.sqlite3_clear_bindings(stmt.cStmt)
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to clear bindings: %s", ResCodeStr(int(resCode)))
	}
	return nil
}

// ColumnCount returns the number of columns in the result set of the
// statement.
//
// https://www.sqlite.org/c3ref/column_count.html
func (stmt *Stmt) ColumnCount() int {
	return int(C.sqlite3_column_count(stmt.cStmt))
}

// ColumnName returns the name of the column at the given index.
//
// https://www.sqlite.org/c3ref/column_name.html
func (stmt *Stmt) ColumnName(colIndex int) string {
	return C.GoString(C.sqlite3_column_name(stmt.cStmt, C.int(colIndex)))
}

// ColumnDeclType returns the declared type of the column at the given index.
//
// https://www.sqlite.org/c3ref/column_decltype.html
func (stmt *Stmt) ColumnDeclType(colIndex int) string {
	return C.GoString(C.sqlite3_column_decltype(stmt.cStmt, C.int(colIndex)))
}

// ColumnType returns the runtime datatype code of the cell at the given index
// in the current row. One of SQLITE_INTEGER, SQLITE_FLOAT, SQLITE_TEXT,
// SQLITE_BLOB or SQLITE_NULL. The result is undefined after a type conversion
// has been triggered by a mismatched column accessor.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnType(colIndex int) int {
	return int(C.sqlite3_column_type(stmt.cStmt, C.int(colIndex)))
}

// ColumnInt returns the column value at the given index as int.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnInt(colIndex int) int {
	return int(C.sqlite3_column_int(stmt.cStmt, C.int(colIndex)))
}

// ColumnInt64 returns the column value at the given index as int64.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnInt64(colIndex int) int64 {
	return int64(C.sqlite3_column_int64(stmt.cStmt, C.int(colIndex)))
}

// ColumnFloat64 returns the column value at the given index as float64.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnFloat64(colIndex int) float64 {
	return float64(C.sqlite3_column_double(stmt.cStmt, C.int(colIndex)))
}

// ColumnText returns the column value at the given index as a string.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnText(colIndex int) string {
	text := (*C.char)(unsafe.Pointer(C.sqlite3_column_text(stmt.cStmt, C.int(colIndex))))
	if text == nil {
		return ""
	}
	length := C.sqlite3_column_bytes(stmt.cStmt, C.int(colIndex))
	return C.GoStringN(text, length)
}

// ColumnBlob returns the column value at the given index as a byte slice.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnBlob(colIndex int) []byte {
	size := C.sqlite3_column_bytes(stmt.cStmt, C.int(colIndex))
	if size <= 0 {
		return nil
	}
	dataPtr := C.sqlite3_column_blob(stmt.cStmt, C.int(colIndex))
	if dataPtr == nil {
		return nil
	}
	return C.GoBytes(dataPtr, size)
}

// ColumnBytes returns the size in bytes of the text or blob representation of
// the cell at the given index in the current row, or 0 for NULL.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnBytes(colIndex int) int {
	return int(C.sqlite3_column_bytes(stmt.cStmt, C.int(colIndex)))
}

// Finalize frees the resources associated with this statement.
//
// https://www.sqlite.org/c3ref/finalize.html
func (stmt *Stmt) Finalize() error {
	if stmt.cStmt == nil {
		return nil
	}

	resCode := C.sqlite3_finalize(stmt.cStmt)
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to finalize statement: %s: %s", ResCodeStr(int(resCode)), C.GoString(C.sqlite3_errmsg(stmt.conn.cDB)))
	}
	stmt.cStmt = nil

	return nil
}
