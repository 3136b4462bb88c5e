package sqlitec

import "fmt"

// Primary result codes of the SQLite C API.
//
// https://www.sqlite.org/rescode.html
const (
	SQLITE_OK         = 0
	SQLITE_ERROR      = 1
	SQLITE_INTERNAL   = 2
	SQLITE_PERM       = 3
	SQLITE_ABORT      = 4
	SQLITE_BUSY       = 5
	SQLITE_LOCKED     = 6
	SQLITE_NOMEM      = 7
	SQLITE_READONLY   = 8
	SQLITE_INTERRUPT  = 9
	SQLITE_IOERR      = 10
	SQLITE_CORRUPT    = 11
	SQLITE_NOTFOUND   = 12
	SQLITE_FULL       = 13
	SQLITE_CANTOPEN   = 14
	SQLITE_PROTOCOL   = 15
	SQLITE_EMPTY      = 16
	SQLITE_SCHEMA     = 17
	SQLITE_TOOBIG     = 18
	SQLITE_CONSTRAINT = 19
	SQLITE_MISMATCH   = 20
	SQLITE_MISUSE     = 21
	SQLITE_NOLFS      = 22
	SQLITE_AUTH       = 23
	SQLITE_FORMAT     = 24
	SQLITE_RANGE      = 25
	SQLITE_NOTADB     = 26
	SQLITE_NOTICE     = 27
	SQLITE_WARNING    = 28
	SQLITE_ROW        = 100
	SQLITE_DONE       = 101
)

// Fundamental datatype codes returned by sqlite3_column_type.
//
// https://www.sqlite.org/c3ref/c_blob.html
const (
	SQLITE_INTEGER = 1
	SQLITE_FLOAT   = 2
	SQLITE_TEXT    = 3
	SQLITE_BLOB    = 4
	SQLITE_NULL    = 5
)

// Flags accepted by sqlite3_open_v2.
//
// https://www.sqlite.org/c3ref/c_open_autoproxy.html
const (
	OPEN_READONLY     = 0x00000001
	OPEN_READWRITE    = 0x00000002
	OPEN_CREATE       = 0x00000004
	OPEN_URI          = 0x00000040
	OPEN_MEMORY       = 0x00000080
	OPEN_NOMUTEX      = 0x00008000
	OPEN_FULLMUTEX    = 0x00010000
	OPEN_SHAREDCACHE  = 0x00020000
	OPEN_PRIVATECACHE = 0x00040000
	OPEN_NOFOLLOW     = 0x01000000
)

var resCodeNames = map[int]string{
	SQLITE_OK:         "SQLITE_OK",
	SQLITE_ERROR:      "SQLITE_ERROR",
	SQLITE_INTERNAL:   "SQLITE_INTERNAL",
	SQLITE_PERM:       "SQLITE_PERM",
	SQLITE_ABORT:      "SQLITE_ABORT",
	SQLITE_BUSY:       "SQLITE_BUSY",
	SQLITE_LOCKED:     "SQLITE_LOCKED",
	SQLITE_NOMEM:      "SQLITE_NOMEM",
	SQLITE_READONLY:   "SQLITE_READONLY",
	SQLITE_INTERRUPT:  "SQLITE_INTERRUPT",
	SQLITE_IOERR:      "SQLITE_IOERR",
	SQLITE_CORRUPT:    "SQLITE_CORRUPT",
	SQLITE_NOTFOUND:   "SQLITE_NOTFOUND",
	SQLITE_FULL:       "SQLITE_FULL",
	SQLITE_CANTOPEN:   "SQLITE_CANTOPEN",
	SQLITE_PROTOCOL:   "SQLITE_PROTOCOL",
	SQLITE_EMPTY:      "SQLITE_EMPTY",
	SQLITE_SCHEMA:     "SQLITE_SCHEMA",
	SQLITE_TOOBIG:     "SQLITE_TOOBIG",
	SQLITE_CONSTRAINT: "SQLITE_CONSTRAINT",
	SQLITE_MISMATCH:   "SQLITE_MISMATCH",
	SQLITE_MISUSE:     "SQLITE_MISUSE",
	SQLITE_NOLFS:      "SQLITE_NOLFS",
	SQLITE_AUTH:       "SQLITE_AUTH",
	SQLITE_FORMAT:     "SQLITE_FORMAT",
	SQLITE_RANGE:      "SQLITE_RANGE",
	SQLITE_NOTADB:     "SQLITE_NOTADB",
	SQLITE_NOTICE:     "SQLITE_NOTICE",
	SQLITE_WARNING:    "SQLITE_WARNING",
	SQLITE_ROW:        "SQLITE_ROW",
	SQLITE_DONE:       "SQLITE_DONE",
}

// ResCodeStr returns the symbolic name of a primary result code. Extended
// result codes are reduced to their primary code before lookup.
//
// https://www.sqlite.org/rescode.html
func ResCodeStr(resCode int) string {
	if name, ok := resCodeNames[resCode]; ok {
		return name
	}
	if name, ok := resCodeNames[resCode&0xff]; ok {
		return name
	}
	return fmt.Sprintf("SQLITE_UNKNOWN(%d)", resCode)
}
