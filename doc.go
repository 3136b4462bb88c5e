// Package litewrap is an object access layer over the SQLite C API.
//
// It exposes prepared statements, typed column accessors, transactions and
// database handles as small Go objects instead of raw pointers and manual
// cleanup. The central piece is a reference-counted statement handle shared
// between a Statement and every Column drawn from its current row: the
// underlying prepared statement is finalized exactly once, when the last
// holder releases it.
//
// The package adds no locking of its own. A Database and everything derived
// from it must be used from a single goroutine, or guarded externally. A
// Database must outlive every Statement prepared from it; the wrapper does
// not track live statements per connection.
package litewrap
