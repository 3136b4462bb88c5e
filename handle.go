package litewrap

import "github.com/litewrap/litewrap/internal/sqlitec"

// stmtHandle is the shared ownership core for one prepared statement. The
// Statement counts as one holder and every Column drawn from it counts as
// another; the raw statement is finalized exactly once, when the last holder
// releases it, and is never touched afterwards.
//
// The count is a plain int. The wrapper follows the engine's
// single-threaded-per-connection model and adds no locking of its own, so
// sharing one handle across goroutines without external synchronization is
// undefined.
//
// The handle observes the connection only for error lookup; it never closes
// it.
type stmtHandle struct {
	raw  *sqlitec.Stmt
	conn *sqlitec.Conn
	refs int
}

// acquireStmt compiles the query and returns a handle holding one reference.
// A prepare rejection leaks nothing: no raw statement exists on failure.
func acquireStmt(conn *sqlitec.Conn, query string) (*stmtHandle, error) {
	raw, err := conn.Prepare(query)
	if err != nil {
		return nil, errFromConn(KindPrepare, conn)
	}
	return &stmtHandle{raw: raw, conn: conn, refs: 1}, nil
}

// retain registers one more holder of the raw statement.
func (h *stmtHandle) retain() *stmtHandle {
	h.refs++
	return h
}

// release drops one holder. The finalize result is discarded: sqlite3_finalize
// only reports the error of the most recent step, which the stepping caller
// already saw.
func (h *stmtHandle) release() {
	if h.refs == 0 {
		return
	}
	h.refs--
	if h.refs == 0 {
		_ = h.raw.Finalize()
		h.raw = nil
	}
}

// finalized reports whether the raw statement has been released.
func (h *stmtHandle) finalized() bool {
	return h.raw == nil
}
