package litewrap

import (
	"fmt"

	"github.com/litewrap/litewrap/internal/sqlitec"
)

// Statement is a prepared SQL statement bound to a Database connection. It
// holds one reference on the shared statement handle; Close releases it.
//
// A Statement starts unexecuted. Step advances the cursor one row at a time
// until the statement is done; Reset returns it to the unexecuted state with
// bindings retained. Binding is legal before the first Step and after a
// Reset, per the engine's rules.
type Statement struct {
	handle      *stmtHandle
	query       string
	columnCount int
	hasRow      bool
	done        bool
	closed      bool
}

// Query returns the SQL text the statement was prepared from.
func (s *Statement) Query() string {
	return s.query
}

// ColumnCount returns the number of columns the statement declares. It is
// fixed at prepare time and valid whether or not a row is available.
func (s *Statement) ColumnCount() int {
	return s.columnCount
}

// HasRow reports whether the last Step produced a row. No engine round-trip.
func (s *Statement) HasRow() bool {
	return s.hasRow
}

// IsDone reports whether the statement has run past its last row. No engine
// round-trip.
func (s *Statement) IsDone() bool {
	return s.done
}

func (s *Statement) usable(kind Kind) error {
	if s.closed {
		return logicErr(kind, sqlitec.SQLITE_MISUSE, "statement is closed")
	}
	return nil
}

// BindInt binds an int value to the 1-based placeholder index.
func (s *Statement) BindInt(index int, value int) error {
	if err := s.usable(KindBind); err != nil {
		return err
	}
	if err := s.handle.raw.BindInt(index, value); err != nil {
		return errFromConn(KindBind, s.handle.conn)
	}
	return nil
}

// BindInt64 binds an int64 value to the 1-based placeholder index.
func (s *Statement) BindInt64(index int, value int64) error {
	if err := s.usable(KindBind); err != nil {
		return err
	}
	if err := s.handle.raw.BindInt64(index, value); err != nil {
		return errFromConn(KindBind, s.handle.conn)
	}
	return nil
}

// BindFloat64 binds a float64 value to the 1-based placeholder index.
func (s *Statement) BindFloat64(index int, value float64) error {
	if err := s.usable(KindBind); err != nil {
		return err
	}
	if err := s.handle.raw.BindFloat64(index, value); err != nil {
		return errFromConn(KindBind, s.handle.conn)
	}
	return nil
}

// BindText binds a string value to the 1-based placeholder index.
func (s *Statement) BindText(index int, value string) error {
	if err := s.usable(KindBind); err != nil {
		return err
	}
	if err := s.handle.raw.BindText(index, value); err != nil {
		return errFromConn(KindBind, s.handle.conn)
	}
	return nil
}

// BindBlob binds a byte slice to the 1-based placeholder index.
func (s *Statement) BindBlob(index int, value []byte) error {
	if err := s.usable(KindBind); err != nil {
		return err
	}
	if err := s.handle.raw.BindBlob(index, value); err != nil {
		return errFromConn(KindBind, s.handle.conn)
	}
	return nil
}

// BindNull binds NULL to the 1-based placeholder index.
func (s *Statement) BindNull(index int) error {
	if err := s.usable(KindBind); err != nil {
		return err
	}
	if err := s.handle.raw.BindNull(index); err != nil {
		return errFromConn(KindBind, s.handle.conn)
	}
	return nil
}

// Bind binds a value of any supported Go type to the 1-based placeholder
// index. nil binds NULL; bool binds 0 or 1.
func (s *Statement) Bind(index int, value any) error {
	switch v := value.(type) {
	case nil:
		return s.BindNull(index)
	case bool:
		n := 0
		if v {
			n = 1
		}
		return s.BindInt(index, n)
	case int:
		return s.BindInt(index, v)
	case int32:
		return s.BindInt(index, int(v))
	case int64:
		return s.BindInt64(index, v)
	case uint32:
		return s.BindInt64(index, int64(v))
	case float32:
		return s.BindFloat64(index, float64(v))
	case float64:
		return s.BindFloat64(index, v)
	case string:
		return s.BindText(index, v)
	case []byte:
		return s.BindBlob(index, v)
	default:
		return logicErr(KindBind, sqlitec.SQLITE_MISMATCH, fmt.Sprintf("unsupported bind type %T", value))
	}
}

// BindNamed binds a value to a named placeholder such as ":name", "@name" or
// "$name". Unknown names fail with kind bind.
func (s *Statement) BindNamed(name string, value any) error {
	if err := s.usable(KindBind); err != nil {
		return err
	}
	index := s.handle.raw.BindParameterIndex(name)
	if index == 0 {
		return logicErr(KindBind, sqlitec.SQLITE_RANGE, fmt.Sprintf("unknown parameter name %q", name))
	}
	return s.Bind(index, value)
}

// Step advances the cursor. It returns true while a result row is available
// and false once the statement is done. Stepping a done statement without a
// Reset fails with kind step.
func (s *Statement) Step() (bool, error) {
	if err := s.usable(KindStep); err != nil {
		return false, err
	}
	if s.done {
		return false, logicErr(KindStep, sqlitec.SQLITE_MISUSE, "statement needs to be reset before stepping again")
	}

	hasRow, err := s.handle.raw.Step()
	if err != nil {
		s.hasRow = false
		return false, errFromConn(KindStep, s.handle.conn)
	}

	s.hasRow = hasRow
	if !hasRow {
		s.done = true
	}
	return hasRow, nil
}

// Exec runs a statement that produces no result rows (DDL or DML) and
// returns the number of rows it changed. A statement yielding a row fails
// with kind exec.
func (s *Statement) Exec() (int64, error) {
	if err := s.usable(KindExec); err != nil {
		return 0, err
	}
	if s.done {
		return 0, logicErr(KindExec, sqlitec.SQLITE_MISUSE, "statement needs to be reset before executing again")
	}

	hasRow, err := s.handle.raw.Step()
	if err != nil {
		return 0, errFromConn(KindExec, s.handle.conn)
	}
	if hasRow {
		s.hasRow = true
		return 0, logicErr(KindExec, sqlitec.SQLITE_MISUSE, "exec does not expect a result row")
	}

	s.done = true
	return s.handle.conn.RowsAffected(), nil
}

// Reset returns the statement to its unexecuted state. Bound parameter
// values are retained; use ClearBindings to drop them.
func (s *Statement) Reset() error {
	if err := s.usable(KindReset); err != nil {
		return err
	}
	if err := s.handle.raw.Reset(); err != nil {
		return errFromConn(KindReset, s.handle.conn)
	}
	s.hasRow = false
	s.done = false
	return nil
}

// ClearBindings sets every bound parameter back to NULL.
func (s *Statement) ClearBindings() error {
	if err := s.usable(KindBind); err != nil {
		return err
	}
	if err := s.handle.raw.ClearBindings(); err != nil {
		return errFromConn(KindBind, s.handle.conn)
	}
	return nil
}

// Column returns an accessor for the cell at the given 0-based index of the
// current row. The index is checked against the declared column count;
// out-of-range indexes fail with kind range. The Column shares this
// Statement's handle and must be Closed to release its reference.
func (s *Statement) Column(index int) (*Column, error) {
	if err := s.usable(KindRange); err != nil {
		return nil, err
	}
	if index < 0 || index >= s.columnCount {
		return nil, logicErr(KindRange, sqlitec.SQLITE_RANGE,
			fmt.Sprintf("column index %d out of range [0, %d)", index, s.columnCount))
	}

	return &Column{handle: s.handle.retain(), index: index}, nil
}

// ColumnName returns the name of the column at the given 0-based index.
func (s *Statement) ColumnName(index int) (string, error) {
	if err := s.usable(KindRange); err != nil {
		return "", err
	}
	if index < 0 || index >= s.columnCount {
		return "", logicErr(KindRange, sqlitec.SQLITE_RANGE,
			fmt.Sprintf("column index %d out of range [0, %d)", index, s.columnCount))
	}
	return s.handle.raw.ColumnName(index), nil
}

// Close releases the Statement's reference on the shared handle. The raw
// statement is finalized once every Column drawn from it has been closed
// too. Close is idempotent and never fails.
func (s *Statement) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.hasRow = false
	s.handle.release()
}
