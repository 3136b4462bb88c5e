package litewrap

import "github.com/litewrap/litewrap/internal/sqlitec"

// ColumnType is the engine's runtime tag for a cell.
type ColumnType int

const (
	TypeInteger ColumnType = sqlitec.SQLITE_INTEGER
	TypeFloat   ColumnType = sqlitec.SQLITE_FLOAT
	TypeText    ColumnType = sqlitec.SQLITE_TEXT
	TypeBlob    ColumnType = sqlitec.SQLITE_BLOB
	TypeNull    ColumnType = sqlitec.SQLITE_NULL
)

func (t ColumnType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeText:
		return "text"
	case TypeBlob:
		return "blob"
	case TypeNull:
		return "null"
	}
	return "unknown"
}

// Column is a lightweight accessor for one cell of the current result row of
// a Statement. It shares the Statement's handle plus an index; nothing is
// cached at construction. Every getter re-reads the engine's current-row
// state at call time, so a Column read after its Statement has been stepped
// or reset observes the new cursor position, not the row it was drawn from.
//
// Getters never fail: mismatched-type reads follow the engine's coercion
// table, and reads after the statement has been finalized return zero
// values.
//
// Each Column obtained from Statement.Column holds one counted reference on
// the shared handle and must be Closed to release it.
type Column struct {
	handle *stmtHandle
	index  int
	closed bool
}

// Index returns the 0-based column index this accessor reads.
func (c *Column) Index() int {
	return c.index
}

func (c *Column) raw() *sqlitec.Stmt {
	if c.closed {
		return nil
	}
	return c.handle.raw
}

// Name returns the column name declared by the statement.
func (c *Column) Name() string {
	if raw := c.raw(); raw != nil {
		return raw.ColumnName(c.index)
	}
	return ""
}

// Int returns the cell coerced to int.
func (c *Column) Int() int {
	if raw := c.raw(); raw != nil {
		return raw.ColumnInt(c.index)
	}
	return 0
}

// Int64 returns the cell coerced to int64.
func (c *Column) Int64() int64 {
	if raw := c.raw(); raw != nil {
		return raw.ColumnInt64(c.index)
	}
	return 0
}

// Float64 returns the cell coerced to float64.
func (c *Column) Float64() float64 {
	if raw := c.raw(); raw != nil {
		return raw.ColumnFloat64(c.index)
	}
	return 0
}

// Text returns the cell coerced to its text representation.
func (c *Column) Text() string {
	if raw := c.raw(); raw != nil {
		return raw.ColumnText(c.index)
	}
	return ""
}

// Blob returns the cell as a byte slice, or nil for NULL.
func (c *Column) Blob() []byte {
	if raw := c.raw(); raw != nil {
		return raw.ColumnBlob(c.index)
	}
	return nil
}

// Type returns the engine's runtime tag for the cell. The result is
// undefined after a coercing getter has been called for this cell, exactly
// as in the underlying engine, so test Is* predicates before reading, not
// after.
func (c *Column) Type() ColumnType {
	if raw := c.raw(); raw != nil {
		return ColumnType(raw.ColumnType(c.index))
	}
	return TypeNull
}

// IsInteger reports whether the cell holds an integer. Meaningful only
// before any coercing getter.
func (c *Column) IsInteger() bool {
	return c.Type() == TypeInteger
}

// IsFloat reports whether the cell holds a floating point value. Meaningful
// only before any coercing getter.
func (c *Column) IsFloat() bool {
	return c.Type() == TypeFloat
}

// IsText reports whether the cell holds text. Meaningful only before any
// coercing getter.
func (c *Column) IsText() bool {
	return c.Type() == TypeText
}

// IsBlob reports whether the cell holds a blob. Meaningful only before any
// coercing getter.
func (c *Column) IsBlob() bool {
	return c.Type() == TypeBlob
}

// IsNull reports whether the cell is NULL. Meaningful only before any
// coercing getter.
func (c *Column) IsNull() bool {
	return c.Type() == TypeNull
}

// Bytes returns the byte length of the text or blob representation of the
// cell, the length of the stringified numeric value, or 0 for NULL.
func (c *Column) Bytes() int {
	if raw := c.raw(); raw != nil {
		return raw.ColumnBytes(c.index)
	}
	return 0
}

// String renders the cell as text, implementing fmt.Stringer.
func (c *Column) String() string {
	return c.Text()
}

// Close releases this Column's reference on the shared handle. Close is
// idempotent and never fails.
func (c *Column) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.handle.release()
}
