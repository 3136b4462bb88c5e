package litewrap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumn(t *testing.T) {
	newFixture := func(t *testing.T) (*Database, *Statement) {
		db, err := Open(":memory:", OpenReadWrite|OpenCreate)
		assert.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		assert.NoError(t, db.Exec("CREATE TABLE t (i INTEGER, f REAL, s TEXT, b BLOB, n TEXT)"))
		assert.NoError(t, db.Exec("INSERT INTO t VALUES (42, 1.5, 'hello', x'dead', NULL)"))

		sel, err := db.Prepare("SELECT i, f, s, b, n FROM t")
		assert.NoError(t, err)
		t.Cleanup(sel.Close)

		hasRow, err := sel.Step()
		assert.NoError(t, err)
		assert.True(t, hasRow)
		return db, sel
	}

	t.Run("TypedGetters", func(t *testing.T) {
		_, sel := newFixture(t)

		i, err := sel.Column(0)
		assert.NoError(t, err)
		defer i.Close()
		assert.Equal(t, 42, i.Int())
		assert.Equal(t, int64(42), i.Int64())
		assert.Equal(t, float64(42), i.Float64())

		f, err := sel.Column(1)
		assert.NoError(t, err)
		defer f.Close()
		assert.Equal(t, 1.5, f.Float64())

		s, err := sel.Column(2)
		assert.NoError(t, err)
		defer s.Close()
		assert.Equal(t, "hello", s.Text())
		assert.Equal(t, 5, s.Bytes())

		b, err := sel.Column(3)
		assert.NoError(t, err)
		defer b.Close()
		assert.Equal(t, []byte{0xde, 0xad}, b.Blob())
		assert.Equal(t, 2, b.Bytes())

		n, err := sel.Column(4)
		assert.NoError(t, err)
		defer n.Close()
		assert.Equal(t, 0, n.Bytes())
		assert.Equal(t, "", n.Text())
	})

	t.Run("TypePredicates", func(t *testing.T) {
		_, sel := newFixture(t)

		wantTypes := []ColumnType{TypeInteger, TypeFloat, TypeText, TypeBlob, TypeNull}
		wantNames := []string{"i", "f", "s", "b", "n"}
		for idx, want := range wantTypes {
			col, err := sel.Column(idx)
			assert.NoError(t, err)
			assert.Equal(t, want, col.Type())
			assert.Equal(t, wantNames[idx], col.Name())
			assert.Equal(t, idx, col.Index())
			col.Close()
		}

		i, err := sel.Column(0)
		assert.NoError(t, err)
		defer i.Close()
		assert.True(t, i.IsInteger())
		assert.False(t, i.IsFloat())
		assert.False(t, i.IsText())
		assert.False(t, i.IsBlob())
		assert.False(t, i.IsNull())
	})

	t.Run("Coercion", func(t *testing.T) {
		_, sel := newFixture(t)

		// Integer read as text stringifies, text read as integer parses to 0.
		i, err := sel.Column(0)
		assert.NoError(t, err)
		defer i.Close()
		assert.Equal(t, "42", i.Text())

		s, err := sel.Column(2)
		assert.NoError(t, err)
		defer s.Close()
		assert.Equal(t, 0, s.Int())
	})

	t.Run("Stringer", func(t *testing.T) {
		_, sel := newFixture(t)

		s, err := sel.Column(2)
		assert.NoError(t, err)
		defer s.Close()
		assert.Equal(t, "hello", fmt.Sprint(s))

		assert.Equal(t, "integer", TypeInteger.String())
		assert.Equal(t, "null", TypeNull.String())
		assert.Equal(t, "unknown", ColumnType(0).String())
	})

	t.Run("LazyReadObservesCursor", func(t *testing.T) {
		db, err := Open(":memory:", OpenReadWrite|OpenCreate)
		assert.NoError(t, err)
		defer db.Close()

		assert.NoError(t, db.Exec("CREATE TABLE t (v TEXT)"))
		assert.NoError(t, db.Exec("INSERT INTO t VALUES ('first'), ('second')"))

		sel, err := db.Prepare("SELECT v FROM t ORDER BY v")
		assert.NoError(t, err)
		defer sel.Close()

		_, err = sel.Step()
		assert.NoError(t, err)

		col, err := sel.Column(0)
		assert.NoError(t, err)
		defer col.Close()
		assert.Equal(t, "first", col.Text())

		// The accessor holds no snapshot: after the statement steps on, the
		// same Column observes the new row.
		_, err = sel.Step()
		assert.NoError(t, err)
		assert.Equal(t, "second", col.Text())

		// And after a reset it observes whatever the engine exposes for the
		// pre-execution state, without crashing.
		assert.NoError(t, sel.Reset())
		assert.Equal(t, "", col.Text())
	})

	t.Run("ReadAfterFinalize", func(t *testing.T) {
		db, err := Open(":memory:", OpenReadWrite|OpenCreate)
		assert.NoError(t, err)
		defer db.Close()

		assert.NoError(t, db.Exec("CREATE TABLE t (v INTEGER)"))
		assert.NoError(t, db.Exec("INSERT INTO t VALUES (7)"))

		sel, err := db.Prepare("SELECT v FROM t")
		assert.NoError(t, err)
		_, err = sel.Step()
		assert.NoError(t, err)

		col, err := sel.Column(0)
		assert.NoError(t, err)
		assert.Equal(t, 7, col.Int())

		// Closing the statement keeps the raw handle alive through the
		// Column's reference.
		sel.Close()
		assert.Equal(t, 7, col.Int())

		// Once the last reference drops the handle is finalized and reads
		// degrade to zero values instead of touching freed memory.
		col.Close()
		assert.Equal(t, 0, col.Int())
		assert.Equal(t, int64(0), col.Int64())
		assert.Equal(t, float64(0), col.Float64())
		assert.Equal(t, "", col.Text())
		assert.Nil(t, col.Blob())
		assert.Equal(t, 0, col.Bytes())
		assert.Equal(t, "", col.Name())
		assert.True(t, col.IsNull())
	})
}
