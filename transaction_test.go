package litewrap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransaction(t *testing.T) {
	openDB := func(t *testing.T) *Database {
		db, err := Open(":memory:", OpenReadWrite|OpenCreate)
		assert.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		assert.NoError(t, db.Exec("CREATE TABLE t (v TEXT)"))
		return db
	}

	countRows := func(t *testing.T, db *Database) string {
		count, err := db.ExecAndGetText("SELECT COUNT(*) FROM t")
		assert.NoError(t, err)
		return count
	}

	t.Run("CommitPersists", func(t *testing.T) {
		db := openDB(t)

		tx, err := db.Begin()
		assert.NoError(t, err)
		defer tx.Close()

		assert.NoError(t, db.Exec("INSERT INTO t VALUES ('kept')"))
		assert.NoError(t, tx.Commit())
		assert.Equal(t, "1", countRows(t, db))
	})

	t.Run("CloseWithoutCommitRollsBack", func(t *testing.T) {
		db := openDB(t)

		tx, err := db.Begin()
		assert.NoError(t, err)
		assert.NoError(t, db.Exec("INSERT INTO t VALUES ('discarded')"))
		tx.Close()

		assert.Equal(t, "0", countRows(t, db))
		assert.False(t, db.InTransaction())
	})

	t.Run("CloseAfterCommitIsNoOp", func(t *testing.T) {
		db := openDB(t)

		tx, err := db.Begin()
		assert.NoError(t, err)
		assert.NoError(t, db.Exec("INSERT INTO t VALUES ('kept')"))
		assert.NoError(t, tx.Commit())

		tx.Close()
		tx.Close()
		assert.Equal(t, "1", countRows(t, db))
	})

	t.Run("DoubleCommitFails", func(t *testing.T) {
		db := openDB(t)

		tx, err := db.Begin()
		assert.NoError(t, err)
		assert.NoError(t, tx.Commit())

		err = tx.Commit()
		assert.Error(t, err)

		var werr *Error
		assert.True(t, errors.As(err, &werr))
		assert.Equal(t, KindCommit, werr.Kind)
	})

	t.Run("CommitAfterCloseFails", func(t *testing.T) {
		db := openDB(t)

		tx, err := db.Begin()
		assert.NoError(t, err)
		tx.Close()

		err = tx.Commit()
		assert.Error(t, err)

		var werr *Error
		assert.True(t, errors.As(err, &werr))
		assert.Equal(t, KindCommit, werr.Kind)
	})

	t.Run("NestedBeginFails", func(t *testing.T) {
		db := openDB(t)

		tx, err := db.Begin()
		assert.NoError(t, err)
		defer tx.Close()

		_, err = db.Begin()
		assert.Error(t, err)

		var werr *Error
		assert.True(t, errors.As(err, &werr))
		assert.Equal(t, KindBegin, werr.Kind)
		assert.NotEmpty(t, werr.Msg)
	})

	t.Run("PanicUnwindingRollsBack", func(t *testing.T) {
		db := openDB(t)

		insertAndPanic := func() {
			tx, err := db.Begin()
			assert.NoError(t, err)
			defer tx.Close()

			assert.NoError(t, db.Exec("INSERT INTO t VALUES ('doomed')"))
			panic("boom")
		}

		assert.PanicsWithValue(t, "boom", insertAndPanic)
		assert.Equal(t, "0", countRows(t, db))
		assert.False(t, db.InTransaction())
	})

	t.Run("EarlyReturnRollsBack", func(t *testing.T) {
		db := openDB(t)

		insertAndFail := func() error {
			tx, err := db.Begin()
			if err != nil {
				return err
			}
			defer tx.Close()

			if err := db.Exec("INSERT INTO t VALUES ('doomed')"); err != nil {
				return err
			}
			return db.Exec("INSERT INTO nonexistent VALUES (1)")
		}

		assert.Error(t, insertAndFail())
		assert.Equal(t, "0", countRows(t, db))
	})
}
