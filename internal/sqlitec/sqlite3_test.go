package sqlitec

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSQLiteC(t *testing.T) {
	t.Run("OpenClose", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		assert.NotNil(t, conn)
		assert.NoError(t, conn.Close())
	})

	t.Run("OpenV2ReadOnlyMissingFile", func(t *testing.T) {
		_, err := OpenV2("/nonexistent/dir/missing.sqlite", OPEN_READONLY)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "SQLITE_CANTOPEN")
	})

	t.Run("CreateTable", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE test (id INTEGER PRIMARY KEY, val TEXT)"))
	})

	t.Run("PrepareError", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		_, err = conn.Prepare("SELEC * FROM missing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "SQLITE_ERROR")
		assert.Equal(t, SQLITE_ERROR, conn.ErrCode())
		assert.NotEmpty(t, conn.ErrMsg())
	})

	t.Run("BindStepColumns", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec(`
			CREATE TABLE test_types (
				id INTEGER PRIMARY KEY,
				num_int INTEGER,
				num_big INTEGER,
				num_float REAL,
				txt TEXT,
				bytes BLOB,
				nullable TEXT
			)
		`))

		stmt, err := conn.Prepare(`
			INSERT INTO test_types (num_int, num_big, num_float, txt, bytes, nullable)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		assert.NoError(t, err)
		assert.Equal(t, 6, stmt.BindParameterCount())

		assert.NoError(t, stmt.BindInt(1, 123))
		assert.NoError(t, stmt.BindInt64(2, 1<<40))
		assert.NoError(t, stmt.BindFloat64(3, 3.14))
		assert.NoError(t, stmt.BindText(4, "hola"))
		assert.NoError(t, stmt.BindBlob(5, []byte("raw")))
		assert.NoError(t, stmt.BindNull(6))

		hasRow, err := stmt.Step()
		assert.NoError(t, err)
		assert.False(t, hasRow)
		assert.NoError(t, stmt.Finalize())
		assert.Equal(t, int64(1), conn.RowsAffected())
		assert.Equal(t, int64(1), conn.LastInsertRowID())

		sel, err := conn.Prepare("SELECT num_int, num_big, num_float, txt, bytes, nullable FROM test_types")
		assert.NoError(t, err)
		defer sel.Finalize()

		assert.Equal(t, 6, sel.ColumnCount())
		assert.Equal(t, "num_int", sel.ColumnName(0))

		hasRow, err = sel.Step()
		assert.NoError(t, err)
		assert.True(t, hasRow)

		assert.Equal(t, SQLITE_INTEGER, sel.ColumnType(0))
		assert.Equal(t, 123, sel.ColumnInt(0))
		assert.Equal(t, int64(1<<40), sel.ColumnInt64(1))
		assert.Equal(t, SQLITE_FLOAT, sel.ColumnType(2))
		assert.Equal(t, 3.14, sel.ColumnFloat64(2))
		assert.Equal(t, SQLITE_TEXT, sel.ColumnType(3))
		assert.Equal(t, "hola", sel.ColumnText(3))
		assert.Equal(t, 4, sel.ColumnBytes(3))
		assert.Equal(t, SQLITE_BLOB, sel.ColumnType(4))
		assert.Equal(t, []byte("raw"), sel.ColumnBlob(4))
		assert.Equal(t, SQLITE_NULL, sel.ColumnType(5))

		hasRow, err = sel.Step()
		assert.NoError(t, err)
		assert.False(t, hasRow)
	})

	t.Run("NamedParameters", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE named_test (id INTEGER PRIMARY KEY, value TEXT)"))

		stmt, err := conn.Prepare("INSERT INTO named_test (value) VALUES (:val)")
		assert.NoError(t, err)
		defer stmt.Finalize()

		// Support for the variants: https://www.sqlite.org/lang_expr.html#varparam
		assert.Equal(t, 1, stmt.BindParameterIndex(":val"))
		assert.Equal(t, 0, stmt.BindParameterIndex(":missing"))

		value := uuid.NewString()
		assert.NoError(t, stmt.BindText(1, value))

		hasRow, err := stmt.Step()
		assert.NoError(t, err)
		assert.False(t, hasRow)

		sel, err := conn.Prepare("SELECT value FROM named_test")
		assert.NoError(t, err)
		defer sel.Finalize()

		hasRow, err = sel.Step()
		assert.NoError(t, err)
		assert.True(t, hasRow)
		assert.Equal(t, value, sel.ColumnText(0))
	})

	t.Run("ResetKeepsBindings", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE multi (id INTEGER PRIMARY KEY, val TEXT)"))

		stmt, err := conn.Prepare("INSERT INTO multi (val) VALUES (?)")
		assert.NoError(t, err)
		defer stmt.Finalize()

		assert.NoError(t, stmt.BindText(1, "same"))
		for n := 0; n < 3; n++ {
			_, err := stmt.Step()
			assert.NoError(t, err)
			assert.NoError(t, stmt.Reset())
		}

		sel, err := conn.Prepare("SELECT COUNT(*), MAX(val) FROM multi")
		assert.NoError(t, err)
		defer sel.Finalize()

		hasRow, err := sel.Step()
		assert.NoError(t, err)
		assert.True(t, hasRow)
		assert.Equal(t, 3, sel.ColumnInt(0))
		assert.Equal(t, "same", sel.ColumnText(1))
	})

	t.Run("ClearBindings", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE cb (val TEXT)"))

		stmt, err := conn.Prepare("INSERT INTO cb (val) VALUES (?)")
		assert.NoError(t, err)
		defer stmt.Finalize()

		assert.NoError(t, stmt.BindText(1, "bound"))
		assert.NoError(t, stmt.ClearBindings())
		_, err = stmt.Step()
		assert.NoError(t, err)

		sel, err := conn.Prepare("SELECT val FROM cb")
		assert.NoError(t, err)
		defer sel.Finalize()

		hasRow, err := sel.Step()
		assert.NoError(t, err)
		assert.True(t, hasRow)
		assert.Equal(t, SQLITE_NULL, sel.ColumnType(0))
	})

	t.Run("StepError", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE uniq (id INTEGER PRIMARY KEY, val TEXT UNIQUE)"))
		assert.NoError(t, conn.Exec("INSERT INTO uniq (val) VALUES ('dup')"))

		stmt, err := conn.Prepare("INSERT INTO uniq (val) VALUES ('dup')")
		assert.NoError(t, err)
		defer stmt.Finalize()

		_, err = stmt.Step()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "SQLITE_CONSTRAINT")
	})

	t.Run("ReadOnlyCheck", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE test (id INTEGER PRIMARY KEY, val TEXT)"))

		stmt, err := conn.Prepare("INSERT INTO test (val) VALUES (?)")
		assert.NoError(t, err)
		assert.False(t, stmt.ReadOnly())
		assert.NoError(t, stmt.Finalize())

		stmt, err = conn.Prepare("SELECT * FROM test")
		assert.NoError(t, err)
		assert.True(t, stmt.ReadOnly())
		assert.NoError(t, stmt.Finalize())
	})

	t.Run("FinalizeNilStmt", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		// Simulate a nil stmt to check that it doesn't crash
		stmt := &Stmt{}
		assert.NoError(t, stmt.Finalize())
	})

	t.Run("LargeBlob", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE blobtest (id INTEGER PRIMARY KEY, data BLOB)"))

		largeData := make([]byte, 1024*1024) // 1MB
		for i := range largeData {
			largeData[i] = byte(i % 256)
		}

		stmt, err := conn.Prepare("INSERT INTO blobtest (data) VALUES (?)")
		assert.NoError(t, err)
		assert.NoError(t, stmt.BindBlob(1, largeData))
		_, err = stmt.Step()
		assert.NoError(t, err)
		assert.NoError(t, stmt.Finalize())

		sel, err := conn.Prepare("SELECT data FROM blobtest")
		assert.NoError(t, err)
		defer sel.Finalize()

		hasRow, err := sel.Step()
		assert.NoError(t, err)
		assert.True(t, hasRow)
		assert.Equal(t, len(largeData), sel.ColumnBytes(0))
		assert.Equal(t, largeData, sel.ColumnBlob(0))
	})

	t.Run("AutocommitTracking", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.True(t, conn.Autocommit())
		assert.NoError(t, conn.Exec("BEGIN"))
		assert.False(t, conn.Autocommit())
		assert.NoError(t, conn.Exec("ROLLBACK"))
		assert.True(t, conn.Autocommit())
	})

	t.Run("TotalRowsAffected", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE tot (val TEXT)"))
		for n := 0; n < 3; n++ {
			assert.NoError(t, conn.Exec("INSERT INTO tot (val) VALUES ('x')"))
		}
		assert.Equal(t, int64(3), conn.TotalRowsAffected())
	})

	t.Run("FilenameInMemory", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		defer conn.Close()

		assert.Empty(t, conn.Filename())
	})
}
