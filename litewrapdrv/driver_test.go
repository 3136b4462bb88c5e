package litewrapdrv

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDriver(t *testing.T) {
	t.Run("OpenPingClose", func(t *testing.T) {
		db, err := sql.Open("litewrap", ":memory:")
		assert.NoError(t, err)
		assert.NoError(t, db.Ping())
		assert.NoError(t, db.Close())
	})

	t.Run("ExecAndQuery", func(t *testing.T) {
		db, err := sql.Open("litewrap", ":memory:")
		assert.NoError(t, err)
		defer db.Close()
		db.SetMaxOpenConns(1)

		_, err = db.Exec("CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT, score REAL, data BLOB)")
		assert.NoError(t, err)

		email := uuid.NewString()
		res, err := db.Exec(
			"INSERT INTO users (email, score, data) VALUES (?, ?, ?)",
			email, 1.5, []byte("payload"),
		)
		assert.NoError(t, err)

		lastID, err := res.LastInsertId()
		assert.NoError(t, err)
		assert.Equal(t, int64(1), lastID)

		affected, err := res.RowsAffected()
		assert.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		rows, err := db.Query("SELECT id, email, score, data FROM users")
		assert.NoError(t, err)
		defer rows.Close()

		columns, err := rows.Columns()
		assert.NoError(t, err)
		assert.Equal(t, []string{"id", "email", "score", "data"}, columns)

		assert.True(t, rows.Next())
		var id int64
		var gotEmail string
		var score float64
		var data []byte
		assert.NoError(t, rows.Scan(&id, &gotEmail, &score, &data))
		assert.Equal(t, int64(1), id)
		assert.Equal(t, email, gotEmail)
		assert.Equal(t, 1.5, score)
		assert.Equal(t, []byte("payload"), data)
		assert.False(t, rows.Next())
	})

	t.Run("NullDecoding", func(t *testing.T) {
		db, err := sql.Open("litewrap", ":memory:")
		assert.NoError(t, err)
		defer db.Close()
		db.SetMaxOpenConns(1)

		_, err = db.Exec("CREATE TABLE t (v TEXT)")
		assert.NoError(t, err)
		_, err = db.Exec("INSERT INTO t VALUES (NULL)")
		assert.NoError(t, err)

		var v sql.NullString
		assert.NoError(t, db.QueryRow("SELECT v FROM t").Scan(&v))
		assert.False(t, v.Valid)
	})

	t.Run("Transactions", func(t *testing.T) {
		db, err := sql.Open("litewrap", ":memory:")
		assert.NoError(t, err)
		defer db.Close()
		db.SetMaxOpenConns(1)

		_, err = db.Exec("CREATE TABLE t (v TEXT)")
		assert.NoError(t, err)

		tx, err := db.Begin()
		assert.NoError(t, err)
		_, err = tx.Exec("INSERT INTO t VALUES ('rolled back')")
		assert.NoError(t, err)
		assert.NoError(t, tx.Rollback())

		tx, err = db.Begin()
		assert.NoError(t, err)
		_, err = tx.Exec("INSERT INTO t VALUES ('committed')")
		assert.NoError(t, err)
		assert.NoError(t, tx.Commit())

		var count int
		assert.NoError(t, db.QueryRow("SELECT COUNT(*) FROM t").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("PostConnectQueries", func(t *testing.T) {
		connector := NewConnector(":memory:", WithPostConnectQueries([]string{
			"PRAGMA foreign_keys = ON",
		}))
		db := sql.OpenDB(connector)
		defer db.Close()
		db.SetMaxOpenConns(1)

		var enabled int
		assert.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&enabled))
		assert.Equal(t, 1, enabled)
	})

	t.Run("PreparedReuse", func(t *testing.T) {
		db, err := sql.Open("litewrap", ":memory:")
		assert.NoError(t, err)
		defer db.Close()
		db.SetMaxOpenConns(1)

		_, err = db.Exec("CREATE TABLE t (v INTEGER)")
		assert.NoError(t, err)

		stmt, err := db.Prepare("INSERT INTO t VALUES (?)")
		assert.NoError(t, err)
		defer stmt.Close()

		for i := 0; i < 5; i++ {
			_, err = stmt.Exec(i)
			assert.NoError(t, err)
		}

		var count int
		assert.NoError(t, db.QueryRow("SELECT COUNT(*) FROM t").Scan(&count))
		assert.Equal(t, 5, count)
	})
}
