package litewrap

import "github.com/litewrap/litewrap/internal/sqlitec"

// Transaction brackets a sequence of statements on one Database connection.
// Database.Begin issues BEGIN immediately; the caller either Commits or lets
// a deferred Close roll the work back.
//
//	tx, err := db.Begin()
//	if err != nil {
//		return err
//	}
//	defer tx.Close()
//	// ... statements ...
//	return tx.Commit()
//
// Any early return or panic between Begin and Commit leaves the deferred
// Close to issue the ROLLBACK.
type Transaction struct {
	db        *Database
	committed bool
	closed    bool
}

// Commit makes the transaction's changes permanent. Committing twice, or
// after the transaction has been rolled back, fails with kind commit.
func (tx *Transaction) Commit() error {
	if tx.committed {
		return logicErr(KindCommit, sqlitec.SQLITE_MISUSE, "transaction already committed")
	}
	if tx.closed {
		return logicErr(KindCommit, sqlitec.SQLITE_MISUSE, "transaction already rolled back")
	}

	if err := tx.db.conn.Exec("COMMIT"); err != nil {
		return errFromConn(KindCommit, tx.db.conn)
	}
	tx.committed = true
	return nil
}

// Close rolls the transaction back if Commit was never called. A failure of
// the rollback itself is discarded so that deferred cleanup never masks the
// error that caused the early exit. Close after a successful Commit, or a
// second Close, is a no-op.
func (tx *Transaction) Close() {
	if tx.closed || tx.committed {
		tx.closed = true
		return
	}
	tx.closed = true
	_ = tx.db.conn.Exec("ROLLBACK")
}
