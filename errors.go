package litewrap

import (
	"fmt"

	"github.com/litewrap/litewrap/internal/sqlitec"
	"github.com/orsinium-labs/enum"
)

// Kind identifies the wrapper operation an Error originated from.
type Kind enum.Member[string]

var (
	KindOpen     = Kind{Value: "open"}
	KindClose    = Kind{Value: "close"}
	KindPrepare  = Kind{Value: "prepare"}
	KindBind     = Kind{Value: "bind"}
	KindStep     = Kind{Value: "step"}
	KindReset    = Kind{Value: "reset"}
	KindExec     = Kind{Value: "exec"}
	KindRange    = Kind{Value: "range"}
	KindBegin    = Kind{Value: "begin"}
	KindCommit   = Kind{Value: "commit"}
	KindRollback = Kind{Value: "rollback"}
	KindConfig   = Kind{Value: "config"}

	Kinds = enum.New(
		KindOpen, KindClose, KindPrepare, KindBind, KindStep, KindReset,
		KindExec, KindRange, KindBegin, KindCommit, KindRollback, KindConfig,
	)
)

// Error is the single error type surfaced by this package. It carries the
// engine's numeric result code and error message alongside the kind of
// operation that failed.
type Error struct {
	Kind         Kind
	Code         int
	ExtendedCode int
	Msg          string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%d): %s", e.Kind.Value, sqlitec.ResCodeStr(e.Code), e.Code, e.Msg)
}

// errFromConn builds an Error for the given kind from the connection's last
// error state. Every fallible operation funnels engine failures through here
// so error reporting stays uniform.
func errFromConn(kind Kind, conn *sqlitec.Conn) *Error {
	return &Error{
		Kind:         kind,
		Code:         conn.ErrCode(),
		ExtendedCode: conn.ExtendedErrCode(),
		Msg:          conn.ErrMsg(),
	}
}

// logicErr builds an Error for a misuse of the wrapper itself. No engine
// round-trip happens; the code is supplied by the caller.
func logicErr(kind Kind, code int, msg string) *Error {
	return &Error{Kind: kind, Code: code, ExtendedCode: code, Msg: msg}
}
