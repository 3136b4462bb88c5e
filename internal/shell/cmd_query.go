package shell

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/litewrap/litewrap"
	"github.com/litewrap/litewrap/internal/log"
	"github.com/litewrap/litewrap/internal/shell/styled"
)

func cmdQuery(r *Repl, input string) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Color = table.ColorOptions{
		Header:       text.Colors{text.FgHiWhite, text.Bold},
		IndexColumn:  text.Colors{text.FgWhite},
		Row:          text.Colors{text.FgWhite},
		RowAlternate: text.Colors{text.FgWhite},
		Footer:       text.Colors{text.FgWhite},
	}

	start := time.Now()

	stmt, err := r.db.Prepare(input)
	if err != nil {
		tw.AppendHeader(table.Row{"Error"})
		tw.AppendRow(table.Row{err.Error()})
		fmt.Println(tw.Render())
		return
	}
	defer stmt.Close()

	rows := 0

	if stmt.ColumnCount() == 0 {
		affected, err := stmt.Exec()
		if err != nil {
			tw.AppendHeader(table.Row{"Error"})
			tw.AppendRow(table.Row{err.Error()})
		} else {
			tw.AppendHeader(table.Row{"-", "Rows Affected", "Last Insert ID"})
			tw.AppendRow(table.Row{"OK", affected, r.db.LastInsertRowID()})
		}
		fmt.Println(tw.Render())
		logQuery(r, input, rows, time.Since(start))
		return
	}

	header := table.Row{}
	for idx := 0; idx < stmt.ColumnCount(); idx++ {
		name, err := stmt.ColumnName(idx)
		if err != nil {
			name = fmt.Sprintf("col%d", idx)
		}
		header = append(header, name)
	}
	tw.AppendHeader(header)

	for {
		hasRow, err := stmt.Step()
		if err != nil {
			tw.AppendHeader(table.Row{"Error"})
			tw.AppendRow(table.Row{err.Error()})
			break
		}
		if !hasRow {
			break
		}

		row := table.Row{}
		for idx := 0; idx < stmt.ColumnCount(); idx++ {
			col, err := stmt.Column(idx)
			if err != nil {
				row = append(row, err.Error())
				continue
			}
			row = append(row, columnValue(col))
			col.Close()
		}
		tw.AppendRow(row)
		rows++
	}

	fmt.Println(tw.Render())

	elapsed := time.Since(start)
	_, _ = styled.DimmedColor().Printf("%d rows in %s\n", rows, elapsed.Round(time.Microsecond))
	logQuery(r, input, rows, elapsed)
}

// columnValue renders one result column for display.
func columnValue(col *litewrap.Column) any {
	switch col.Type() {
	case litewrap.TypeInteger:
		return col.Int64()
	case litewrap.TypeFloat:
		return col.Float64()
	case litewrap.TypeText:
		return col.Text()
	case litewrap.TypeBlob:
		return fmt.Sprintf("x'%x'", col.Blob())
	default:
		return "NULL"
	}
}

func logQuery(r *Repl, input string, rows int, elapsed time.Duration) {
	r.logger.DebugNs("shell", "statement finished", log.KV{
		"query":   input,
		"rows":    rows,
		"elapsed": elapsed.String(),
	})
}

func cmdBegin(r *Repl) {
	if r.tx != nil {
		fmt.Println("A transaction is already open, COMMIT or ROLLBACK it first")
		return
	}

	tx, err := r.db.Begin()
	if err != nil {
		fmt.Println(err)
		return
	}

	r.tx = tx
	fmt.Println("Transaction started")
}

func cmdCommit(r *Repl) {
	if r.tx == nil {
		fmt.Println("No transaction is open")
		return
	}

	if err := r.tx.Commit(); err != nil {
		fmt.Println(err)
		return
	}

	r.tx.Close()
	r.tx = nil
	fmt.Println("Transaction committed")
}

func cmdRollback(r *Repl) {
	if r.tx == nil {
		fmt.Println("No transaction is open")
		return
	}

	r.tx.Close()
	r.tx = nil
	fmt.Println("Transaction rolled back")
}
