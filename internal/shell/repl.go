package shell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/litewrap/litewrap"
	"github.com/litewrap/litewrap/internal/log"
	"github.com/litewrap/litewrap/internal/shell/config"
	"github.com/litewrap/litewrap/internal/util/sysutil"
	"github.com/peterh/liner"
)

type Repl struct {
	conf        config.Config
	db          *litewrap.Database
	logger      log.Logger
	ctx         context.Context
	stop        context.CancelFunc
	tx          *litewrap.Transaction
	historyPath string
}

func NewRepl(
	ctx context.Context,
	stop context.CancelFunc,
	conf config.Config,
	db *litewrap.Database,
	logger log.Logger,
) Repl {
	return Repl{
		conf:        conf,
		db:          db,
		logger:      logger,
		ctx:         ctx,
		stop:        stop,
		historyPath: filepath.Join(os.TempDir(), ".litewrap_history"),
	}
}

func (r *Repl) Start() error {
	mode := "read-write"
	if r.conf.ReadOnly {
		mode = "read-only"
	}

	fmt.Println()
	fmt.Printf("Connected to %s (%s)\n", r.db.Filename(), mode)
	fmt.Println(`Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Println()

	for {
		select {
		case <-r.ctx.Done():
			return nil
		default:
			input := r.prompt()

			if input == "" {
				continue
			}

			if input == "exit" || input == ".exit" || input == ".quit" {
				r.Shutdown()
				return nil
			}

			if input == "clear" || input == ".clear" {
				sysutil.ClearTerminal()
				continue
			}

			if input == "help" || input == ".help" {
				cmdHelp()
				continue
			}

			if input == ".tables" {
				cmdQuery(r, `SELECT name FROM sqlite_master WHERE type = "table"`)
				continue
			}

			if input == ".indexes" {
				cmdQuery(r, `SELECT name FROM sqlite_master WHERE type = "index"`)
				continue
			}

			if input == ".schema" {
				cmdQuery(r, `SELECT sql FROM sqlite_master WHERE sql IS NOT NULL`)
				continue
			}

			if name, ok := strings.CutPrefix(input, ".count "); ok {
				cmdQuery(r, fmt.Sprintf(`SELECT COUNT(*) AS count FROM "%s"`, strings.TrimSpace(name)))
				continue
			}

			if name, ok := strings.CutPrefix(input, ".columns "); ok {
				cmdQuery(r, fmt.Sprintf(`PRAGMA table_info("%s")`, strings.TrimSpace(name)))
				continue
			}

			if strings.HasPrefix(input, ".") {
				fmt.Println("Unknown command, type .help for usage hints")
				continue
			}

			lower := strings.ToLower(input)
			if lower == "begin" || lower == "begin transaction" {
				cmdBegin(r)
				continue
			}
			if lower == "commit" {
				cmdCommit(r)
				continue
			}
			if lower == "rollback" {
				cmdRollback(r)
				continue
			}

			cmdQuery(r, input)
		}
	}
}

// Shutdown stops the REPL. Any transaction left open is rolled back.
func (r *Repl) Shutdown() {
	if r.tx != nil {
		r.tx.Close()
		r.tx = nil
	}
	r.stop()
}

// prompt shows the prompt and reads the input from the user.
func (r *Repl) prompt() string {
	label := "litewrap> "
	if r.tx != nil {
		label = "litewrap(tx)> "
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(cmdHelpCompleter)

	if file, err := os.Open(r.historyPath); err == nil {
		_, _ = line.ReadHistory(file)
		file.Close()
	}

	prompt, err := line.Prompt(label)
	if err != nil {
		if err == liner.ErrPromptAborted {
			fmt.Println("CTRL+C pressed, exiting...")
			return ".quit"
		}
		return ""
	}

	line.AppendHistory(prompt)
	if file, err := os.Create(r.historyPath); err == nil {
		_, _ = line.WriteHistory(file)
		file.Close()
	}

	return strings.TrimSpace(prompt)
}
