// Package shell implements the interactive litewrap shell. It drives a
// single litewrap.Database from a read-eval-print loop.
package shell

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/litewrap/litewrap"
	"github.com/litewrap/litewrap/internal/log"
	"github.com/litewrap/litewrap/internal/shell/config"
	"github.com/litewrap/litewrap/internal/version"
)

// Run runs the litewrap shell.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(version.ShellVersion())

	flags := litewrap.OpenReadWrite | litewrap.OpenCreate
	if conf.ReadOnly {
		flags = litewrap.OpenReadOnly
	}

	db, err := litewrap.Open(conf.Database, flags)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", conf.Database, err)
	}
	defer db.Close()

	if conf.BusyTimeout > 0 {
		if err := db.SetBusyTimeout(conf.BusyTimeout); err != nil {
			return fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	level := slog.LevelInfo
	if conf.Debug {
		level = slog.LevelDebug
	}
	logger := log.NewLogger(os.Stderr, level)

	rp := NewRepl(ctx, stop, conf, db, logger)
	defer rp.Shutdown()
	go func() {
		if err := rp.Start(); err != nil {
			fmt.Println(err)
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Printf("\nGoodbye!\n\n")
	return nil
}
