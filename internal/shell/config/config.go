package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/litewrap/litewrap/internal/version"
)

// Config represents the configuration for the litewrap shell.
type Config struct {
	Database    string        `arg:"positional" help:"Path of the SQLite database file to open, or :memory: for an in-memory database" default:":memory:"`
	ReadOnly    bool          `arg:"--read-only,env:LITEWRAP_READ_ONLY" help:"Open the database in read-only mode" default:"false"`
	BusyTimeout time.Duration `arg:"--busy-timeout,env:LITEWRAP_BUSY_TIMEOUT" help:"How long to wait for a locked database before giving up. Valid time units are ns, us (or µs), ms, s, m, h" default:"5s"`
	Debug       bool          `arg:"--debug,env:LITEWRAP_DEBUG" help:"Log statement timings and row counts to stderr" default:"false"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.ShellVersion())
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := validateDatabase(cfg.Database); err != nil {
		log.Fatal(err)
	}

	if err := validateBusyTimeout(cfg.BusyTimeout); err != nil {
		log.Fatal(err)
	}

	return cfg
}

// validateDatabase validates if database is a non-empty path.
func validateDatabase(database string) error {
	if database == "" {
		return errors.New("invalid database, must be a file path or :memory:")
	}
	return nil
}

// validateBusyTimeout validates if timeout is zero or greater.
func validateBusyTimeout(timeout time.Duration) error {
	if timeout < 0 {
		return errors.New("invalid busy timeout, must be zero or greater")
	}
	return nil
}
