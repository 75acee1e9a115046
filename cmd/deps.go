package cmd

import (
	"io"
	"os"

	"github.com/xolan/ptt/internal/config"
	"github.com/xolan/ptt/internal/record"
	"github.com/xolan/ptt/internal/timeutil"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)
	// Config is the effective configuration; main resolves it before Execute
	Config config.Config
	// Today returns the date "today" and relative dates resolve against
	Today func() record.Date
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		Exit:   os.Exit,
		Config: config.DefaultConfig(),
		Today:  timeutil.Today,
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

// SetConfig installs the effective configuration.
func SetConfig(cfg config.Config) {
	deps.Config = cfg
}
