package main

import (
	"fmt"
	"os"

	"github.com/xolan/ptt/cmd"
	"github.com/xolan/ptt/internal/config"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is replaced in tests
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run resolves the configuration, executes the command tree and returns
// the process exit code.
func run() int {
	cfg, err := config.Resolve()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: Invalid configuration\nDetails: %v\n", err)
		_, _ = fmt.Fprintln(os.Stderr, "Hint: Run 'ptt config' after fixing the file or the PTT_* environment variables")
		return 1
	}

	cmd.SetConfig(cfg)
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
