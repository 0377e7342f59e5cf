// Package main provides the entry point for the assetrack CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/assetrack/internal/cli"
	"github.com/mrz1836/assetrack/internal/signal"
)

// Set via ldflags at build time.
var (
	version = "dev"     //nolint:gochecknoglobals // Set by ldflags
	commit  = "none"    //nolint:gochecknoglobals // Set by ldflags
	date    = "unknown" //nolint:gochecknoglobals // Set by ldflags
)

func main() {
	h := signal.NewHandler(context.Background())

	err := cli.Execute(h.Context(), cli.BuildInfo{Version: version, Commit: commit, Date: date})
	interrupted := h.WasInterrupted()
	h.Stop()

	if interrupted {
		os.Exit(cli.ExitInterrupted)
	}
	if err != nil {
		cli.ReportError(os.Stderr, err)
		os.Exit(cli.ExitCodeForError(err))
	}
}
