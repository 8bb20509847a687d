// Package main provides the cairn CLI: project state tracking,
// validation, and checkpointing for long-running agent-driven work.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/cairn/pkg/types"
)

// Exit codes for scripting.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errReported marks failures whose details were already printed by the
// command (for example a validation report); main only sets the exit
// status for them.
var errReported = errors.New("failure already reported")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status. Not-found and
// validation outcomes are user errors; anything else is a system
// error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errReported),
		errors.Is(err, types.ErrStateNotFound),
		errors.Is(err, types.ErrManifestNotFound),
		errors.Is(err, types.ErrCheckpointNotFound),
		errors.Is(err, types.ErrNoCheckpointTarget):
		return exitUserError
	default:
		return exitSysError
	}
}
