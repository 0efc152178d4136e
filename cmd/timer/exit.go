package main

import (
	"errors"
	"fmt"

	"github.com/SanjoDeundiak/process-timer/pkg/lib/handover"
	"github.com/SanjoDeundiak/process-timer/pkg/lib/timer"
)

const (
	exitOK       = 0
	exitChannel  = 1
	exitSplit    = 2
	exitUsage    = 3
	exitProtocol = 4
)

const usageMessage = "Invalid number of arguments, program terminated."

// diagnose maps the driver's error to an exit code and a one-line message for stderr.
func diagnose(err error) (int, string) {
	switch {
	case err == nil:
		return exitOK, ""
	case errors.Is(err, errUsage):
		return exitUsage, usageMessage
	case errors.Is(err, handover.ErrCreate):
		return exitChannel, fmt.Sprintf("Pipe failed: %v", err)
	case errors.Is(err, timer.ErrSplit):
		return exitSplit, fmt.Sprintf("Fork failed: %v", err)
	default:
		// handover.ErrMalformed, timer.ErrClock
		return exitProtocol, err.Error()
	}
}

// launcherExit maps the child role's error to its exit code. A failed image
// replacement is silent; the parent reports regardless.
func launcherExit(err error) (int, string) {
	if err == nil || errors.Is(err, timer.ErrExec) {
		return exitOK, ""
	}
	return 1, err.Error()
}
