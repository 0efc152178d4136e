package timer

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/SanjoDeundiak/process-timer/pkg/lib"
	"github.com/SanjoDeundiak/process-timer/pkg/lib/clock"
	"github.com/SanjoDeundiak/process-timer/pkg/lib/handover"
	"go.uber.org/zap"
)

// Process is the child as seen by the parent role.
type Process interface {
	Wait() error
}

// Waiter is the parent role: it reads T_start from the channel, waits for the
// child to terminate, reads T_end and prints the report as it goes.
type Waiter struct {
	Clock  clock.Clock
	Out    io.Writer
	Logger *zap.Logger
}

// Wait runs the parent sequence. The caller must already have closed its
// copy of the write endpoint. The child is reaped even when the handover is
// malformed.
func (w *Waiter) Wait(command string, channel io.Reader, child Process) (*Report, error) {
	log := w.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.Stringer("role", lib.RoleParent))

	printHeader(w.Out, command)

	start, err := handover.Receive(channel)
	if err != nil {
		waitErr := child.Wait()
		log.Debug("Handover failed, child reaped", zap.Error(err), zap.NamedError("wait", waitErr))
		return nil, err
	}
	printStart(w.Out, start)

	if err := child.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Debug("Child finished", zap.Int("exitCode", exitErr.ExitCode()))
		} else {
			log.Debug("Child finished with err", zap.Error(err))
		}
	} else {
		log.Debug("Child finished without error")
	}

	end, err := w.Clock.Now()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClock, err)
	}
	printEnd(w.Out, end)

	elapsed := lib.Elapsed(start, end)
	printElapsed(w.Out, elapsed)

	return &Report{Command: command, Start: start, End: end, Elapsed: elapsed}, nil
}

func printHeader(w io.Writer, command string) {
	_, _ = fmt.Fprintf(w, "\nName of command: %s\n", command)
}

func printStart(w io.Writer, ts lib.Timestamp) {
	_, _ = fmt.Fprintf(w, "\nStarting Time(parent): %s\n", ts)
}

func printEnd(w io.Writer, ts lib.Timestamp) {
	_, _ = fmt.Fprintf(w, "\nEnding time: %s\n", ts)
}

// The banner spelling is kept for consumers of the textual output.
func printElapsed(w io.Writer, micros int64) {
	_, _ = fmt.Fprintf(w, "\nElaspsed time(microseconds): %d\n\n", micros)
}
