// Package clock provides the wall-clock source used at the two timing points.
package clock

import "github.com/SanjoDeundiak/process-timer/pkg/lib"

// Clock returns the current wall-clock time.
type Clock interface {
	Now() (lib.Timestamp, error)
}

// Func adapts a plain function to Clock.
type Func func() (lib.Timestamp, error)

func (f Func) Now() (lib.Timestamp, error) {
	return f()
}

// Wall returns the host wall clock.
func Wall() Clock {
	return wallClock{}
}
