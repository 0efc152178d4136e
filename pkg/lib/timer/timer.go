package timer

import (
	"errors"
	"io"
	"os"

	"github.com/SanjoDeundiak/process-timer/pkg/lib/clock"
	"go.uber.org/zap"
)

var (
	// ErrSplit is returned when the launcher process cannot be started.
	ErrSplit = errors.New("role split failed")
	// ErrExec is returned by the launcher when image replacement fails.
	ErrExec = errors.New("image replacement failed")
	// ErrClock is returned when the wall clock cannot be read.
	ErrClock = errors.New("wall clock unavailable")
)

// Timer times commands by splitting into a waiting parent and a launching child.
type Timer struct {
	clock      clock.Clock
	stdout     io.Writer
	stderr     io.Writer
	executable string
	environ    []string
	logger     *zap.Logger
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock sets the wall-clock source for both timing points.
func WithClock(c clock.Clock) Option {
	return func(t *Timer) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithLogger sets the logger. If nil, logging is discarded.
func WithLogger(l *zap.Logger) Option {
	return func(t *Timer) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithStdout sets where the report and the command's output go.
func WithStdout(w io.Writer) Option {
	return func(t *Timer) {
		if w != nil {
			t.stdout = w
		}
	}
}

// WithStderr sets where the command's standard error goes.
func WithStderr(w io.Writer) Option {
	return func(t *Timer) {
		if w != nil {
			t.stderr = w
		}
	}
}

// WithExecutable sets the binary started as the launcher. It must call
// Launch when IsLauncher reports true. Defaults to os.Executable().
func WithExecutable(path string) Option {
	return func(t *Timer) {
		t.executable = path
	}
}

// WithEnviron sets the environment passed on to the command. Defaults to os.Environ().
func WithEnviron(environ []string) Option {
	return func(t *Timer) {
		t.environ = append([]string(nil), environ...)
	}
}

// NewTimer creates a Timer reading the host wall clock and writing to the
// process's standard streams.
func NewTimer(opts ...Option) *Timer {
	t := &Timer{
		clock:  clock.Wall(),
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Timer) env() []string {
	if t.environ != nil {
		return t.environ
	}
	return os.Environ()
}
