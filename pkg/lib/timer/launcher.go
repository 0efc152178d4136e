package timer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/SanjoDeundiak/process-timer/pkg/lib"
	"github.com/SanjoDeundiak/process-timer/pkg/lib/clock"
	"github.com/SanjoDeundiak/process-timer/pkg/lib/handover"
	"go.uber.org/zap"
)

// Launcher is the child role: it captures T_start, hands it to the parent and
// replaces its own image with the command.
type Launcher struct {
	Clock   clock.Clock
	Out     io.Writer
	Environ []string
	Logger  *zap.Logger

	// Overridable in tests.
	lookPath  func(file string) (string, error)
	execImage func(argv0 string, argv []string, envv []string) error
}

// Launch runs the child sequence and closes channel after the single write.
// On success it does not return. A returned error wrapping ErrExec means the
// handover was delivered but the command could not be started; any other
// error means the parent got no message.
func (l *Launcher) Launch(command string, channel io.WriteCloser) error {
	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.Stringer("role", lib.RoleChild), zap.String("command", command), zap.Int("pid", os.Getpid()))

	start, err := l.Clock.Now()
	if err != nil {
		_ = channel.Close()
		return fmt.Errorf("%w: %w", ErrClock, err)
	}
	err = handover.Send(channel, start)
	if closeErr := channel.Close(); closeErr != nil {
		log.Debug("Failed to close write endpoint", zap.Error(closeErr))
	}
	if err != nil {
		return err
	}
	log.Debug("Sent start time", zap.Stringer("start", start))

	// Informational only, the parent reports the value it received.
	again, err := l.Clock.Now()
	if err != nil {
		log.Debug("Failed to read clock after handover", zap.Error(err))
		again = start
	}
	_, _ = fmt.Fprintf(l.Out, "\nStarting time(child): %s\n", again)
	_, _ = fmt.Fprint(l.Out, "\nOutput of command:\n")

	environ := l.Environ
	if environ == nil {
		environ = os.Environ()
	}
	path, err := l.resolve(command)
	if err == nil {
		err = l.replaceImage()(path, []string{command}, handover.Strip(environ))
	}
	log.Debug("Image replacement failed", zap.Error(err))
	return fmt.Errorf("%w: %w", ErrExec, err)
}

// resolve follows execlp: names with a slash are used as given, others are
// searched in PATH, including a "." entry.
func (l *Launcher) resolve(command string) (string, error) {
	lookPath := l.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(command)
	if errors.Is(err, exec.ErrDot) {
		return path, nil
	}
	return path, err
}

func (l *Launcher) replaceImage() func(string, []string, []string) error {
	if l.execImage != nil {
		return l.execImage
	}
	return execImage
}

// IsLauncher reports whether this process was started as the child role of a
// timing run.
func IsLauncher() bool {
	_, ok := handover.Lookup(os.Environ())
	return ok
}

// Launch runs the child role in the current process using the inherited
// write endpoint.
func (t *Timer) Launch(command string) error {
	environ := t.env()
	w, err := handover.Inherit(environ)
	if err != nil {
		return err
	}
	l := &Launcher{
		Clock:   t.clock,
		Out:     t.stdout,
		Environ: environ,
		Logger:  t.logger,
	}
	return l.Launch(command, w)
}
