package timer

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/SanjoDeundiak/process-timer/pkg/lib"
	"github.com/SanjoDeundiak/process-timer/pkg/lib/handover"
	"go.uber.org/zap"
)

// Report is the outcome of one timing run.
type Report struct {
	ID      string
	Command string
	Start   lib.Timestamp
	End     lib.Timestamp
	// Elapsed is End - Start in microseconds.
	Elapsed int64
}

// Run times command. It creates the handover channel, starts the launcher as
// the child role and then acts as the parent role until the child has
// terminated. The command's exit status is not inspected.
func (t *Timer) Run(command string) (*Report, error) {
	id := lib.NewID()
	log := t.logger.With(zap.String("run", id), zap.String("command", command))

	ch, err := handover.New()
	if err != nil {
		log.Debug("Failed to create handover channel", zap.Error(err))
		return nil, err
	}

	stdout, stderr := t.outputs()

	cmd, err := t.launcherCommand(command, ch.Writer(), stdout, stderr)
	if err == nil {
		err = cmd.Start()
	}
	if err != nil {
		_ = ch.CloseWrite()
		_ = ch.CloseRead()
		log.Debug("Failed to start launcher", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSplit, err)
	}
	defer ch.CloseRead()

	// The child holds its own copy now.
	if err := ch.CloseWrite(); err != nil {
		log.Debug("Failed to close write endpoint", zap.Error(err))
	}
	log.Debug("Started launcher", zap.Int("pid", cmd.Process.Pid))

	waiter := &Waiter{Clock: t.clock, Out: stdout, Logger: log}
	report, err := waiter.Wait(command, ch.Reader(), cmd)
	if err != nil {
		return nil, err
	}
	report.ID = id
	return report, nil
}

func (t *Timer) launcherCommand(command string, handoverW *os.File, stdout, stderr io.Writer) (*exec.Cmd, error) {
	executable := t.executable
	if executable == "" {
		var err error
		executable, err = os.Executable()
		if err != nil {
			return nil, err
		}
	}

	cmd := exec.Command(executable, command)
	cmd.Env = append(handover.Strip(t.env()), handover.Env())
	cmd.ExtraFiles = []*os.File{handoverW}
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd, nil
}

// outputs returns the writers shared by the parent and the child. Files are
// handed to the child as is; anything else is copied by exec.Cmd goroutines
// concurrently with the parent's own writes, so those get one lock.
func (t *Timer) outputs() (io.Writer, io.Writer) {
	_, outIsFile := t.stdout.(*os.File)
	_, errIsFile := t.stderr.(*os.File)
	if outIsFile && errIsFile {
		return t.stdout, t.stderr
	}
	mu := new(sync.Mutex)
	return &lockedWriter{mu: mu, w: t.stdout}, &lockedWriter{mu: mu, w: t.stderr}
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
