// Package handover carries the child's start timestamp to the parent over a
// one-shot pipe.
package handover

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/SanjoDeundiak/process-timer/pkg/lib"
)

var (
	// ErrCreate is returned when the pipe cannot be created.
	ErrCreate = errors.New("handover channel creation failed")
	// ErrMalformed is returned when the received bytes are not a timestamp message.
	ErrMalformed = errors.New("malformed handover message")
)

// Channel is a unidirectional pipe from the child role to the parent role.
// Each endpoint is closed at most once, whichever side calls Close first.
type Channel struct {
	read  *os.File
	write *os.File

	readOnce  sync.Once
	readErr   error
	writeOnce sync.Once
	writeErr  error
}

// New creates the pipe. Both endpoints are close-on-exec; the write end only
// reaches the child because it is passed explicitly.
func New() (*Channel, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}
	return &Channel{read: r, write: w}, nil
}

// Reader returns the read endpoint.
func (c *Channel) Reader() *os.File { return c.read }

// Writer returns the write endpoint.
func (c *Channel) Writer() *os.File { return c.write }

// CloseRead releases the read endpoint.
func (c *Channel) CloseRead() error {
	c.readOnce.Do(func() {
		c.readErr = c.read.Close()
	})
	return c.readErr
}

// CloseWrite releases the write endpoint. The parent must call it as soon as
// the child holds its own copy, otherwise Receive never sees EOF if the child
// dies before writing.
func (c *Channel) CloseWrite() error {
	c.writeOnce.Do(func() {
		c.writeErr = c.write.Close()
	})
	return c.writeErr
}

// Receive reads the message from the read endpoint.
func (c *Channel) Receive() (lib.Timestamp, error) {
	return Receive(c.read)
}
