package handover

import (
	"errors"
	"fmt"
	"io"

	"github.com/SanjoDeundiak/process-timer/pkg/lib"
)

// MaxMessage is the size of the parent's read buffer. A message is at most
// two int64s and a separator, so one read always carries it whole.
const MaxMessage = 4096

// Send writes the encoded timestamp to w in a single write.
func Send(w io.Writer, ts lib.Timestamp) error {
	if !ts.Valid() {
		return fmt.Errorf("refusing to send invalid timestamp %d,%d", ts.Sec, ts.Usec)
	}
	msg := Encode(ts)
	n, err := w.Write(msg)
	if err != nil {
		return fmt.Errorf("write handover: %w", err)
	}
	if n != len(msg) {
		return fmt.Errorf("write handover: %w", io.ErrShortWrite)
	}
	return nil
}

// Receive performs one read of up to MaxMessage bytes and decodes it. It
// blocks until the writer has written or every write endpoint is closed.
func Receive(r io.Reader) (lib.Timestamp, error) {
	buf := make([]byte, MaxMessage)
	n, err := r.Read(buf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return lib.Timestamp{}, fmt.Errorf("%w: channel closed before a message arrived", ErrMalformed)
		}
		return lib.Timestamp{}, fmt.Errorf("read handover: %w", err)
	}
	return Decode(buf[:n])
}
