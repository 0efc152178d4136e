//go:build linux || darwin

package clock

import (
	"github.com/SanjoDeundiak/process-timer/pkg/lib"
	"golang.org/x/sys/unix"
)

type wallClock struct{}

// Now reads gettimeofday(2) so readings carry the same sec/usec split the
// handover format uses.
func (wallClock) Now() (lib.Timestamp, error) {
	var tv unix.Timeval
	if err := unix.Gettimeofday(&tv); err != nil {
		return lib.Timestamp{}, err
	}
	return lib.Timestamp{Sec: int64(tv.Sec), Usec: int64(tv.Usec)}, nil
}
