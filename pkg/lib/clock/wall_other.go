//go:build !linux && !darwin

package clock

import (
	"time"

	"github.com/SanjoDeundiak/process-timer/pkg/lib"
)

type wallClock struct{}

func (wallClock) Now() (lib.Timestamp, error) {
	now := time.Now()
	return lib.Timestamp{Sec: now.Unix(), Usec: int64(now.Nanosecond() / 1000)}, nil
}
