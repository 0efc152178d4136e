package lib

import "fmt"

// MicrosPerSecond is the number of microseconds in one second.
const MicrosPerSecond = 1_000_000

// Timestamp is a wall-clock reading as seconds and microseconds since the epoch.
type Timestamp struct {
	Sec  int64
	Usec int64
}

// Valid reports whether both fields are non-negative and Usec is below one second.
func (t Timestamp) Valid() bool {
	return t.Sec >= 0 && t.Usec >= 0 && t.Usec < MicrosPerSecond
}

// String renders the timestamp as "<sec>.<usec>". The microsecond part is
// printed as a plain integer, it is not zero padded.
func (t Timestamp) String() string {
	return fmt.Sprintf("%d.%d", t.Sec, t.Usec)
}

// Elapsed returns end - start in microseconds. The result is not clamped and
// is negative if the clock moved backwards between the two readings.
func Elapsed(start, end Timestamp) int64 {
	return (end.Sec-start.Sec)*MicrosPerSecond + end.Usec - start.Usec
}

// Role is the side of a timing run a process plays after the split.
type Role int

const (
	RoleUnspecified Role = iota
	// RoleParent reads the handover, waits for the child and reports.
	RoleParent
	// RoleChild writes the handover and replaces itself with the target.
	RoleChild
)

func (r Role) String() string {
	switch r {
	case RoleParent:
		return "parent"
	case RoleChild:
		return "child"
	default:
		return "unspecified"
	}
}
