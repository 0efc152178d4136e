package handover

import (
	"fmt"
	"strconv"

	"github.com/SanjoDeundiak/process-timer/pkg/lib"
)

// separator splits seconds from microseconds on the wire.
const separator = ','

// Encode renders ts as "<sec>,<usec>" in base-10 ASCII with no terminator.
func Encode(ts lib.Timestamp) []byte {
	buf := make([]byte, 0, 32)
	buf = strconv.AppendInt(buf, ts.Sec, 10)
	buf = append(buf, separator)
	buf = strconv.AppendInt(buf, ts.Usec, 10)
	return buf
}

// Decode parses the "<sec>,<usec>" prefix of buf. Anything after the digits of
// the microsecond field is ignored.
func Decode(buf []byte) (lib.Timestamp, error) {
	secDigits := leadingDigits(buf)
	if secDigits == 0 {
		return lib.Timestamp{}, fmt.Errorf("%w: %q: seconds field is not a base-10 integer", ErrMalformed, buf)
	}
	if secDigits == len(buf) || buf[secDigits] != separator {
		return lib.Timestamp{}, fmt.Errorf("%w: %q: missing %q after seconds", ErrMalformed, buf, separator)
	}
	rest := buf[secDigits+1:]
	usecDigits := leadingDigits(rest)
	if usecDigits == 0 {
		return lib.Timestamp{}, fmt.Errorf("%w: %q: microseconds field is not a base-10 integer", ErrMalformed, buf)
	}

	sec, err := strconv.ParseInt(string(buf[:secDigits]), 10, 64)
	if err != nil {
		return lib.Timestamp{}, fmt.Errorf("%w: %q: %v", ErrMalformed, buf, err)
	}
	usec, err := strconv.ParseInt(string(rest[:usecDigits]), 10, 64)
	if err != nil {
		return lib.Timestamp{}, fmt.Errorf("%w: %q: %v", ErrMalformed, buf, err)
	}

	ts := lib.Timestamp{Sec: sec, Usec: usec}
	if !ts.Valid() {
		return lib.Timestamp{}, fmt.Errorf("%w: %q: microseconds out of range", ErrMalformed, buf)
	}
	return ts, nil
}

func leadingDigits(b []byte) int {
	n := 0
	for n < len(b) && b[n] >= '0' && b[n] <= '9' {
		n++
	}
	return n
}
