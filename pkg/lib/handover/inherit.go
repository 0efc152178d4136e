package handover

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// FD is where the child finds the write endpoint: the first entry of
	// exec.Cmd.ExtraFiles.
	FD = 3
	// EnvFD names the variable that carries FD to the child. Its presence
	// marks a process as the child role.
	EnvFD = "PROCESS_TIMER_HANDOVER_FD"
)

// Env returns the EnvFD=FD assignment to append to the child's environment.
func Env() string {
	return EnvFD + "=" + strconv.Itoa(FD)
}

// Lookup returns the value of EnvFD in environ, if set.
func Lookup(environ []string) (string, bool) {
	prefix := EnvFD + "="
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			return kv[len(prefix):], true
		}
	}
	return "", false
}

// Strip returns environ without any EnvFD entry so the target image starts
// with the caller's environment.
func Strip(environ []string) []string {
	prefix := EnvFD + "="
	out := make([]string, 0, len(environ))
	for _, kv := range environ {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}
	return out
}

// Inherit opens the write endpoint named by EnvFD in environ.
func Inherit(environ []string) (*os.File, error) {
	v, ok := Lookup(environ)
	if !ok {
		return nil, fmt.Errorf("%s is not set", EnvFD)
	}
	fd, err := strconv.Atoi(v)
	if err != nil || fd < 0 {
		return nil, fmt.Errorf("invalid %s=%q", EnvFD, v)
	}
	f := os.NewFile(uintptr(fd), "handover_wr")
	if f == nil {
		return nil, fmt.Errorf("invalid %s=%q", EnvFD, v)
	}
	return f, nil
}
