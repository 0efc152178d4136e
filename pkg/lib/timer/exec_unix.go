//go:build linux || darwin

package timer

import "golang.org/x/sys/unix"

func execImage(argv0 string, argv []string, envv []string) error {
	return unix.Exec(argv0, argv, envv)
}
