//go:build !linux && !darwin

package timer

import "errors"

func execImage(string, []string, []string) error {
	return errors.ErrUnsupported
}
