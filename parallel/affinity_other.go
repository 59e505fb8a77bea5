//go:build !linux

package parallel

import "errors"

// pinToCore is a no-op outside linux; core binding falls back to letting the
// scheduler place workers freely.
func pinToCore(int) error {
	return errors.ErrUnsupported
}
