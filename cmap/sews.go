package cmap

import (
	"errors"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// coerceSew rewraps an aborted link or attribute failure as a SewError so
// callers of composite operators see a single failure type. Conflicts pass
// through untouched.
func coerceSew(dim int, lhs, rhs DartID, err error) error {
	var ab *stm.AbortError
	if errors.As(err, &ab) {
		return stm.Abort(&SewError{Dim: dim, Lhs: lhs, Rhs: rhs, Err: ab.Err})
	}
	return err
}
