package cmapfile

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch means the file holds a map of a different
	// dimension than the caller asked for.
	ErrDimensionMismatch = errors.New("cmapfile: map dimension mismatch")
	// ErrMissingSection means a required section header never appeared.
	ErrMissingSection = errors.New("cmapfile: missing section")
)

// FormatError reports malformed content at a specific place in the file.
type FormatError struct {
	Section string
	Line    int
	Reason  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cmapfile: bad %s data at line %d: %s", e.Section, e.Line, e.Reason)
	}
	return fmt.Sprintf("cmapfile: bad %s data: %s", e.Section, e.Reason)
}
