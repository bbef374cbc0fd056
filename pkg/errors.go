package summarystats

import (
	"fmt"
	"strings"
)

// InvalidInputError reports a length mismatch between parallel arrays.
type InvalidInputError struct {
	What       string
	LenTimes   int
	LenCharges int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s must have the same length, got %d and %d",
		e.What, e.LenTimes, e.LenCharges)
}

// UnsupportedFormatError reports an event record that does not match any
// recognized photon-record shape. Missing lists the required fields that
// were absent, when that is the reason.
type UnsupportedFormatError struct {
	Reason  string
	Missing []string
}

func (e *UnsupportedFormatError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("unsupported photon record: missing required fields: %s",
			strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("unsupported photon record: %s", e.Reason)
}

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}
