package vtk

import (
	"errors"
	"fmt"
)

var (
	// ErrNotVTK is returned when a file does not start with the legacy
	// VTK magic line.
	ErrNotVTK = errors.New("vtk: missing vtk DataFile magic")

	// ErrBinary is returned for legacy files whose data section is
	// BINARY; only ASCII files are supported.
	ErrBinary = errors.New("vtk: binary data is not supported")
)

// ParseError describes a failure while parsing a legacy VTK file,
// with the section that was being read when it occurred.
type ParseError struct {
	Path    string
	Section string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("vtk: %s: %s: %v", e.Path, e.Section, e.Err)
	}
	return fmt.Sprintf("vtk: %s: %v", e.Section, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
