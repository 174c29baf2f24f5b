package store

import (
	"errors"
	"fmt"

	"haxeget/internal/paths"
	"haxeget/internal/state"
)

// Error kinds returned by the version store. Match them with errors.Is.
var (
	ErrAlreadyInstalled    = errors.New("already installed")
	ErrNotInstalled        = errors.New("not installed")
	ErrInvalidVersion      = errors.New("invalid version name")
	ErrLinkCreationFailed  = errors.New("link creation failed")
	ErrIOFailure           = errors.New("filesystem operation failed")
	ErrCorruptState        = state.ErrCorruptState
	ErrUnsupportedPlatform = paths.ErrUnsupportedPlatform
)

// VersionError reports a failed precondition on a version name together with the
// command that would satisfy it.
type VersionError struct {
	Version string
	Err     error
}

func (e *VersionError) Error() string {
	switch e.Err {
	case ErrAlreadyInstalled:
		return fmt.Sprintf("%s is already installed. Try running `haxeget use %s` or `haxeget install --force %s`", e.Version, e.Version, e.Version)
	case ErrNotInstalled:
		return fmt.Sprintf("%s is not installed. Try running `haxeget install %s`", e.Version, e.Version)
	}
	return fmt.Sprintf("%q: %v", e.Version, e.Err)
}

func (e *VersionError) Unwrap() error { return e.Err }

// PathError is a filesystem failure with the operation and path it concerned.
// It matches both ErrIOFailure and the underlying error.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() []error { return []error{ErrIOFailure, e.Err} }

// LinkError is a failure to expose a tool at its fixed path.
// It matches both ErrLinkCreationFailed and the underlying error.
type LinkError struct {
	Link   string
	Target string
	Err    error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link %s -> %s: %v", e.Link, e.Target, e.Err)
}

func (e *LinkError) Unwrap() []error { return []error{ErrLinkCreationFailed, e.Err} }

// pathErr wraps err unless it is nil or already carries store context.
func pathErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PathError
	var le *LinkError
	if errors.As(err, &pe) || errors.As(err, &le) || errors.Is(err, ErrCorruptState) {
		return err
	}
	return &PathError{Op: op, Path: path, Err: err}
}
