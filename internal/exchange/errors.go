package exchange

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch matches any ShapeMismatchError via errors.Is.
	ErrShapeMismatch = errors.New("exchange path does not match naming convention")

	// ErrDeletionFailed matches any DeletionError via errors.Is.
	ErrDeletionFailed = errors.New("exchange directory deletion failed")

	// ErrInvalidFilter matches any InvalidFilterError via errors.Is.
	ErrInvalidFilter = errors.New("invalid exchange filter")
)

// ShapeMismatchError reports a matched path that does not follow the exchange
// naming convention. It means the exchange has been corrupted or the
// convention has changed, so the run cannot continue.
type ShapeMismatchError struct {
	Path     string // Offending path
	Expected string // Shape the path was expected to have
}

// Error implements the error interface for ShapeMismatchError.
func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("could not match %q with expected shape %q", e.Path, e.Expected)
}

// Is reports whether target is ErrShapeMismatch.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// DeletionError reports a directory the filesystem refused to remove.
type DeletionError struct {
	Path string // Directory that could not be removed
	Err  error  // Underlying filesystem error
}

// Error implements the error interface for DeletionError.
func (e *DeletionError) Error() string {
	return fmt.Sprintf("delete %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *DeletionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDeletionFailed.
func (e *DeletionError) Is(target error) bool {
	return target == ErrDeletionFailed
}

// InvalidFilterError reports a filter value that would not stay within one
// path segment under the exchange root.
type InvalidFilterError struct {
	Field string // Filter field name
	Value string // Rejected value
}

// Error implements the error interface for InvalidFilterError.
func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be a single directory name", e.Field, e.Value)
}

// Is reports whether target is ErrInvalidFilter.
func (e *InvalidFilterError) Is(target error) bool {
	return target == ErrInvalidFilter
}
