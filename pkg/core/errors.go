package core

import (
	"errors"
	"fmt"
)

var (
	// ErrRendererUnavailable is returned once the render worker has stopped,
	// whether it was closed or terminated unexpectedly.
	ErrRendererUnavailable = errors.New("renderer unavailable: render worker is not running")

	// ErrZeroSamples rejects a sample count of zero, which would divide by zero
	// when accumulated radiance is normalized.
	ErrZeroSamples = errors.New("samples per pixel must be at least 1")

	// ErrInvalidParams wraps any other render parameter failure.
	ErrInvalidParams = errors.New("invalid render parameters")
)

// GeometryError reports degenerate geometry that would otherwise poison a
// render with NaN values.
type GeometryError struct {
	Object string // Human readable name of the offending object
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry (%s): %s", e.Object, e.Reason)
}

// ValidateDirection fails when a direction cannot be normalized.
func ValidateDirection(name string, direction Vec3) error {
	if !direction.IsFinite() {
		return &GeometryError{Object: name, Reason: fmt.Sprintf("non-finite direction %v", direction)}
	}
	if direction.LengthSquared() == 0 {
		return &GeometryError{Object: name, Reason: "zero-length direction"}
	}
	return nil
}
