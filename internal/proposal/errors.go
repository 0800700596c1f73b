package proposal

import (
	"errors"
	"fmt"
)

// ErrNotFound signals the referenced proposal does not exist. No state change.
var ErrNotFound = errors.New("proposal not found")

// ConflictError signals the proposal is not in the state the requested
// transition needs. No state change; the stored status is reported as-is.
type ConflictError struct {
	Status Status
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("proposal already %s", e.Status)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
