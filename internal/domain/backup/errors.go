package backup

import (
	"errors"
	"fmt"
)

var ErrInvalidBackup = errors.New("invalid backup")

// ValidationError carries the human-readable reason a payload was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidBackup
}

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
