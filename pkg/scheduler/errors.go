package scheduler

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDemand        = errors.New("demand series is empty")
	ErrInvalidStaffConfig = errors.New("invalid staff configuration")
)

// StaffConfigError points at the roster entry that failed validation.
// It matches ErrInvalidStaffConfig with errors.Is.
type StaffConfigError struct {
	Index   int
	StaffID string
	Reason  string
}

func (e *StaffConfigError) Error() string {
	return fmt.Sprintf("%v: staff[%d] %q: %s", ErrInvalidStaffConfig, e.Index, e.StaffID, e.Reason)
}

func (e *StaffConfigError) Unwrap() error {
	return ErrInvalidStaffConfig
}
