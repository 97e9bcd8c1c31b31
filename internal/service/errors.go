package service

import (
	"fmt"

	"github.com/xiaot623/neuralthreads/internal/domain"
)

// ValidationError reports a request the caller must fix before retrying.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StylistError is returned when the upstream model failed for a reason other
// than rate limiting. Response carries the degraded payload to send back.
type StylistError struct {
	Err      error
	Response string
}

func (e *StylistError) Error() string {
	return e.Err.Error()
}

func (e *StylistError) Unwrap() error {
	return e.Err
}

// TransitionError reports a booking status change the lifecycle forbids.
type TransitionError struct {
	From domain.BookingStatus
	To   domain.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %s to %s", e.From, e.To)
}
