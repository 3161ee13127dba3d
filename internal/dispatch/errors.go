package dispatch

import (
	"errors"
	"fmt"
)

// Wire messages for routing failures. Callers compare against these strings.
const (
	MsgUnknownContract  = "Unknown contract"
	MsgUnknownOperation = "Unknown method"
	MsgNotReadOnly      = "Operation is not read-only"
)

// RoutingErrorCode categorizes routing errors.
type RoutingErrorCode string

const (
	// ErrCodeUnknownContract indicates no contract has the requested name.
	ErrCodeUnknownContract RoutingErrorCode = "UNKNOWN_CONTRACT"

	// ErrCodeUnknownOperation indicates the contract has no such operation.
	ErrCodeUnknownOperation RoutingErrorCode = "UNKNOWN_OPERATION"

	// ErrCodeNotReadOnly indicates a mutating operation on the strict read-only path.
	ErrCodeNotReadOnly RoutingErrorCode = "NOT_READ_ONLY"
)

// RoutingError is a call that could not be routed to a handler.
// It signals a caller bug, not a data condition.
type RoutingError struct {
	Code      RoutingErrorCode
	Contract  string
	Operation string
}

// Error implements the error interface.
func (e *RoutingError) Error() string {
	return fmt.Sprintf("%s: %s.%s", e.Code, e.Contract, e.Operation)
}

// Message returns the wire message for the routing failure.
func (e *RoutingError) Message() string {
	switch e.Code {
	case ErrCodeUnknownContract:
		return MsgUnknownContract
	case ErrCodeUnknownOperation:
		return MsgUnknownOperation
	case ErrCodeNotReadOnly:
		return MsgNotReadOnly
	default:
		return string(e.Code)
	}
}

// IsRoutingError returns true if err is (or wraps) a RoutingError.
func IsRoutingError(err error) bool {
	var re *RoutingError
	return errors.As(err, &re)
}

// Fault is a handler panic converted into an error.
type Fault struct {
	Action string
	Value  any
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if err, ok := f.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(f.Value)
}

// Unwrap exposes a panicked error value.
func (f *Fault) Unwrap() error {
	err, _ := f.Value.(error)
	return err
}
