package game

import (
	"errors"
	"fmt"
)

// Code is the sentinel every mutating operation returns. Hooks and the core
// share one vocabulary instead of raw booleans.
type Code int

const (
	DefaultSuccess Code = 1
	DefaultFailure Code = -1
)

// ResultCodes holds the success/failure values a game uses.
type ResultCodes struct {
	Success Code
	Failure Code
}

// DefaultCodes returns the 1/-1 code pair.
func DefaultCodes() ResultCodes {
	return ResultCodes{Success: DefaultSuccess, Failure: DefaultFailure}
}

var (
	// ErrInvariantViolation marks a programming or configuration defect. A
	// game that hits one is aborted.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrUnknownLocation is returned when the dispatcher meets a location
	// class it does not handle.
	ErrUnknownLocation = fmt.Errorf("%w: unknown location class", ErrInvariantViolation)
	// ErrMissingConfig is returned when a rule variant needs configuration
	// that was never supplied.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrBankInsufficientFunds is the condition behind a failed bank payout.
	// It is recorded in history and surfaced as a failure code, never as a
	// fatal error.
	ErrBankInsufficientFunds = errors.New("bank has insufficient funds")
	// ErrInvalidHook is returned when a hook does not match its name's signature.
	ErrInvalidHook = errors.New("hook signature mismatch")
)

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
