package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProductNotFound is returned when an id is not in the product ledger.
	ErrProductNotFound = errors.New("product not found")

	ErrMissingFields = errors.New("product name, quantity, cost price and sell price are required")
	ErrNotANumber    = errors.New("quantity, cost price and sell price must be valid numbers")

	// ErrPersistence matches every *PersistenceError.
	ErrPersistence = errors.New("ledger was not saved")

	errIDExhausted = errors.New("could not generate a unique product id")
)

// ValidationError reports which draft fields broke which rule. Reason is
// ErrMissingFields or ErrNotANumber.
type ValidationError struct {
	Reason error
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%v (%s)", e.Reason, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// PersistenceError is returned when a ledger blob could not be written. The
// in-memory ledger is left as it was before the operation.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
