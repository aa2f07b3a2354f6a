package store

import "fmt"

// ConflictError signals a unique-constraint violation (VIN, licence plate,
// email).
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// NotFoundError signals that a referenced record does not exist. Entity names
// which reference is missing so callers can report it precisely.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

// ValidationError signals a missing, malformed, or out-of-range field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransactionError wraps an underlying store failure during a compound write.
// The enclosing transaction has been rolled back when this is returned.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// wrapTxErr passes domain errors through untouched and wraps anything else
// as a TransactionError for the given operation.
func wrapTxErr(op string, err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *ConflictError, *NotFoundError, *ValidationError:
		return err
	}
	return &TransactionError{Op: op, Err: err}
}
