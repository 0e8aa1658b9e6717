package table

import (
	"errors"
	"fmt"
)

// Sentinel errors for broken row invariants. They indicate a bug in the code
// building the table and abort the document.
var (
	ErrRowStarted    = errors.New("table: a row is already started")
	ErrRowNotStarted = errors.New("table: no row is started")
	ErrEmptyRow      = errors.New("table: no cell has been added to the row")
	ErrSpanMismatch  = errors.New("table: cells span does not match the columns count")
	ErrNoColumns     = errors.New("table: no column is defined")
	ErrImageNotFound = errors.New("table: image file does not exist")
)

// Error is a layout error with the operation that caused it.
type Error struct {
	Op  string // e.g. "StartRow", "EndRow"
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("table.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("table.%s: unknown error", e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}
