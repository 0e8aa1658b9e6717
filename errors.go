package calcpdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for common report generation failure conditions.
var (
	ErrInvalidParam = errors.New("calcpdf: invalid parameter")
	ErrUnknownKind  = errors.New("calcpdf: unknown report kind")
	ErrNoData       = errors.New("calcpdf: no data to report")
	ErrNotFound     = errors.New("calcpdf: entity not found")
	ErrClosed       = errors.New("calcpdf: document is closed")
)

// ReportError represents an error that occurred during a specific report
// operation. It wraps an underlying error and includes the operation name for
// context.
type ReportError struct {
	Op  string // operation name, e.g. "Output", "CalculationReport"
	Err error  // underlying error
}

func (e *ReportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("calcpdf.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("calcpdf.%s: unknown error", e.Op)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// WrapError wraps err with the operation name. It returns nil when err is
// nil.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ReportError{Op: op, Err: err}
}
