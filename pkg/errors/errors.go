// Package errors provides the error types used across panelkit.
//
// All errors are built on top of github.com/cockroachdb/errors so that
// callers get stack traces with %+v formatting while keeping full
// compatibility with the standard errors.Is / errors.As machinery.
//
// The package distinguishes three failure families:
//
//   - input shape problems (DimensionError, ValueError, ValidationError)
//   - missing fitted state (NotFittedError)
//   - unstackable sub-transformer output (OutputShapeError)
//
// None of these are retried or recovered internally; they surface
// synchronously to the immediate caller.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// prefix tags every error produced by this package so that library
// errors are recognizable when they bubble up through caller code.
const prefix = "panelkit"

// Sentinel errors for use with errors.Is.
var (
	// ErrEmptyData indicates an input frame or matrix with no rows or columns.
	ErrEmptyData = errors.New("empty data")

	// ErrNotImplemented indicates a requested variant that is not supported.
	ErrNotImplemented = errors.New("not implemented")

	// ErrHeterogeneousLength indicates a nested column whose rows hold
	// series of differing lengths where a uniform length is required.
	ErrHeterogeneousLength = errors.New("heterogeneous series lengths")
)

// New returns a new error with a stack trace attached.
func New(msg string) error {
	return errors.New(msg)
}

// Newf returns a new formatted error with a stack trace attached.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// Wrap annotates err with msg, preserving the original error for
// errors.Is / errors.As checks.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// NotFittedError is returned when Transform or InverseTransform is
// invoked on a transformer whose fitted state does not exist yet.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError for the given transformer
// and method name.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{
		ModelName: modelName,
		Method:    method,
	})
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s: %s is not fitted; call Fit before %s", prefix, e.ModelName, e.Method)
}

// DimensionError reports a mismatch between the expected and observed
// size along one axis of a frame or matrix.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError. Axis 0 refers to rows,
// axis 1 to columns.
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{
		Op:       op,
		Expected: expected,
		Got:      got,
		Axis:     axis,
	})
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s: dimension mismatch on axis %d: expected %d, got %d",
		prefix, e.Op, e.Axis, e.Expected, e.Got)
}

// ValueError reports an input whose value (rather than its shape)
// makes the operation impossible.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError for the given operation.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s: %s", prefix, e.Op, e.Message)
}

// ValidationError reports a misconfigured component, such as a pipeline
// step or column-transformer spec that does not satisfy its contract.
type ValidationError struct {
	Op      string
	Message string
	Item    string
}

// NewValidationError creates a ValidationError naming the offending item.
func NewValidationError(op, message, item string) error {
	return errors.WithStack(&ValidationError{Op: op, Message: message, Item: item})
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s (%s)", prefix, e.Op, e.Message, e.Item)
}

// OutputShapeError reports a sub-transformer output that cannot be
// stacked: anything that is neither a two-dimensional tabular result
// nor a named one-dimensional column.
type OutputShapeError struct {
	TransformerName string
	Got             string
}

// NewOutputShapeError creates an OutputShapeError naming the
// sub-transformer that produced the offending output.
func NewOutputShapeError(transformerName, got string) error {
	return errors.WithStack(&OutputShapeError{
		TransformerName: transformerName,
		Got:             got,
	})
}

func (e *OutputShapeError) Error() string {
	return fmt.Sprintf("%s: the output of the %q transformer should be 2D or a named 1D column, got %s",
		prefix, e.TransformerName, e.Got)
}

// ModelError wraps a lower-level cause with the operation that failed.
type ModelError struct {
	Op      string
	Message string
	cause   error
}

// NewModelError creates a ModelError wrapping cause. The cause may be
// nil when there is no underlying error to preserve.
func NewModelError(op, message string, cause error) error {
	return errors.WithStack(&ModelError{Op: op, Message: message, cause: cause})
}

func (e *ModelError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%s: %s: %s", prefix, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s: %v", prefix, e.Op, e.Message, e.cause)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *ModelError) Unwrap() error {
	return e.cause
}

// Recover converts a panic inside an estimator method into an error,
// so that transformer calls never panic across the package boundary.
// Use as:
//
//	func (t *T) Transform(X *dataframe.Frame) (_ *dataframe.Frame, err error) {
//		defer errors.Recover(&err, "T.Transform")
//		...
//	}
func Recover(err *error, op string) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = errors.Wrapf(e, "%s: panic in %s", prefix, op)
			return
		}
		*err = errors.Newf("%s: panic in %s: %v", prefix, op, r)
	}
}
