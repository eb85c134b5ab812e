package errors_test

import (
	"errors"
	"fmt"

	pkerrors "github.com/ezoic/panelkit/pkg/errors"
)

// Example demonstrates Go 1.13+ error wrapping
func Example() {
	// Create a base error
	baseErr := fmt.Errorf("invalid input value")

	// Wrap the error with context using Go 1.13+ syntax
	wrappedErr := fmt.Errorf("frame validation failed: %w", baseErr)

	// Further wrap with operation context
	opErr := fmt.Errorf("Tabularizer.Transform: %w", wrappedErr)

	// Use errors.Is to check for specific error types
	if errors.Is(opErr, baseErr) {
		fmt.Println("Found base error in chain")
	}

	// Unwrap errors to get the underlying cause
	unwrapped := errors.Unwrap(opErr)
	fmt.Printf("Unwrapped: %v\n", unwrapped)

	// Output: Found base error in chain
	// Unwrapped: frame validation failed: invalid input value
}

// Example_customErrorTypes demonstrates custom error type handling
func Example_customErrorTypes() {
	// Create a custom error using our error constructors
	dimErr := pkerrors.NewDimensionError("Transform", 5, 3, 1)

	// Wrap it with additional context
	wrappedErr := fmt.Errorf("tabularization failed: %w", dimErr)

	// Check if error is of specific type using errors.As
	var dimensionErr *pkerrors.DimensionError
	if errors.As(wrappedErr, &dimensionErr) {
		fmt.Printf("Dimension error: expected %d, got %d\n",
			dimensionErr.Expected, dimensionErr.Got)
	}

	// Output: Dimension error: expected 5, got 3
}

// Example_errorComparison demonstrates error comparison patterns
func Example_errorComparison() {
	// Create different types of errors
	notFittedErr := pkerrors.NewNotFittedError("Tabularizer", "InverseTransform")
	valueErr := pkerrors.NewValueError("RowwiseTransformer.Fit", "input frame must be nested")

	// Create a sentinel error for comparison
	customErr := errors.New("custom processing error")
	wrappedCustom := fmt.Errorf("operation failed: %w", customErr)

	// Use errors.Is for sentinel error checking
	if errors.Is(wrappedCustom, customErr) {
		fmt.Println("Custom error detected")
	}

	// Use errors.As for type assertions
	var notFitted *pkerrors.NotFittedError
	if errors.As(notFittedErr, &notFitted) {
		fmt.Printf("Transformer %s is not fitted for %s\n",
			notFitted.ModelName, notFitted.Method)
	}

	var valErr *pkerrors.ValueError
	if errors.As(valueErr, &valErr) {
		fmt.Printf("Value error in %s: %s\n", valErr.Op, valErr.Message)
	}

	// Output: Custom error detected
	// Transformer Tabularizer is not fitted for InverseTransform
	// Value error in RowwiseTransformer.Fit: input frame must be nested
}

// Example_outputShapeError demonstrates the output validation error
// raised when a sub-transformer output cannot be stacked.
func Example_outputShapeError() {
	err := pkerrors.NewOutputShapeError("summary", "unnamed 1D column")

	var shapeErr *pkerrors.OutputShapeError
	if errors.As(err, &shapeErr) {
		fmt.Printf("Offending transformer: %s\n", shapeErr.TransformerName)
	}

	// Output: Offending transformer: summary
}

// Example_errorLogging demonstrates structured error logging
func Example_errorLogging() {
	// Create a complex error with context
	baseErr := pkerrors.NewModelError("ColumnTransformer", "sparse stacking requested",
		pkerrors.ErrNotImplemented)

	// Wrap with operation context
	opErr := fmt.Errorf("feature extraction step: %w", baseErr)

	// In production this goes through pkg/log; %+v adds the
	// cockroachdb/errors stack trace.
	fmt.Printf("Error occurred during composition: %v\n", opErr)

	// Output: Error occurred during composition: feature extraction step: panelkit: ColumnTransformer: sparse stacking requested: not implemented
}
