package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/panelkit/dataframe"
)

// Transformer is the matrix transformation contract. Per-row
// transformers implement it against a single series presented as an
// L×1 matrix; tabular transformers implement it against a full
// primitive-valued matrix.
type Transformer interface {
	// Fit learns parameters necessary for transformation
	Fit(X mat.Matrix) error

	// Transform transforms data
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform executes Fit and Transform simultaneously
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// FrameTransformer is the labeled-frame transformation contract used
// by the compose and pipeline packages.
type FrameTransformer interface {
	// Fit learns, or merely validates, against a frame and marks the
	// transformer fitted.
	Fit(X *dataframe.Frame) error

	// Transform transforms a frame into a new frame of the shape
	// family the transformer produces (nested or tabular).
	Transform(X *dataframe.Frame) (*dataframe.Frame, error)
}

// InvertibleFrameTransformer extends FrameTransformer with an inverse
// mapping back to the original shape family.
type InvertibleFrameTransformer interface {
	FrameTransformer

	// InverseTransform reverses a previous Transform using recorded
	// fitted state.
	InverseTransform(X *dataframe.Frame) (*dataframe.Frame, error)
}
