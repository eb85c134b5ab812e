package compose

import (
	"github.com/ezoic/panelkit/core/model"
	"github.com/ezoic/panelkit/dataframe"
	pkerrors "github.com/ezoic/panelkit/pkg/errors"
)

// ColumnConcatenator concatenates multivariate panel data into long
// univariate panel data: every sample's per-column series are joined
// end-to-end, in column order, into a single nested column.
type ColumnConcatenator struct {
	state *model.StateManager
}

// NewColumnConcatenator creates a ColumnConcatenator.
func NewColumnConcatenator() *ColumnConcatenator {
	return &ColumnConcatenator{state: model.NewStateManager()}
}

// Fit validates that X is a nested frame. Nothing is learned.
func (t *ColumnConcatenator) Fit(X *dataframe.Frame) (err error) {
	defer pkerrors.Recover(&err, "ColumnConcatenator.Fit")

	if err := dataframe.ValidateNested(X, "ColumnConcatenator.Fit"); err != nil {
		return err
	}
	t.state.SetFitted()
	return nil
}

// Transform returns a nested frame with the same rows as X and exactly
// one column, whose per-row series length is the sum of X's per-row
// lengths across columns. The concatenation order follows the
// flattening scheme of dataframe.Tabularize: original column order,
// observation positions ascending.
func (t *ColumnConcatenator) Transform(X *dataframe.Frame) (_ *dataframe.Frame, err error) {
	defer pkerrors.Recover(&err, "ColumnConcatenator.Transform")

	if !t.state.IsFitted() {
		return nil, pkerrors.NewNotFittedError("ColumnConcatenator", "Transform")
	}
	if X == nil {
		return nil, pkerrors.NewValueError("ColumnConcatenator.Transform", "expected input is a frame, got nil")
	}

	Xt, err := dataframe.Tabularize(X)
	if err != nil {
		return nil, err
	}
	return dataframe.Detabularize(Xt, nil)
}

// FitTransform fits on X and transforms it in one step.
func (t *ColumnConcatenator) FitTransform(X *dataframe.Frame) (*dataframe.Frame, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}
