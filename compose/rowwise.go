package compose

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/panelkit/core/model"
	"github.com/ezoic/panelkit/dataframe"
	pkerrors "github.com/ezoic/panelkit/pkg/errors"
	"github.com/ezoic/panelkit/pkg/log"
)

// RowwiseTransformer lifts a transformer that works on a single series
// to an entire nested frame: the wrapped transformer's FitTransform is
// applied independently to every row of every column, each series
// presented as an L×1 matrix, and the results are reassembled with the
// input's row index and column names.
//
// When every transformed cell comes back with length one (a
// series-to-scalar transformer such as preprocessing.Summarizer with a
// single statistic), the result is flattened into a tabular frame
// instead of a nested frame of length-1 series.
type RowwiseTransformer struct {
	state  *model.StateManager
	logger log.Logger

	transformer model.Transformer
}

// NewRowwiseTransformer wraps a per-series transformer.
func NewRowwiseTransformer(transformer model.Transformer) *RowwiseTransformer {
	return &RowwiseTransformer{
		state:       model.NewStateManager(),
		logger:      log.GetLoggerWithName("compose").With(log.ModelNameKey, "RowwiseTransformer"),
		transformer: transformer,
	}
}

// Fit validates that X is a nested frame. The wrapped transformer is
// not fitted here: it is re-fitted on every cell during Transform.
func (t *RowwiseTransformer) Fit(X *dataframe.Frame) (err error) {
	defer pkerrors.Recover(&err, "RowwiseTransformer.Fit")

	if t.transformer == nil {
		return pkerrors.NewValueError("RowwiseTransformer.Fit", "wrapped transformer must not be nil")
	}
	if err := dataframe.ValidateNested(X, "RowwiseTransformer.Fit"); err != nil {
		return err
	}

	t.state.SetFitted()
	return nil
}

// Transform applies the wrapped transformer's FitTransform to every
// cell and reassembles the results into a frame with X's shape.
func (t *RowwiseTransformer) Transform(X *dataframe.Frame) (_ *dataframe.Frame, err error) {
	defer pkerrors.Recover(&err, "RowwiseTransformer.Transform")

	if !t.state.IsFitted() {
		return nil, pkerrors.NewNotFittedError("RowwiseTransformer", "Transform")
	}
	if err := dataframe.ValidateNested(X, "RowwiseTransformer.Transform"); err != nil {
		return nil, err
	}

	rows, cols := X.Dims()
	t.logger.Debug("row-wise transform started",
		log.OperationKey, log.OperationTransform,
		log.RowsKey, rows,
		log.ColumnsKey, cols,
	)

	// Explicit double iteration: per-row transformer cost dominates,
	// so no batching is attempted.
	colsT := make([][]dataframe.Series, cols)
	for c := 0; c < cols; c++ {
		col, err := X.Column(c)
		if err != nil {
			return nil, err
		}
		rowsT := make([]dataframe.Series, rows)
		for i, cell := range col.Cells {
			cellT, err := t.transformCell(cell)
			if err != nil {
				return nil, pkerrors.Wrap(err, fmt.Sprintf(
					"RowwiseTransformer.Transform: column %q row %d", col.Name, i))
			}
			rowsT[i] = cellT
		}
		colsT[c] = rowsT
	}

	Xt, err := dataframe.ConcatNestedColumns(colsT, X.Names(), X.Index())
	if err != nil {
		return nil, err
	}

	// series-to-scalar collapse: flatten length-1 cells to primitives
	if allCellsScalar(Xt) {
		return dataframe.Tabularize(Xt)
	}
	return Xt, nil
}

// FitTransform fits on X and transforms it in one step.
func (t *RowwiseTransformer) FitTransform(X *dataframe.Frame) (*dataframe.Frame, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}

// GetParams returns the transformer's hyperparameters.
func (t *RowwiseTransformer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"transformer": t.transformer,
	}
}

// transformCell runs the wrapped transformer on one series and
// flattens whatever shape comes back into a series, row-major.
func (t *RowwiseTransformer) transformCell(cell dataframe.Series) (dataframe.Series, error) {
	if len(cell) == 0 {
		return nil, pkerrors.NewModelError("RowwiseTransformer.Transform", "empty series cell", pkerrors.ErrEmptyData)
	}

	m := mat.NewDense(len(cell), 1, nil)
	for i, v := range cell {
		m.Set(i, 0, v)
	}

	mt, err := t.transformer.FitTransform(m)
	if err != nil {
		return nil, err
	}

	r, c := mt.Dims()
	out := make(dataframe.Series, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, mt.At(i, j))
		}
	}
	return out, nil
}

func allCellsScalar(X *dataframe.Frame) bool {
	rows, cols := X.Dims()
	for c := 0; c < cols; c++ {
		for i := 0; i < rows; i++ {
			cell, err := X.Cell(i, c)
			if err != nil || len(cell) != 1 {
				return false
			}
		}
	}
	return rows > 0 && cols > 0
}
