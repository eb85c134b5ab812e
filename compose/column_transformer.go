package compose

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/panelkit/core/model"
	"github.com/ezoic/panelkit/core/parallel"
	"github.com/ezoic/panelkit/dataframe"
	pkerrors "github.com/ezoic/panelkit/pkg/errors"
	"github.com/ezoic/panelkit/pkg/log"
)

// TransformerSpec names one column subset and the action applied to
// it: (name, drop/passthrough/estimator, column selector).
type TransformerSpec struct {
	Name    string
	Action  Action
	Columns ColumnSelector
}

// remainderName labels the implicit spec covering columns no explicit
// spec claimed.
const remainderName = "remainder"

// ColumnTransformer applies different transformers to different column
// subsets of a frame and concatenates their outputs horizontally into
// a single feature space.
//
// Estimators wrapped by Apply may implement model.FrameTransformer
// (labeled in, labeled out) or model.Transformer (matrix in, matrix
// out). With PreserveFrame enabled (the default), any labeled
// sub-result makes the combined output a labeled tabular frame with
// row alignment and column labels preserved; matrix sub-results get
// positional column names. With PreserveFrame disabled the outputs
// are stacked as a plain rectangular array and row labels are lost.
//
// Before stacking, every sub-result is checked to be two-dimensional
// primitive output or a named one-dimensional column; anything else
// fails with an output-shape error naming the offending spec.
type ColumnTransformer struct {
	state  *model.StateManager
	logger log.Logger

	specs         []TransformerSpec
	remainder     Action
	nJobs         int
	weights       map[string]float64
	preserveFrame bool

	fitted []fittedSpec
}

// fittedSpec is one resolved spec after Fit: the action carries the
// fitted estimator, columns are concrete names.
type fittedSpec struct {
	name    string
	action  Action
	columns []string
	scalar  bool // single explicit column: pass a bare column through
}

// ColumnTransformerOption configures a ColumnTransformer.
type ColumnTransformerOption func(*ColumnTransformer)

// WithRemainder sets the handling of columns no spec claims. The
// default drops them; Passthrough forwards them, Apply runs an
// estimator on them.
func WithRemainder(action Action) ColumnTransformerOption {
	return func(ct *ColumnTransformer) { ct.remainder = action }
}

// WithNJobs sets the number of goroutines used to run the fitted
// specs during Transform. Values below 2 keep execution sequential.
func WithNJobs(n int) ColumnTransformerOption {
	return func(ct *ColumnTransformer) { ct.nJobs = n }
}

// WithWeights sets multiplicative per-spec output weights, keyed by
// spec name.
func WithWeights(weights map[string]float64) ColumnTransformerOption {
	return func(ct *ColumnTransformer) {
		ct.weights = make(map[string]float64, len(weights))
		for k, v := range weights {
			ct.weights[k] = v
		}
	}
}

// WithPreserveFrame controls whether labeled sub-results keep the
// combined output labeled. Enabled by default.
func WithPreserveFrame(preserve bool) ColumnTransformerOption {
	return func(ct *ColumnTransformer) { ct.preserveFrame = preserve }
}

// NewColumnTransformer creates a ColumnTransformer from specs.
// Defaults: remainder dropped, sequential execution, no weights,
// labeled output preserved.
func NewColumnTransformer(specs []TransformerSpec, opts ...ColumnTransformerOption) *ColumnTransformer {
	ct := &ColumnTransformer{
		state:         model.NewStateManager(),
		logger:        log.GetLoggerWithName("compose").With(log.ModelNameKey, "ColumnTransformer"),
		specs:         append([]TransformerSpec(nil), specs...),
		remainder:     Drop(),
		nJobs:         1,
		preserveFrame: true,
	}
	for _, opt := range opts {
		opt(ct)
	}
	return ct
}

// Fit resolves every spec's column selector against X and fits the
// Apply estimators on their column subsets.
func (ct *ColumnTransformer) Fit(X *dataframe.Frame) (err error) {
	defer pkerrors.Recover(&err, "ColumnTransformer.Fit")
	const op = "ColumnTransformer.Fit"

	if X == nil {
		return pkerrors.NewValueError(op, "input frame must not be nil")
	}

	seen := make(map[string]bool, len(ct.specs))
	claimed := make(map[string]bool)
	fitted := make([]fittedSpec, 0, len(ct.specs)+1)

	for _, spec := range ct.specs {
		if spec.Name == "" {
			return pkerrors.NewValidationError(op, "spec name must not be empty", spec.Action.String())
		}
		if spec.Name == remainderName {
			return pkerrors.NewValidationError(op, "spec name is reserved", spec.Name)
		}
		if seen[spec.Name] {
			return pkerrors.NewValidationError(op, "duplicate spec name", spec.Name)
		}
		seen[spec.Name] = true

		columns, err := spec.Columns.resolve(X)
		if err != nil {
			return pkerrors.Wrap(err, fmt.Sprintf("%s: spec %q", op, spec.Name))
		}
		for _, c := range columns {
			claimed[c] = true
		}

		if spec.Action.kind == actionApply {
			sub, err := X.Select(columns...)
			if err != nil {
				return err
			}
			if err := fitEstimator(spec.Action.estimator, sub); err != nil {
				return pkerrors.Wrap(err, fmt.Sprintf("%s: spec %q", op, spec.Name))
			}
		}

		fitted = append(fitted, fittedSpec{
			name:    spec.Name,
			action:  spec.Action,
			columns: columns,
			scalar:  spec.Columns.isSinglePosition(),
		})
	}

	// columns no spec claimed, in original order
	var rest []string
	for _, name := range X.Names() {
		if !claimed[name] {
			rest = append(rest, name)
		}
	}
	if len(rest) > 0 && !ct.remainder.IsDrop() {
		if ct.remainder.kind == actionApply {
			sub, err := X.Select(rest...)
			if err != nil {
				return err
			}
			if err := fitEstimator(ct.remainder.estimator, sub); err != nil {
				return pkerrors.Wrap(err, op+": remainder")
			}
		}
		fitted = append(fitted, fittedSpec{
			name:    remainderName,
			action:  ct.remainder,
			columns: rest,
		})
	}

	ct.fitted = fitted
	ct.state.SetFitted()
	return nil
}

// Transform applies every fitted spec to its column subset and stacks
// the validated outputs horizontally.
func (ct *ColumnTransformer) Transform(X *dataframe.Frame) (_ *dataframe.Frame, err error) {
	defer pkerrors.Recover(&err, "ColumnTransformer.Transform")
	const op = "ColumnTransformer.Transform"

	if !ct.state.IsFitted() {
		return nil, pkerrors.NewNotFittedError("ColumnTransformer", "Transform")
	}
	if X == nil {
		return nil, pkerrors.NewValueError(op, "input frame must not be nil")
	}

	ct.logger.Debug("column transform started",
		log.OperationKey, log.OperationTransform,
		log.RowsKey, X.NumRows(),
		log.ColumnsKey, X.NumCols(),
	)

	outputs := make([]interface{}, len(ct.fitted))
	errs := make([]error, len(ct.fitted))
	parallel.ParallelizeWithWorkers(len(ct.fitted), ct.nJobs, func(start, end int) {
		for i := start; i < end; i++ {
			outputs[i], errs[i] = applySpec(ct.fitted[i], X)
		}
	})
	for i, e := range errs {
		if e != nil {
			return nil, pkerrors.Wrap(e, fmt.Sprintf("%s: spec %q", op, ct.fitted[i].name))
		}
	}

	if err := ct.validateOutputs(outputs, X.NumRows()); err != nil {
		return nil, err
	}
	ct.applyWeights(outputs)

	return ct.hstack(outputs, X)
}

// FitTransform fits on X and transforms it in one step.
func (ct *ColumnTransformer) FitTransform(X *dataframe.Frame) (*dataframe.Frame, error) {
	if err := ct.Fit(X); err != nil {
		return nil, err
	}
	return ct.Transform(X)
}

// FittedSpecs returns the resolved (name, column names) pairs after
// Fit, including the implicit remainder spec when present.
func (ct *ColumnTransformer) FittedSpecs() map[string][]string {
	out := make(map[string][]string, len(ct.fitted))
	for _, f := range ct.fitted {
		out[f.name] = append([]string(nil), f.columns...)
	}
	return out
}

// GetParams returns the transformer's hyperparameters.
func (ct *ColumnTransformer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"remainder":      ct.remainder.String(),
		"n_jobs":         ct.nJobs,
		"weights":        ct.weights,
		"preserve_frame": ct.preserveFrame,
	}
}

// fitEstimator fits an Apply estimator on its column subset,
// dispatching on the supported method sets.
func fitEstimator(estimator interface{}, sub *dataframe.Frame) error {
	switch e := estimator.(type) {
	case model.FrameTransformer:
		return e.Fit(sub)
	case model.Transformer:
		m, err := sub.Matrix()
		if err != nil {
			return err
		}
		return e.Fit(m)
	default:
		return pkerrors.NewValidationError("ColumnTransformer",
			"estimator must implement model.FrameTransformer or model.Transformer",
			fmt.Sprintf("%T", estimator))
	}
}

// applySpec produces one stackable output per fitted spec: nil for
// Drop, the selected columns for Passthrough (a bare column for a
// scalar selection), or the estimator output for Apply.
func applySpec(f fittedSpec, X *dataframe.Frame) (interface{}, error) {
	switch f.action.kind {
	case actionDrop:
		return nil, nil

	case actionPassthrough:
		if f.scalar {
			return X.ColumnByName(f.columns[0])
		}
		return X.Select(f.columns...)

	default:
		sub, err := X.Select(f.columns...)
		if err != nil {
			return nil, err
		}
		switch e := f.action.estimator.(type) {
		case model.FrameTransformer:
			return e.Transform(sub)
		case model.Transformer:
			m, err := sub.Matrix()
			if err != nil {
				return nil, err
			}
			return e.Transform(m)
		default:
			return nil, pkerrors.NewValidationError("ColumnTransformer",
				"estimator must implement model.FrameTransformer or model.Transformer",
				fmt.Sprintf("%T", f.action.estimator))
		}
	}
}

// validateOutputs ensures every sub-result can be stacked: a tabular
// frame with named columns, a named scalar column, or a matrix, all
// with the expected row count.
func (ct *ColumnTransformer) validateOutputs(outputs []interface{}, rows int) error {
	const op = "ColumnTransformer.Transform"
	for i, out := range outputs {
		name := ct.fitted[i].name
		switch o := out.(type) {
		case nil:
			// dropped

		case *dataframe.Frame:
			if !o.IsTabular() {
				return pkerrors.NewOutputShapeError(name, "a frame with series cells")
			}
			for _, colName := range o.Names() {
				if colName == "" {
					return pkerrors.NewOutputShapeError(name, "an unnamed 1D column")
				}
			}
			if o.NumRows() != rows {
				return pkerrors.NewDimensionError(op, rows, o.NumRows(), 0)
			}

		case dataframe.Column:
			if o.IsNested() {
				return pkerrors.NewOutputShapeError(name, "a column with series cells")
			}
			if o.Name == "" {
				return pkerrors.NewOutputShapeError(name, "an unnamed 1D column")
			}
			if o.Len() != rows {
				return pkerrors.NewDimensionError(op, rows, o.Len(), 0)
			}

		case mat.Matrix:
			r, _ := o.Dims()
			if r != rows {
				return pkerrors.NewDimensionError(op, rows, r, 0)
			}

		default:
			return pkerrors.NewOutputShapeError(name, fmt.Sprintf("%T", out))
		}
	}
	return nil
}

// applyWeights multiplies each spec's output by its configured weight.
func (ct *ColumnTransformer) applyWeights(outputs []interface{}) {
	if len(ct.weights) == 0 {
		return
	}
	for i, out := range outputs {
		w, ok := ct.weights[ct.fitted[i].name]
		if !ok || out == nil {
			continue
		}
		switch o := out.(type) {
		case *dataframe.Frame:
			outputs[i] = scaleFrame(o, w)
		case dataframe.Column:
			scaled := o.Copy()
			for j := range scaled.Scalars {
				scaled.Scalars[j] *= w
			}
			outputs[i] = scaled
		case mat.Matrix:
			var scaled mat.Dense
			scaled.Scale(w, o)
			outputs[i] = &scaled
		}
	}
}

// hstack concatenates the sub-results horizontally. With PreserveFrame
// and at least one labeled result the output is a labeled tabular
// frame carrying X's row index; otherwise the results are stacked as a
// plain rectangular array wrapped in a frame with positional labels.
func (ct *ColumnTransformer) hstack(outputs []interface{}, X *dataframe.Frame) (*dataframe.Frame, error) {
	labeled := false
	if ct.preserveFrame {
		for _, out := range outputs {
			switch out.(type) {
			case *dataframe.Frame, dataframe.Column:
				labeled = true
			}
		}
	}

	if labeled {
		var cols []dataframe.Column
		positional := 0
		for _, out := range outputs {
			switch o := out.(type) {
			case nil:

			case *dataframe.Frame:
				for j := 0; j < o.NumCols(); j++ {
					c, err := o.Column(j)
					if err != nil {
						return nil, err
					}
					cols = append(cols, c)
				}

			case dataframe.Column:
				cols = append(cols, o.Copy())

			case mat.Matrix:
				wrapped, err := dataframe.FromMatrix(o, nil, X.Index())
				if err != nil {
					return nil, err
				}
				for j := 0; j < wrapped.NumCols(); j++ {
					c, err := wrapped.Column(j)
					if err != nil {
						return nil, err
					}
					c.Name = fmt.Sprintf("x%d", positional)
					positional++
					cols = append(cols, c)
				}
			}
		}
		if len(cols) == 0 {
			return nil, pkerrors.NewModelError("ColumnTransformer.Transform",
				"all columns were dropped", pkerrors.ErrEmptyData)
		}
		return dataframe.New(X.Index(), cols...)
	}

	// plain rectangular stacking
	var flat []dataframe.Column
	for _, out := range outputs {
		switch o := out.(type) {
		case nil:

		case *dataframe.Frame:
			for j := 0; j < o.NumCols(); j++ {
				c, err := o.Column(j)
				if err != nil {
					return nil, err
				}
				flat = append(flat, c)
			}

		case dataframe.Column:
			flat = append(flat, o.Copy())

		case mat.Matrix:
			r, c := o.Dims()
			for j := 0; j < c; j++ {
				values := make([]float64, r)
				for i := 0; i < r; i++ {
					values[i] = o.At(i, j)
				}
				flat = append(flat, dataframe.Column{Scalars: values})
			}
		}
	}
	if len(flat) == 0 {
		return nil, pkerrors.NewModelError("ColumnTransformer.Transform",
			"all columns were dropped", pkerrors.ErrEmptyData)
	}
	for i := range flat {
		flat[i].Name = fmt.Sprintf("x%d", i)
	}
	return dataframe.New(nil, flat...)
}

func scaleFrame(f *dataframe.Frame, w float64) *dataframe.Frame {
	cols := make([]dataframe.Column, f.NumCols())
	for j := 0; j < f.NumCols(); j++ {
		c, _ := f.Column(j)
		for i := range c.Scalars {
			c.Scalars[i] *= w
		}
		cols[j] = c
	}
	scaled, _ := dataframe.New(f.Index(), cols...)
	return scaled
}
