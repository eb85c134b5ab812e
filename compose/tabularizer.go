package compose

import (
	"fmt"

	"github.com/ezoic/panelkit/core/model"
	"github.com/ezoic/panelkit/dataframe"
	pkerrors "github.com/ezoic/panelkit/pkg/errors"
)

// Tabularizer turns nested panel frames into tabular frames and back.
// Transform flattens each series cell into one primitive column per
// observation position, recording the schema (row index, column
// names, per-column lengths) needed by InverseTransform to regroup
// the primitives into series cells.
//
// The recorded schema is exposed through Schema so callers can also
// drive dataframe.Detabularize directly with an explicit value.
type Tabularizer struct {
	state *model.StateManager

	// CheckInput gates input validation. When false, inputs are
	// assumed valid and no shape checks run.
	CheckInput bool

	schema *dataframe.Schema
}

// Tabulariser is an alternate spelling of Tabularizer.
type Tabulariser = Tabularizer

// NewTabularizer creates a Tabularizer with input checking enabled.
func NewTabularizer() *Tabularizer {
	return &Tabularizer{
		state:      model.NewStateManager(),
		CheckInput: true,
	}
}

// Fit records the schema of X without producing the flattened frame.
func (t *Tabularizer) Fit(X *dataframe.Frame) (err error) {
	defer pkerrors.Recover(&err, "Tabularizer.Fit")

	schema, err := dataframe.SchemaOf(X)
	if err != nil {
		return err
	}
	t.schema = schema
	t.state.SetFitted()
	return nil
}

// Transform flattens the nested frame X into a tabular frame,
// recording the schema for InverseTransform. Transform doubles as the
// fitting step: a prior Fit call is not required.
func (t *Tabularizer) Transform(X *dataframe.Frame) (_ *dataframe.Frame, err error) {
	defer pkerrors.Recover(&err, "Tabularizer.Transform")

	if t.CheckInput {
		if err := dataframe.ValidateNested(X, "Tabularizer.Transform"); err != nil {
			return nil, err
		}
	}

	Xt, schema, err := dataframe.TabularizeSchema(X)
	if err != nil {
		return nil, err
	}
	t.schema = schema
	t.state.SetFitted()
	return Xt, nil
}

// FitTransform is equivalent to Transform, which already records the
// fitted schema.
func (t *Tabularizer) FitTransform(X *dataframe.Frame) (*dataframe.Frame, error) {
	return t.Transform(X)
}

// InverseTransform regroups a tabular frame back into the nested
// shape recorded by the last Transform (or Fit) call.
func (t *Tabularizer) InverseTransform(X *dataframe.Frame) (_ *dataframe.Frame, err error) {
	defer pkerrors.Recover(&err, "Tabularizer.InverseTransform")

	if t.schema == nil {
		return nil, pkerrors.NewNotFittedError("Tabularizer", "InverseTransform")
	}
	if t.CheckInput {
		if err := dataframe.ValidateTabular(X, "Tabularizer.InverseTransform"); err != nil {
			return nil, err
		}
	}
	return dataframe.Detabularize(X, t.schema)
}

// Schema returns the schema recorded by the last Transform or Fit
// call, or nil before fitting.
func (t *Tabularizer) Schema() *dataframe.Schema {
	return t.schema
}

// GetParams returns the transformer's hyperparameters.
func (t *Tabularizer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"check_input": t.CheckInput,
	}
}

// String returns a scikit-learn style representation.
func (t *Tabularizer) String() string {
	return fmt.Sprintf("Tabularizer(check_input=%t)", t.CheckInput)
}
