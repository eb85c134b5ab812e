// Package pipeline chains frame transformers into a single composite
// transformer, mirroring the scikit-learn Pipeline API for the subset
// that applies to pure transformation chains.
package pipeline

import (
	"fmt"

	"github.com/ezoic/panelkit/core/model"
	"github.com/ezoic/panelkit/dataframe"
	pkerrors "github.com/ezoic/panelkit/pkg/errors"
	"github.com/ezoic/panelkit/pkg/log"
)

// Step is a single named stage in the pipeline.
type Step struct {
	Name        string
	Transformer model.FrameTransformer
}

// Pipeline applies its steps in order: Fit fits and transforms each
// step on the running result, Transform replays the fitted chain, and
// InverseTransform walks the chain backwards through steps that
// support inversion.
type Pipeline struct {
	state  *model.StateManager
	logger log.Logger

	steps      []Step
	namedSteps map[string]model.FrameTransformer
}

// New creates a Pipeline from steps.
func New(steps ...Step) *Pipeline {
	named := make(map[string]model.FrameTransformer, len(steps))
	for _, step := range steps {
		named[step.Name] = step.Transformer
	}
	return &Pipeline{
		state:      model.NewStateManager(),
		logger:     log.GetLoggerWithName("pipeline"),
		steps:      steps,
		namedSteps: named,
	}
}

// Make creates a Pipeline with generated step names, the way
// sklearn.pipeline.make_pipeline does.
func Make(transformers ...model.FrameTransformer) *Pipeline {
	steps := make([]Step, len(transformers))
	for i, t := range transformers {
		steps[i] = Step{Name: fmt.Sprintf("step%d", i+1), Transformer: t}
	}
	return New(steps...)
}

// Fit fits every step in order, transforming the running frame
// between steps.
func (p *Pipeline) Fit(X *dataframe.Frame) error {
	if len(p.steps) == 0 {
		return pkerrors.NewValidationError("Pipeline.Fit", "pipeline has no steps", "")
	}

	Xt := X
	for _, step := range p.steps {
		if step.Transformer == nil {
			return pkerrors.NewValidationError("Pipeline.Fit", "step has no transformer", step.Name)
		}
		if err := step.Transformer.Fit(Xt); err != nil {
			return pkerrors.Wrap(err, fmt.Sprintf("failed to fit step '%s'", step.Name))
		}
		var err error
		Xt, err = step.Transformer.Transform(Xt)
		if err != nil {
			return pkerrors.Wrap(err, fmt.Sprintf("failed to transform at step '%s'", step.Name))
		}
	}

	p.state.SetFitted()
	return nil
}

// Transform applies the fitted chain to X.
func (p *Pipeline) Transform(X *dataframe.Frame) (*dataframe.Frame, error) {
	if !p.state.IsFitted() {
		return nil, pkerrors.NewNotFittedError("Pipeline", "Transform")
	}

	Xt := X
	var err error
	for _, step := range p.steps {
		Xt, err = step.Transformer.Transform(Xt)
		if err != nil {
			return nil, pkerrors.Wrap(err, fmt.Sprintf("failed to transform at step '%s'", step.Name))
		}
	}
	return Xt, nil
}

// FitTransform fits the pipeline and returns the transformed frame.
func (p *Pipeline) FitTransform(X *dataframe.Frame) (*dataframe.Frame, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// InverseTransform applies the steps' inverse transformations in
// reverse order. Every step must implement
// model.InvertibleFrameTransformer.
func (p *Pipeline) InverseTransform(X *dataframe.Frame) (*dataframe.Frame, error) {
	if !p.state.IsFitted() {
		return nil, pkerrors.NewNotFittedError("Pipeline", "InverseTransform")
	}

	Xt := X
	for i := len(p.steps) - 1; i >= 0; i-- {
		step := p.steps[i]
		inv, ok := step.Transformer.(model.InvertibleFrameTransformer)
		if !ok {
			return nil, pkerrors.NewValidationError("Pipeline.InverseTransform",
				"all steps must support InverseTransform", step.Name)
		}
		var err error
		Xt, err = inv.InverseTransform(Xt)
		if err != nil {
			return nil, pkerrors.Wrap(err, fmt.Sprintf("failed to inverse transform at step '%s'", step.Name))
		}
	}
	return Xt, nil
}

// NamedSteps returns the steps keyed by name.
func (p *Pipeline) NamedSteps() map[string]model.FrameTransformer {
	out := make(map[string]model.FrameTransformer, len(p.namedSteps))
	for k, v := range p.namedSteps {
		out[k] = v
	}
	return out
}

// Steps returns a copy of the step list.
func (p *Pipeline) Steps() []Step {
	steps := make([]Step, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// GetParams returns the pipeline's parameters, including step
// parameters prefixed with the step name.
func (p *Pipeline) GetParams() map[string]interface{} {
	params := make(map[string]interface{})
	params["steps"] = p.Steps()

	for _, step := range p.steps {
		if getter, ok := step.Transformer.(interface {
			GetParams() map[string]interface{}
		}); ok {
			for key, value := range getter.GetParams() {
				params[fmt.Sprintf("%s__%s", step.Name, key)] = value
			}
		}
	}
	return params
}
