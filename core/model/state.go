// Package model provides the core estimator abstractions shared by
// panelkit transformers: fitted-state tracking and the transformer
// contracts for matrix data and for labeled frames.
//
// All transformers in panelkit compose a StateManager rather than
// embedding a base struct, and check it at the top of every operation
// that requires prior fitting:
//
//	type MyTransformer struct {
//		state *model.StateManager
//	}
//
//	func (t *MyTransformer) Transform(X *dataframe.Frame) (*dataframe.Frame, error) {
//		if !t.state.IsFitted() {
//			return nil, errors.NewNotFittedError("MyTransformer", "Transform")
//		}
//		...
//	}
package model

// StateManager tracks whether an estimator has been fitted. Callers
// are expected to use one transformer instance sequentially, so no
// locking is applied.
type StateManager struct {
	fitted bool
}

// NewStateManager creates a StateManager in the not-fitted state.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// SetFitted marks the estimator as fitted. Called by estimator
// implementations after a successful Fit.
func (s *StateManager) SetFitted() {
	s.fitted = true
}

// IsFitted reports whether the estimator has been fitted.
func (s *StateManager) IsFitted() bool {
	return s.fitted
}

// Reset returns the estimator to the not-fitted state.
func (s *StateManager) Reset() {
	s.fitted = false
}
