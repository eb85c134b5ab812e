package compose

type actionKind int

const (
	actionDrop actionKind = iota
	actionPassthrough
	actionApply
)

// Action says what happens to a column subset: drop it, pass it
// through untransformed, or apply an estimator to it. It replaces the
// "drop"/"passthrough" sentinel strings of other frameworks with a
// closed set of variants.
type Action struct {
	kind      actionKind
	estimator interface{}
}

// Drop discards the selected columns.
func Drop() Action {
	return Action{kind: actionDrop}
}

// Passthrough forwards the selected columns untransformed.
func Passthrough() Action {
	return Action{kind: actionPassthrough}
}

// Apply runs the estimator on the selected columns. The estimator must
// implement model.FrameTransformer or model.Transformer.
func Apply(estimator interface{}) Action {
	return Action{kind: actionApply, estimator: estimator}
}

// IsDrop reports whether the action discards its columns.
func (a Action) IsDrop() bool {
	return a.kind == actionDrop
}

// IsPassthrough reports whether the action forwards its columns.
func (a Action) IsPassthrough() bool {
	return a.kind == actionPassthrough
}

// Estimator returns the wrapped estimator, or nil for Drop and
// Passthrough.
func (a Action) Estimator() interface{} {
	return a.estimator
}

func (a Action) String() string {
	switch a.kind {
	case actionDrop:
		return "drop"
	case actionPassthrough:
		return "passthrough"
	default:
		return "estimator"
	}
}
