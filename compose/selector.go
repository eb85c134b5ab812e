package compose

import (
	"github.com/ezoic/panelkit/dataframe"
	pkerrors "github.com/ezoic/panelkit/pkg/errors"
)

type selectorKind int

const (
	selectorNone selectorKind = iota
	selectorNames
	selectorPositions
	selectorMask
	selectorFunc
)

// ColumnSelector addresses a subset of a frame's columns. Construct
// one with ByName, ByIndex, ByMask or ByFunc; the zero value selects
// nothing and fails resolution.
type ColumnSelector struct {
	kind      selectorKind
	names     []string
	positions []int
	mask      []bool
	fn        func(*dataframe.Frame) ([]string, error)
}

// ByName selects columns by name, in the given order.
func ByName(names ...string) ColumnSelector {
	return ColumnSelector{kind: selectorNames, names: append([]string(nil), names...)}
}

// ByIndex selects columns by position, in the given order.
func ByIndex(positions ...int) ColumnSelector {
	return ColumnSelector{kind: selectorPositions, positions: append([]int(nil), positions...)}
}

// ByMask selects the columns whose mask entry is true. The mask length
// must equal the frame's column count.
func ByMask(mask ...bool) ColumnSelector {
	return ColumnSelector{kind: selectorMask, mask: append([]bool(nil), mask...)}
}

// ByFunc selects columns through a callback receiving the input frame
// and returning the selected column names.
func ByFunc(fn func(*dataframe.Frame) ([]string, error)) ColumnSelector {
	return ColumnSelector{kind: selectorFunc, fn: fn}
}

// resolve returns the selected column names against X, checking that
// every selected column exists.
func (s ColumnSelector) resolve(X *dataframe.Frame) ([]string, error) {
	const op = "ColumnSelector"
	switch s.kind {
	case selectorNames:
		for _, name := range s.names {
			if _, err := X.ColumnByName(name); err != nil {
				return nil, err
			}
		}
		return append([]string(nil), s.names...), nil

	case selectorPositions:
		all := X.Names()
		names := make([]string, 0, len(s.positions))
		for _, p := range s.positions {
			if p < 0 || p >= len(all) {
				return nil, pkerrors.NewDimensionError(op, len(all), p, 1)
			}
			names = append(names, all[p])
		}
		return names, nil

	case selectorMask:
		all := X.Names()
		if len(s.mask) != len(all) {
			return nil, pkerrors.NewDimensionError(op, len(all), len(s.mask), 1)
		}
		names := make([]string, 0, len(all))
		for i, keep := range s.mask {
			if keep {
				names = append(names, all[i])
			}
		}
		return names, nil

	case selectorFunc:
		names, err := s.fn(X)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if _, err := X.ColumnByName(name); err != nil {
				return nil, err
			}
		}
		return names, nil

	default:
		return nil, pkerrors.NewValueError(op, "selector is empty; use ByName, ByIndex, ByMask or ByFunc")
	}
}

// isSinglePosition reports whether the selector names exactly one
// column explicitly (a scalar selection). A scalar selection passes a
// bare column, not a one-column frame, to downstream stacking.
func (s ColumnSelector) isSinglePosition() bool {
	switch s.kind {
	case selectorNames:
		return len(s.names) == 1
	case selectorPositions:
		return len(s.positions) == 1
	default:
		return false
	}
}
