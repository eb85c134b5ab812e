// Package dataframe provides the labeled table types used throughout
// panelkit.
//
// A Frame is a two-dimensional labeled table. Each column holds either
// one primitive value per row (a scalar column) or one whole ordered
// sequence per row (a nested column, the panel/time-series case). A
// frame whose columns are all nested is a nested frame; a frame whose
// columns are all scalar is a tabular frame. The conversion utilities
// in convert.go move between the two shapes.
//
// Frames are immutable from the caller's point of view: constructors
// copy their inputs and accessors return copies, so a fitted
// transformer can hold frame metadata without aliasing caller data.
package dataframe

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	pkerrors "github.com/ezoic/panelkit/pkg/errors"
)

// Series is one cell's ordered sequence of observations.
type Series []float64

// Copy returns an independent copy of the series.
func (s Series) Copy() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Column is a named frame column. Exactly one of Scalars or Cells is
// set: Scalars for a tabular column (one primitive per row), Cells for
// a nested column (one series per row).
type Column struct {
	Name    string
	Scalars []float64
	Cells   []Series
}

// NewScalarColumn creates a tabular column from one primitive per row.
func NewScalarColumn(name string, values []float64) Column {
	out := make([]float64, len(values))
	copy(out, values)
	return Column{Name: name, Scalars: out}
}

// NewSeriesColumn creates a nested column from one series per row.
func NewSeriesColumn(name string, cells []Series) Column {
	out := make([]Series, len(cells))
	for i, c := range cells {
		out[i] = c.Copy()
	}
	return Column{Name: name, Cells: out}
}

// IsNested reports whether the column holds series cells.
func (c Column) IsNested() bool {
	return c.Cells != nil
}

// Len returns the number of rows in the column.
func (c Column) Len() int {
	if c.IsNested() {
		return len(c.Cells)
	}
	return len(c.Scalars)
}

// Copy returns an independent copy of the column.
func (c Column) Copy() Column {
	if c.IsNested() {
		return NewSeriesColumn(c.Name, c.Cells)
	}
	return NewScalarColumn(c.Name, c.Scalars)
}

// Frame is a two-dimensional labeled table: a row index plus a list of
// named columns, each either scalar or nested.
type Frame struct {
	index   []string
	columns []Column
}

// New creates a frame from a row index and columns. A nil index gets
// default positional labels. Every column must have exactly one of
// Scalars or Cells set and all columns must share the index length.
func New(index []string, columns ...Column) (*Frame, error) {
	if len(columns) == 0 {
		return nil, pkerrors.NewModelError("dataframe.New", "frame needs at least one column", pkerrors.ErrEmptyData)
	}

	n := columns[0].Len()
	if index == nil {
		index = DefaultIndex(n)
	}
	if len(index) != n {
		return nil, pkerrors.NewDimensionError("dataframe.New", n, len(index), 0)
	}

	cols := make([]Column, len(columns))
	for i, c := range columns {
		if (c.Scalars == nil) == (c.Cells == nil) {
			return nil, pkerrors.NewValueError("dataframe.New",
				"column "+strconv.Itoa(i)+" must set exactly one of Scalars or Cells")
		}
		if c.Len() != n {
			return nil, pkerrors.NewDimensionError("dataframe.New", n, c.Len(), 0)
		}
		cols[i] = c.Copy()
	}

	idx := make([]string, n)
	copy(idx, index)

	return &Frame{index: idx, columns: cols}, nil
}

// FromMatrix wraps a matrix as a tabular frame. Nil names produce
// positional names x0, x1, ...; a nil index produces default labels.
func FromMatrix(m mat.Matrix, names, index []string) (*Frame, error) {
	if m == nil {
		return nil, pkerrors.NewValueError("dataframe.FromMatrix", "matrix must not be nil")
	}
	r, c := m.Dims()
	if c == 0 {
		return nil, pkerrors.NewModelError("dataframe.FromMatrix", "empty matrix", pkerrors.ErrEmptyData)
	}
	if names == nil {
		names = positionalNames(c)
	}
	if len(names) != c {
		return nil, pkerrors.NewDimensionError("dataframe.FromMatrix", c, len(names), 1)
	}

	cols := make([]Column, c)
	for j := 0; j < c; j++ {
		values := make([]float64, r)
		for i := 0; i < r; i++ {
			values[i] = m.At(i, j)
		}
		cols[j] = Column{Name: names[j], Scalars: values}
	}
	return New(index, cols...)
}

// DefaultIndex returns positional row labels "0".."n-1".
func DefaultIndex(n int) []string {
	idx := make([]string, n)
	for i := range idx {
		idx[i] = strconv.Itoa(i)
	}
	return idx
}

func positionalNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = "x" + strconv.Itoa(i)
	}
	return names
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	return len(f.index)
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int {
	return len(f.columns)
}

// Dims returns (rows, columns).
func (f *Frame) Dims() (int, int) {
	return f.NumRows(), f.NumCols()
}

// Index returns a copy of the row labels.
func (f *Frame) Index() []string {
	idx := make([]string, len(f.index))
	copy(idx, f.index)
	return idx
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns a copy of the i-th column.
func (f *Frame) Column(i int) (Column, error) {
	if i < 0 || i >= len(f.columns) {
		return Column{}, pkerrors.NewDimensionError("Frame.Column", len(f.columns), i, 1)
	}
	return f.columns[i].Copy(), nil
}

// ColumnByName returns a copy of the named column.
func (f *Frame) ColumnByName(name string) (Column, error) {
	for _, c := range f.columns {
		if c.Name == name {
			return c.Copy(), nil
		}
	}
	return Column{}, pkerrors.NewValueError("Frame.ColumnByName", "no column named "+strconv.Quote(name))
}

// IsNested reports whether every column holds series cells.
func (f *Frame) IsNested() bool {
	for _, c := range f.columns {
		if !c.IsNested() {
			return false
		}
	}
	return len(f.columns) > 0
}

// IsTabular reports whether every column holds primitive cells.
func (f *Frame) IsTabular() bool {
	for _, c := range f.columns {
		if c.IsNested() {
			return false
		}
	}
	return len(f.columns) > 0
}

// Select returns a new frame restricted to the named columns, in the
// requested order, sharing this frame's row index.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, err := f.ColumnByName(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return New(f.index, cols...)
}

// SelectAt returns a new frame restricted to the columns at the given
// positions, in the requested order.
func (f *Frame) SelectAt(positions ...int) (*Frame, error) {
	cols := make([]Column, 0, len(positions))
	for _, p := range positions {
		c, err := f.Column(p)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return New(f.index, cols...)
}

// Matrix returns the frame's values as a dense matrix. Only tabular
// frames have a matrix view.
func (f *Frame) Matrix() (*mat.Dense, error) {
	if !f.IsTabular() {
		return nil, pkerrors.NewValueError("Frame.Matrix", "frame has nested columns; tabularize first")
	}
	r, c := f.Dims()
	out := mat.NewDense(r, c, nil)
	for j, col := range f.columns {
		for i := 0; i < r; i++ {
			out.Set(i, j, col.Scalars[i])
		}
	}
	return out, nil
}

// At returns the scalar value at (row, col) of a tabular frame.
func (f *Frame) At(row, col int) (float64, error) {
	if col < 0 || col >= len(f.columns) {
		return 0, pkerrors.NewDimensionError("Frame.At", len(f.columns), col, 1)
	}
	c := f.columns[col]
	if c.IsNested() {
		return 0, pkerrors.NewValueError("Frame.At", "column holds series cells; use Cell")
	}
	if row < 0 || row >= len(c.Scalars) {
		return 0, pkerrors.NewDimensionError("Frame.At", len(c.Scalars), row, 0)
	}
	return c.Scalars[row], nil
}

// Cell returns a copy of the series at (row, col) of a nested frame.
func (f *Frame) Cell(row, col int) (Series, error) {
	if col < 0 || col >= len(f.columns) {
		return nil, pkerrors.NewDimensionError("Frame.Cell", len(f.columns), col, 1)
	}
	c := f.columns[col]
	if !c.IsNested() {
		return nil, pkerrors.NewValueError("Frame.Cell", "column holds primitive cells; use At")
	}
	if row < 0 || row >= len(c.Cells) {
		return nil, pkerrors.NewDimensionError("Frame.Cell", len(c.Cells), row, 0)
	}
	return c.Cells[row].Copy(), nil
}

// ValidateNested checks that X is a non-empty frame whose columns all
// hold series cells, reporting failures against op.
func ValidateNested(X *Frame, op string) error {
	if X == nil {
		return pkerrors.NewValueError(op, "input frame must not be nil")
	}
	if X.NumCols() == 0 {
		return pkerrors.NewModelError(op, "empty frame", pkerrors.ErrEmptyData)
	}
	for _, c := range X.columns {
		if !c.IsNested() {
			return pkerrors.NewValueError(op, "column "+strconv.Quote(c.Name)+" does not hold series cells")
		}
	}
	return nil
}

// ValidateTabular checks that X is a non-empty frame whose columns all
// hold primitive cells, reporting failures against op.
func ValidateTabular(X *Frame, op string) error {
	if X == nil {
		return pkerrors.NewValueError(op, "input frame must not be nil")
	}
	if X.NumCols() == 0 {
		return pkerrors.NewModelError(op, "empty frame", pkerrors.ErrEmptyData)
	}
	for _, c := range X.columns {
		if c.IsNested() {
			return pkerrors.NewValueError(op, "column "+strconv.Quote(c.Name)+" holds series cells")
		}
	}
	return nil
}
