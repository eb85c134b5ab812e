package dataframe

import (
	"strconv"
	"strings"

	pkerrors "github.com/ezoic/panelkit/pkg/errors"
)

// nameSep separates the source column name from the time position in
// flattened column names: column "dim" of length 3 flattens to
// "dim__0", "dim__1", "dim__2". Columns are emitted in their original
// order with positions ascending. This naming scheme is part of the
// package contract; Detabularize relies on positional regrouping and
// FlattenedName/SplitFlattenedName expose the scheme to callers.
const nameSep = "__"

// FlattenedName returns the tabular column name for position t of the
// nested column name.
func FlattenedName(name string, t int) string {
	return name + nameSep + strconv.Itoa(t)
}

// SplitFlattenedName splits a flattened column name into its source
// column name and time position. ok is false when the name does not
// follow the flattening scheme.
func SplitFlattenedName(flat string) (name string, t int, ok bool) {
	i := strings.LastIndex(flat, nameSep)
	if i < 0 {
		return "", 0, false
	}
	t, err := strconv.Atoi(flat[i+len(nameSep):])
	if err != nil || t < 0 {
		return "", 0, false
	}
	return flat[:i], t, true
}

// Schema is the recorded metadata of a Tabularize pass: everything
// Detabularize needs to reconstruct the nested frame. It is produced
// by TabularizeSchema and passed explicitly to Detabularize, so the
// forward/inverse dependency is a value, not hidden transformer state.
type Schema struct {
	// Index holds the row labels of the source frame.
	Index []string

	// Columns holds the source column names in order.
	Columns []string

	// Lengths holds the per-column series length, aligned with Columns.
	Lengths []int
}

// NumFlat returns the total number of flattened columns the schema
// describes.
func (s *Schema) NumFlat() int {
	total := 0
	for _, l := range s.Lengths {
		total += l
	}
	return total
}

// TimeIndex returns the positional time index of a nested frame: the
// observation positions of the first column's cells. All rows of a
// column must share one length; heterogeneous lengths are rejected.
func TimeIndex(X *Frame) ([]int, error) {
	if err := ValidateNested(X, "dataframe.TimeIndex"); err != nil {
		return nil, err
	}
	lengths, err := columnLengths(X, "dataframe.TimeIndex")
	if err != nil {
		return nil, err
	}
	idx := make([]int, lengths[0])
	for t := range idx {
		idx[t] = t
	}
	return idx, nil
}

// columnLengths returns the uniform series length of each nested
// column, failing with ErrHeterogeneousLength when rows of one column
// disagree.
func columnLengths(X *Frame, op string) ([]int, error) {
	if X.NumRows() == 0 {
		return nil, pkerrors.NewModelError(op, "frame has no rows", pkerrors.ErrEmptyData)
	}
	lengths := make([]int, X.NumCols())
	for j, c := range X.columns {
		l := len(c.Cells[0])
		for i, cell := range c.Cells {
			if len(cell) != l {
				return nil, pkerrors.NewModelError(op,
					"column "+strconv.Quote(c.Name)+" row "+strconv.Itoa(i),
					pkerrors.ErrHeterogeneousLength)
			}
		}
		lengths[j] = l
	}
	return lengths, nil
}

// SchemaOf computes the Schema of a nested frame without flattening
// it, for transformers that fit on the metadata alone.
func SchemaOf(X *Frame) (*Schema, error) {
	const op = "dataframe.SchemaOf"
	if err := ValidateNested(X, op); err != nil {
		return nil, err
	}
	lengths, err := columnLengths(X, op)
	if err != nil {
		return nil, err
	}
	return &Schema{
		Index:   X.Index(),
		Columns: X.Names(),
		Lengths: lengths,
	}, nil
}

// Tabularize flattens a nested frame into a tabular frame: each
// nested column of uniform length L becomes L scalar columns named
// with the flattening scheme, preserving the row index.
func Tabularize(X *Frame) (*Frame, error) {
	Xt, _, err := TabularizeSchema(X)
	return Xt, err
}

// TabularizeSchema flattens a nested frame and returns the Schema
// required to invert the operation.
func TabularizeSchema(X *Frame) (*Frame, *Schema, error) {
	const op = "dataframe.Tabularize"
	if err := ValidateNested(X, op); err != nil {
		return nil, nil, err
	}
	lengths, err := columnLengths(X, op)
	if err != nil {
		return nil, nil, err
	}

	rows := X.NumRows()
	flat := make([]Column, 0, total(lengths))
	for j, c := range X.columns {
		for t := 0; t < lengths[j]; t++ {
			values := make([]float64, rows)
			for i := 0; i < rows; i++ {
				values[i] = c.Cells[i][t]
			}
			flat = append(flat, Column{Name: FlattenedName(c.Name, t), Scalars: values})
		}
	}

	Xt, err := New(X.index, flat...)
	if err != nil {
		return nil, nil, err
	}
	schema := &Schema{
		Index:   X.Index(),
		Columns: X.Names(),
		Lengths: lengths,
	}
	return Xt, schema, nil
}

// Detabularize regroups a tabular frame into a nested frame.
//
// With a schema, consecutive runs of the schema's per-column lengths
// are folded back into series cells under the original column names,
// and the schema's row labels become the result index. With a nil
// schema every primitive column contributes one observation, in
// column order, to a single nested column per row.
func Detabularize(X *Frame, schema *Schema) (*Frame, error) {
	const op = "dataframe.Detabularize"
	if err := ValidateTabular(X, op); err != nil {
		return nil, err
	}

	rows, cols := X.Dims()

	if schema == nil {
		cells := make([]Series, rows)
		for i := 0; i < rows; i++ {
			s := make(Series, cols)
			for j := 0; j < cols; j++ {
				s[j] = X.columns[j].Scalars[i]
			}
			cells[i] = s
		}
		return New(X.index, Column{Name: "0", Cells: cells})
	}

	if schema.NumFlat() != cols {
		return nil, pkerrors.NewDimensionError(op, schema.NumFlat(), cols, 1)
	}
	if len(schema.Index) != rows {
		return nil, pkerrors.NewDimensionError(op, len(schema.Index), rows, 0)
	}

	nested := make([]Column, len(schema.Columns))
	offset := 0
	for j, name := range schema.Columns {
		l := schema.Lengths[j]
		cells := make([]Series, rows)
		for i := 0; i < rows; i++ {
			s := make(Series, l)
			for t := 0; t < l; t++ {
				s[t] = X.columns[offset+t].Scalars[i]
			}
			cells[i] = s
		}
		nested[j] = Column{Name: name, Cells: cells}
		offset += l
	}
	return New(schema.Index, nested...)
}

// ConcatNestedColumns assembles per-column, per-row transform results
// into a nested frame. cols holds one slice of row results per output
// column; rows may differ in series length. Nil names produce
// positional names, a nil index produces default labels.
func ConcatNestedColumns(cols [][]Series, names, index []string) (*Frame, error) {
	const op = "dataframe.ConcatNestedColumns"
	if len(cols) == 0 {
		return nil, pkerrors.NewModelError(op, "no columns", pkerrors.ErrEmptyData)
	}
	rows := len(cols[0])
	for _, c := range cols {
		if len(c) != rows {
			return nil, pkerrors.NewDimensionError(op, rows, len(c), 0)
		}
	}
	if names == nil {
		names = positionalNames(len(cols))
	}
	if len(names) != len(cols) {
		return nil, pkerrors.NewDimensionError(op, len(cols), len(names), 1)
	}

	out := make([]Column, len(cols))
	for j, c := range cols {
		out[j] = NewSeriesColumn(names[j], c)
	}
	return New(index, out...)
}

func total(lengths []int) int {
	t := 0
	for _, l := range lengths {
		t += l
	}
	return t
}
