package compose_test

import (
	"errors"
	"math"
	"testing"

	"github.com/ezoic/panelkit/compose"
	"github.com/ezoic/panelkit/dataframe"
	pkerrors "github.com/ezoic/panelkit/pkg/errors"
	"github.com/ezoic/panelkit/preprocessing"
)

const epsilon = 1e-10 // Tolerance for floating-point comparisons

func nestedFixture(t *testing.T) *dataframe.Frame {
	t.Helper()
	X, err := dataframe.New(
		[]string{"s1", "s2"},
		dataframe.NewSeriesColumn("a", []dataframe.Series{{1, 2, 3}, {4, 5, 6}}),
		dataframe.NewSeriesColumn("b", []dataframe.Series{{7, 8}, {9, 10}}),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return X
}

func TestRowwiseTransformer_NotFitted(t *testing.T) {
	rt := compose.NewRowwiseTransformer(preprocessing.NewStandardScalerDefault())

	_, err := rt.Transform(nestedFixture(t))
	var notFitted *pkerrors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Fatalf("expected NotFittedError, got %v", err)
	}
	if notFitted.ModelName != "RowwiseTransformer" {
		t.Errorf("unexpected model name %q", notFitted.ModelName)
	}
}

func TestRowwiseTransformer_Identity(t *testing.T) {
	// scaler with centering and scaling disabled leaves values alone
	rt := compose.NewRowwiseTransformer(preprocessing.NewStandardScaler(false, false))

	X := nestedFixture(t)
	Xt, err := rt.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	if r, c := Xt.Dims(); r != 2 || c != 2 {
		t.Fatalf("expected 2x2 frame, got %dx%d", r, c)
	}
	if Xt.Names()[0] != "a" || Xt.Index()[1] != "s2" {
		t.Error("transform lost labels")
	}

	cell, err := Xt.Cell(0, 0)
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	want := dataframe.Series{1, 2, 3}
	if len(cell) != len(want) {
		t.Fatalf("expected length %d, got %d", len(want), len(cell))
	}
	for k := range want {
		if math.Abs(cell[k]-want[k]) > epsilon {
			t.Errorf("cell[%d]: expected %f, got %f", k, want[k], cell[k])
		}
	}
}

func TestRowwiseTransformer_PerCellScaling(t *testing.T) {
	// full standardization happens per cell: every series is centered
	// on its own mean
	rt := compose.NewRowwiseTransformer(preprocessing.NewStandardScalerDefault())

	Xt, err := rt.FitTransform(nestedFixture(t))
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	for i := 0; i < Xt.NumRows(); i++ {
		for j := 0; j < Xt.NumCols(); j++ {
			cell, _ := Xt.Cell(i, j)
			sum := 0.0
			for _, v := range cell {
				sum += v
			}
			if math.Abs(sum) > epsilon {
				t.Errorf("cell (%d,%d) not centered: mean %f", i, j, sum/float64(len(cell)))
			}
		}
	}
}

func TestRowwiseTransformer_ScalarCollapse(t *testing.T) {
	// a single-statistic summarizer reduces every series to one value,
	// so the result collapses to a primitive-valued frame
	rt := compose.NewRowwiseTransformer(preprocessing.MustSummarizer(preprocessing.StatMean))

	Xt, err := rt.FitTransform(nestedFixture(t))
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	if !Xt.IsTabular() {
		t.Fatal("expected a tabular frame after scalar collapse")
	}
	if r, c := Xt.Dims(); r != 2 || c != 2 {
		t.Fatalf("expected 2x2 frame, got %dx%d", r, c)
	}

	names := Xt.Names()
	if names[0] != "a__0" || names[1] != "b__0" {
		t.Errorf("unexpected collapsed names %v", names)
	}
	if Xt.Index()[0] != "s1" {
		t.Error("collapse lost the row index")
	}

	// mean of [4 5 6] is 5
	v, _ := Xt.At(1, 0)
	if math.Abs(v-5) > epsilon {
		t.Errorf("expected mean 5, got %f", v)
	}
	// mean of [7 8] is 7.5
	v, _ = Xt.At(0, 1)
	if math.Abs(v-7.5) > epsilon {
		t.Errorf("expected mean 7.5, got %f", v)
	}
}

func TestRowwiseTransformer_MultiStatStaysNested(t *testing.T) {
	rt := compose.NewRowwiseTransformer(preprocessing.MustSummarizer())

	Xt, err := rt.FitTransform(nestedFixture(t))
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}
	if !Xt.IsNested() {
		t.Fatal("expected a nested frame for multi-statistic output")
	}
	cell, _ := Xt.Cell(0, 0)
	if len(cell) != 4 {
		t.Errorf("expected 4 statistics per cell, got %d", len(cell))
	}
}

func TestRowwiseTransformer_InvalidInput(t *testing.T) {
	rt := compose.NewRowwiseTransformer(preprocessing.NewStandardScalerDefault())

	if err := rt.Fit(nil); err == nil {
		t.Error("expected error for nil input")
	}

	tab, _ := dataframe.New(nil, dataframe.NewScalarColumn("a", []float64{1, 2}))
	if err := rt.Fit(tab); err == nil {
		t.Error("expected error for tabular input")
	}

	missing := compose.NewRowwiseTransformer(nil)
	if err := missing.Fit(nestedFixture(t)); err == nil {
		t.Error("expected error for nil wrapped transformer")
	}
}

func TestRowwiseTransformer_GetParams(t *testing.T) {
	scaler := preprocessing.NewStandardScalerDefault()
	rt := compose.NewRowwiseTransformer(scaler)

	params := rt.GetParams()
	if params["transformer"] != scaler {
		t.Error("expected wrapped transformer in params")
	}
}
