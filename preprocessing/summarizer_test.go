package preprocessing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	pkerrors "github.com/ezoic/panelkit/pkg/errors"
	"github.com/ezoic/panelkit/preprocessing"
)

func TestSummarizer_Defaults(t *testing.T) {
	s, err := preprocessing.NewSummarizer()
	require.NoError(t, err)
	assert.Equal(t, []string{"mean", "std", "min", "max"}, s.Stats)
}

func TestSummarizer_UnknownStat(t *testing.T) {
	_, err := preprocessing.NewSummarizer("mode")
	require.Error(t, err)

	var valErr *pkerrors.ValueError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "mode")

	assert.Panics(t, func() { preprocessing.MustSummarizer("mode") })
}

func TestSummarizer_NotFitted(t *testing.T) {
	s := preprocessing.MustSummarizer(preprocessing.StatMean)
	_, err := s.Transform(mat.NewDense(2, 1, []float64{1, 2}))

	var notFitted *pkerrors.NotFittedError
	require.ErrorAs(t, err, &notFitted)
	assert.Equal(t, "Summarizer", notFitted.ModelName)
}

func TestSummarizer_Transform(t *testing.T) {
	// one series presented as an L×1 matrix
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 10})

	s := preprocessing.MustSummarizer(
		preprocessing.StatMean,
		preprocessing.StatMin,
		preprocessing.StatMax,
		preprocessing.StatMedian,
	)
	Xt, err := s.FitTransform(X)
	require.NoError(t, err)

	r, c := Xt.Dims()
	require.Equal(t, 1, r)
	require.Equal(t, 4, c)

	assert.InDelta(t, 4.0, Xt.At(0, 0), 1e-10, "mean")
	assert.InDelta(t, 1.0, Xt.At(0, 1), 1e-10, "min")
	assert.InDelta(t, 10.0, Xt.At(0, 2), 1e-10, "max")
	assert.InDelta(t, 3.0, Xt.At(0, 3), 1e-10, "median")
}

func TestSummarizer_MultiColumn(t *testing.T) {
	// statistics are grouped by input column
	X := mat.NewDense(2, 2, []float64{
		1, 10,
		3, 30,
	})

	s := preprocessing.MustSummarizer(preprocessing.StatMin, preprocessing.StatMax)
	Xt, err := s.FitTransform(X)
	require.NoError(t, err)

	_, c := Xt.Dims()
	require.Equal(t, 4, c)
	assert.Equal(t, 1.0, Xt.At(0, 0))  // column 0 min
	assert.Equal(t, 3.0, Xt.At(0, 1))  // column 0 max
	assert.Equal(t, 10.0, Xt.At(0, 2)) // column 1 min
	assert.Equal(t, 30.0, Xt.At(0, 3)) // column 1 max
}

func TestSummarizer_String(t *testing.T) {
	s := preprocessing.MustSummarizer(preprocessing.StatMean, preprocessing.StatStd)
	assert.Equal(t, "Summarizer(stats=[mean, std])", s.String())

	params := s.GetParams()
	assert.Equal(t, []string{"mean", "std"}, params["stats"])
}
