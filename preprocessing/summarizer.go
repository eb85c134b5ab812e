package preprocessing

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ezoic/panelkit/core/model"
	pkerrors "github.com/ezoic/panelkit/pkg/errors"
)

// Summary statistic names accepted by NewSummarizer.
const (
	StatMean   = "mean"
	StatStd    = "std"
	StatMin    = "min"
	StatMax    = "max"
	StatMedian = "median"
)

// Summarizer reduces each column of its input to a row of summary
// statistics. Wrapped by compose.RowwiseTransformer it turns every
// series cell into its statistics; with a single statistic the
// row-wise result collapses to a primitive-valued frame.
type Summarizer struct {
	state *model.StateManager

	// Stats holds the statistic names computed per column, in order.
	Stats []string
}

// NewSummarizer creates a Summarizer computing the given statistics.
// With no arguments it computes mean, std, min and max.
func NewSummarizer(stats ...string) (*Summarizer, error) {
	if len(stats) == 0 {
		stats = []string{StatMean, StatStd, StatMin, StatMax}
	}
	for _, name := range stats {
		switch name {
		case StatMean, StatStd, StatMin, StatMax, StatMedian:
		default:
			return nil, pkerrors.NewValueError("NewSummarizer", "unknown statistic "+name)
		}
	}
	return &Summarizer{
		state: model.NewStateManager(),
		Stats: append([]string(nil), stats...),
	}, nil
}

// MustSummarizer is NewSummarizer panicking on invalid statistic
// names; for use with statically known arguments.
func MustSummarizer(stats ...string) *Summarizer {
	s, err := NewSummarizer(stats...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fit validates X. The summarizer learns nothing from the data.
func (s *Summarizer) Fit(X mat.Matrix) (err error) {
	defer pkerrors.Recover(&err, "Summarizer.Fit")
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return pkerrors.NewModelError("Summarizer.Fit", "empty data", pkerrors.ErrEmptyData)
	}
	s.state.SetFitted()
	return nil
}

// Transform reduces X to a single row holding, for each input column,
// the configured statistics in order. The output has one row and
// len(Stats) * columns(X) columns, grouped by input column.
func (s *Summarizer) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer pkerrors.Recover(&err, "Summarizer.Transform")
	if !s.state.IsFitted() {
		return nil, pkerrors.NewNotFittedError("Summarizer", "Transform")
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, pkerrors.NewModelError("Summarizer.Transform", "empty data", pkerrors.ErrEmptyData)
	}

	result := mat.NewDense(1, c*len(s.Stats), nil)
	column := make([]float64, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			column[i] = X.At(i, j)
		}
		for k, name := range s.Stats {
			result.Set(0, j*len(s.Stats)+k, summarize(name, column))
		}
	}
	return result, nil
}

// FitTransform fits on X and reduces it in one step.
func (s *Summarizer) FitTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer pkerrors.Recover(&err, "Summarizer.FitTransform")
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// GetParams returns the summarizer's hyperparameters.
func (s *Summarizer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"stats": append([]string(nil), s.Stats...),
	}
}

// String returns a scikit-learn style representation.
func (s *Summarizer) String() string {
	return fmt.Sprintf("Summarizer(stats=[%s])", strings.Join(s.Stats, ", "))
}

func summarize(name string, values []float64) float64 {
	switch name {
	case StatMean:
		return stat.Mean(values, nil)
	case StatStd:
		return stat.StdDev(values, nil)
	case StatMin:
		min := values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
		}
		return min
	case StatMax:
		max := values[0]
		for _, v := range values[1:] {
			if v > max {
				max = v
			}
		}
		return max
	case StatMedian:
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		return stat.Quantile(0.5, stat.Empirical, sorted, nil)
	default:
		// names are validated in NewSummarizer
		return 0
	}
}
