package compose_test

import (
	"fmt"
	"testing"

	"github.com/ezoic/panelkit/compose"
	"github.com/ezoic/panelkit/dataframe"
	"github.com/ezoic/panelkit/preprocessing"
)

func benchPanel(b *testing.B, rows, cols, length int) *dataframe.Frame {
	b.Helper()
	columns := make([]dataframe.Column, cols)
	for j := 0; j < cols; j++ {
		cells := make([]dataframe.Series, rows)
		for i := range cells {
			s := make(dataframe.Series, length)
			for t := range s {
				s[t] = float64(i*length + t)
			}
			cells[i] = s
		}
		columns[j] = dataframe.NewSeriesColumn(fmt.Sprintf("c%d", j), cells)
	}
	X, err := dataframe.New(nil, columns...)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	return X
}

func BenchmarkRowwiseTransformer(b *testing.B) {
	X := benchPanel(b, 100, 2, 100)
	rt := compose.NewRowwiseTransformer(preprocessing.NewStandardScalerDefault())
	if err := rt.Fit(X); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rt.Transform(X); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkColumnTransformer(b *testing.B) {
	X := benchPanel(b, 100, 4, 100)
	for _, jobs := range []int{1, 4} {
		b.Run(fmt.Sprintf("jobs=%d", jobs), func(b *testing.B) {
			specs := make([]compose.TransformerSpec, 4)
			for j := range specs {
				specs[j] = compose.TransformerSpec{
					Name: fmt.Sprintf("s%d", j),
					Action: compose.Apply(compose.NewRowwiseTransformer(
						preprocessing.MustSummarizer(preprocessing.StatMean),
					)),
					Columns: compose.ByIndex(j),
				}
			}
			ct := compose.NewColumnTransformer(specs, compose.WithNJobs(jobs))
			if err := ct.Fit(X); err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := ct.Transform(X); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
