package dataframe_test

import (
	"testing"

	"github.com/ezoic/panelkit/dataframe"
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
		columns[j] = dataframe.NewSeriesColumn("c"+string(rune('a'+j)), cells)
	}
	X, err := dataframe.New(nil, columns...)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	return X
}

func BenchmarkTabularize(b *testing.B) {
	X := benchPanel(b, 200, 4, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dataframe.Tabularize(X); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDetabularize(b *testing.B) {
	X := benchPanel(b, 200, 4, 100)
	Xt, schema, err := dataframe.TabularizeSchema(X)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dataframe.Detabularize(Xt, schema); err != nil {
			b.Fatal(err)
		}
	}
}
