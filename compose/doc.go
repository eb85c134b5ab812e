// Package compose provides meta-transformers for panel/time-series
// data: transformers built from other transformers.
//
//   - RowwiseTransformer lifts a transformer that works on a single
//     series to every row of every column of a nested frame.
//   - Tabularizer (alias Tabulariser) bridges nested and tabular
//     frames, remembering the schema needed for the inverse mapping.
//   - ColumnConcatenator collapses a multivariate nested frame into a
//     single univariate nested column per sample.
//   - ColumnTransformer applies different transformers to different
//     column subsets and stacks their outputs horizontally, preserving
//     labeled output when requested.
//
// All transformers follow the fit/transform estimator protocol from
// core/model and can be chained by the pipeline package.
package compose
