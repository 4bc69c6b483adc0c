package analysis

import (
	"math"

	"goexplore/domain/core"
	"goexplore/domain/dataset"
	domainstats "goexplore/domain/stats"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// NumericColumns returns the columns whose present cells are all numbers
func NumericColumns(t *dataset.Table) []*dataset.Column {
	var out []*dataset.Column
	for _, c := range t.Columns() {
		if c.IsNumeric() {
			out = append(out, c)
		}
	}
	return out
}

// Correlation computes the Pearson correlation of every pair of numeric
// columns using the rows where both values are present. A pair with fewer
// than two complete rows, or a constant side, yields NaN.
func Correlation(t *dataset.Table) (domainstats.CorrelationMatrix, error) {
	columns := NumericColumns(t)
	if len(columns) < 2 {
		return domainstats.CorrelationMatrix{}, core.NewInsufficientDataError("correlation needs at least two numeric columns")
	}

	n := len(columns)
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, pearson(columns[i], columns[j]))
		}
	}

	m := domainstats.CorrelationMatrix{
		Columns: make([]string, n),
		Values:  make([][]float64, n),
	}
	for i, c := range columns {
		m.Columns[i] = c.Name
		m.Values[i] = mat.Row(nil, i, sym)
	}
	return m, nil
}

func pearson(x, y *dataset.Column) float64 {
	xs, ys, _, err := dataset.PairedFloats(x, y)
	if err != nil || len(xs) < 2 {
		return math.NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
