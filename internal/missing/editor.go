package missing

import (
	"fmt"
	"sort"
	"strings"

	"goexplore/adapters/coercer"
	"goexplore/domain/core"
	"goexplore/domain/dataset"
	domainstats "goexplore/domain/stats"

	"github.com/montanaflynn/stats"
)

// Method is a fill statistic
type Method string

const (
	MethodMean   Method = "mean"
	MethodMedian Method = "median"
	MethodMode   Method = "mode"
)

// ParseMethod accepts mean, median or mode in any case
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodMean, MethodMedian, MethodMode:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrInvalidMethod, s)
}

// ColumnFill records the value written into one column's missing cells
type ColumnFill struct {
	Column string
	Value  dataset.Value
	Cells  int
}

// ColumnSkip records a column that had missing cells but could not be filled
type ColumnSkip struct {
	Column string
	Err    error
}

// FillReport describes the outcome of FillStatistic
type FillReport struct {
	Method  Method
	Filled  []ColumnFill
	Skipped []ColumnSkip
}

// Cells returns the total number of cells filled
func (r FillReport) Cells() int {
	n := 0
	for _, f := range r.Filled {
		n += f.Cells
	}
	return n
}

// Summarize counts missing cells per column. Percentages are rounded to two decimals.
func Summarize(t *dataset.Table) domainstats.MissingSummary {
	summary := domainstats.MissingSummary{Rows: t.NumRows()}
	for _, c := range t.Columns() {
		n := c.MissingCount()
		pct := 0.0
		if t.NumRows() > 0 {
			pct, _ = stats.Round(float64(n)/float64(t.NumRows())*100, 2)
		}
		summary.Columns = append(summary.Columns, domainstats.MissingColumn{Column: c.Name, Missing: n, Percent: pct})
	}
	return summary
}

// DropRows removes every row that has at least one missing cell and returns how many were removed
func DropRows(t *dataset.Table) int {
	columns := t.Columns()
	return t.KeepRows(func(r int) bool {
		for _, c := range columns {
			if c.Values[r].IsMissing() {
				return false
			}
		}
		return true
	})
}

// DropColumns removes every column that has at least one missing cell and returns their names
func DropColumns(t *dataset.Table) []string {
	return t.KeepColumns(func(c *dataset.Column) bool {
		return c.MissingCount() == 0
	})
}

var literals = coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())

// ParseLiteral types a user-entered fill value the way the loader types cells:
// a finite number if it parses as one, text otherwise. NA markers such as
// "NaN" stay text so a filled cell never reads as missing again.
func ParseLiteral(s string) dataset.Value {
	v := literals.CoerceValue(s)
	if v.IsMissing() {
		return dataset.Text(strings.TrimSpace(s))
	}
	return v
}

// FillConstant replaces every missing cell with the typed literal and returns the number of cells filled
func FillConstant(t *dataset.Table, literal string) int {
	value := ParseLiteral(literal)
	filled := 0
	for _, c := range t.Columns() {
		filled += fillColumn(c, value)
	}
	return filled
}

// FillStatistic replaces the missing cells of each column with that column's
// mean, median or mode. Mean and median only apply to numeric columns; other
// columns with missing cells are reported as skipped. Columns with no present
// values are skipped too. Columns without missing cells are left alone.
func FillStatistic(t *dataset.Table, method Method) (FillReport, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return FillReport{}, err
	}

	report := FillReport{Method: method}
	for _, c := range t.Columns() {
		if c.MissingCount() == 0 {
			continue
		}

		value, err := columnStatistic(c, method)
		if err != nil {
			report.Skipped = append(report.Skipped, ColumnSkip{Column: c.Name, Err: err})
			continue
		}
		report.Filled = append(report.Filled, ColumnFill{Column: c.Name, Value: value, Cells: fillColumn(c, value)})
	}
	return report, nil
}

func columnStatistic(c *dataset.Column, method Method) (dataset.Value, error) {
	switch c.Kind() {
	case dataset.ColumnEmpty:
		return dataset.Value{}, core.NewInsufficientDataError(fmt.Sprintf("column %q has no values", c.Name))
	case dataset.ColumnCategorical:
		if method != MethodMode {
			return dataset.Value{}, core.NewNonNumericColumnError(c.Name)
		}
		return dataset.Text(textMode(c.Strings())), nil
	}

	data, err := c.Floats()
	if err != nil {
		return dataset.Value{}, err
	}

	var f float64
	switch method {
	case MethodMean:
		f, err = stats.Mean(data)
	case MethodMedian:
		f, err = stats.Median(data)
	case MethodMode:
		f, err = numericMode(data)
	}
	if err != nil {
		return dataset.Value{}, err
	}
	return dataset.Number(f), nil
}

// numericMode returns the smallest of the most frequent values
func numericMode(data []float64) (float64, error) {
	modes, err := stats.Mode(data)
	if err != nil {
		return 0, err
	}
	// every value ties
	if len(modes) == 0 {
		return stats.Min(data)
	}
	return stats.Min(modes)
}

// textMode returns the lexicographically smallest of the most frequent values
func textMode(values []string) string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best
}

func fillColumn(c *dataset.Column, value dataset.Value) int {
	n := 0
	for i, v := range c.Values {
		if v.IsMissing() {
			c.Values[i] = value
			n++
		}
	}
	return n
}
