package analysis

import (
	"math"
	"sort"

	"goexplore/domain/dataset"
	domainstats "goexplore/domain/stats"

	"github.com/montanaflynn/stats"
)

// Info reports the table's size and each column's kind and non-null count
func Info(t *dataset.Table) domainstats.TableInfo {
	info := domainstats.TableInfo{Rows: t.NumRows(), Columns: t.NumColumns()}
	for _, c := range t.Columns() {
		info.Fields = append(info.Fields, domainstats.FieldInfo{
			Name:    c.Name,
			Kind:    c.Kind(),
			NonNull: c.NonMissingCount(),
		})
	}
	return info
}

// Describe computes type-appropriate descriptive statistics for every column, in column order
func Describe(t *dataset.Table) domainstats.Summary {
	summary := domainstats.Summary{Columns: make([]domainstats.ColumnSummary, 0, t.NumColumns())}
	for _, c := range t.Columns() {
		summary.Columns = append(summary.Columns, DescribeColumn(c))
	}
	return summary
}

// DescribeColumn summarizes one column.
// Numeric: count, mean, std, min, 25%, 50%, 75%, max.
// Categorical: count, unique, top, freq.
// Empty: count.
func DescribeColumn(c *dataset.Column) domainstats.ColumnSummary {
	kind := c.Kind()
	summary := domainstats.ColumnSummary{Column: c.Name, Kind: kind}

	switch kind {
	case dataset.ColumnNumeric:
		data, _ := c.Floats()
		summary.Stats = numericStats(data)
	case dataset.ColumnCategorical:
		summary.Stats = categoricalStats(c.Strings())
	default:
		summary.Stats = []domainstats.Stat{{Name: domainstats.StatCount, Value: domainstats.Num(0)}}
	}
	return summary
}

func numericStats(data []float64) []domainstats.Stat {
	mean, _ := stats.Mean(data)
	std := math.NaN()
	if len(data) > 1 {
		std, _ = stats.StandardDeviationSample(data)
	}
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	return []domainstats.Stat{
		{Name: domainstats.StatCount, Value: domainstats.Num(float64(len(data)))},
		{Name: domainstats.StatMean, Value: domainstats.Num(mean)},
		{Name: domainstats.StatStd, Value: domainstats.Num(std)},
		{Name: domainstats.StatMin, Value: domainstats.Num(min)},
		{Name: domainstats.StatQ25, Value: domainstats.Num(quantile(sorted, 0.25))},
		{Name: domainstats.StatMedian, Value: domainstats.Num(median)},
		{Name: domainstats.StatQ75, Value: domainstats.Num(quantile(sorted, 0.75))},
		{Name: domainstats.StatMax, Value: domainstats.Num(max)},
	}
}

// quantile interpolates linearly between the order statistics around
// position (n-1)*p of sorted, the same estimator pandas' describe uses.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// categoricalStats counts distinct values. On a tie for most frequent, top is
// the value that reached that count first.
func categoricalStats(values []string) []domainstats.Stat {
	counts := make(map[string]int, len(values))
	top, freq := "", 0
	for _, v := range values {
		counts[v]++
		if counts[v] > freq {
			top, freq = v, counts[v]
		}
	}

	return []domainstats.Stat{
		{Name: domainstats.StatCount, Value: domainstats.Num(float64(len(values)))},
		{Name: domainstats.StatUnique, Value: domainstats.Num(float64(len(counts)))},
		{Name: domainstats.StatTop, Value: domainstats.Str(top)},
		{Name: domainstats.StatFreq, Value: domainstats.Num(float64(freq))},
	}
}
