package analysis

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goexplore/domain/core"
	"goexplore/domain/dataset"
	domainstats "goexplore/domain/stats"
	"goexplore/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func numbers(xs []float64) []dataset.Value {
	out := make([]dataset.Value, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) {
			out[i] = dataset.Missing()
			continue
		}
		out[i] = dataset.Number(x)
	}
	return out
}

func texts(ss ...string) []dataset.Value {
	out := make([]dataset.Value, len(ss))
	for i, s := range ss {
		if s == "" {
			out[i] = dataset.Missing()
			continue
		}
		out[i] = dataset.Text(s)
	}
	return out
}

// table builds a table from equally long columns
func table(t *testing.T, names []string, columns ...[]dataset.Value) *dataset.Table {
	t.Helper()
	rows := make([][]dataset.Value, 0)
	if len(columns) > 0 {
		for r := range columns[0] {
			row := make([]dataset.Value, len(columns))
			for c := range columns {
				row[c] = columns[c][r]
			}
			rows = append(rows, row)
		}
	}
	tbl, err := dataset.NewTable(names, rows)
	require.NoError(t, err)
	return tbl
}

func TestInfo(t *testing.T) {
	nan := math.NaN()
	tbl := table(t, []string{"age", "city"}, numbers([]float64{25, nan, 40}), texts("Oslo", "Rome", ""))

	info := Info(tbl)
	assert.Equal(t, 3, info.Rows)
	assert.Equal(t, 2, info.Columns)
	assert.Equal(t, domainstats.FieldInfo{Name: "age", Kind: dataset.ColumnNumeric, NonNull: 2}, info.Fields[0])
	assert.Equal(t, domainstats.FieldInfo{Name: "city", Kind: dataset.ColumnCategorical, NonNull: 2}, info.Fields[1])
}

func TestDescribe_Numeric(t *testing.T) {
	tbl := table(t, []string{"x"}, numbers([]float64{1, 2, 3, 4, 5, math.NaN()}))

	col, ok := Describe(tbl).Column("x")
	require.True(t, ok)
	assert.Equal(t, dataset.ColumnNumeric, col.Kind)

	get := func(name string) float64 {
		v, ok := col.Get(name)
		require.True(t, ok, name)
		return v.Num
	}
	assert.Equal(t, 5.0, get(domainstats.StatCount))
	assert.Equal(t, 3.0, get(domainstats.StatMean))
	assert.InDelta(t, math.Sqrt(2.5), get(domainstats.StatStd), 1e-12)
	assert.Equal(t, 1.0, get(domainstats.StatMin))
	assert.Equal(t, 3.0, get(domainstats.StatMedian))
	assert.Equal(t, 5.0, get(domainstats.StatMax))

	assert.Equal(t, 2.0, get(domainstats.StatQ25))
	assert.Equal(t, 4.0, get(domainstats.StatQ75))

	names := make([]string, len(col.Stats))
	for i, s := range col.Stats {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}, names)
}

func TestDescribe_QuartilesInterpolateBetweenOrderStatistics(t *testing.T) {
	tests := []struct {
		values   []float64
		q25, q75 float64
	}{
		{[]float64{4, 1, 3, 2}, 1.75, 3.25},
		{[]float64{1, 2, 3, 4, 5}, 2, 4},
		{[]float64{10, 20}, 12.5, 17.5},
		{[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 3.25, 7.75},
	}

	for _, tt := range tests {
		col, ok := Describe(table(t, []string{"x"}, numbers(tt.values))).Column("x")
		require.True(t, ok)
		q25, _ := col.Get(domainstats.StatQ25)
		q75, _ := col.Get(domainstats.StatQ75)
		assert.InDelta(t, tt.q25, q25.Num, 1e-12, "25%% of %v", tt.values)
		assert.InDelta(t, tt.q75, q75.Num, 1e-12, "75%% of %v", tt.values)
	}
}

func TestDescribe_SingleValueHasNaNStd(t *testing.T) {
	tbl := table(t, []string{"x"}, numbers([]float64{7}))

	col, _ := Describe(tbl).Column("x")
	std, _ := col.Get(domainstats.StatStd)
	assert.True(t, math.IsNaN(std.Num))
	q25, _ := col.Get(domainstats.StatQ25)
	assert.Equal(t, 7.0, q25.Num)
}

func TestDescribe_Categorical(t *testing.T) {
	tbl := table(t, []string{"city"}, texts("Oslo", "Rome", "Rome", "", "Oslo", "Paris"))

	col, _ := Describe(tbl).Column("city")
	assert.Equal(t, dataset.ColumnCategorical, col.Kind)

	count, _ := col.Get(domainstats.StatCount)
	unique, _ := col.Get(domainstats.StatUnique)
	top, _ := col.Get(domainstats.StatTop)
	freq, _ := col.Get(domainstats.StatFreq)
	assert.Equal(t, 5.0, count.Num)
	assert.Equal(t, 3.0, unique.Num)
	assert.Equal(t, "Rome", top.Text)
	assert.Equal(t, 2.0, freq.Num)

	_, hasMean := col.Get(domainstats.StatMean)
	assert.False(t, hasMean)
}

func TestDescribe_EmptyColumn(t *testing.T) {
	tbl := table(t, []string{"blank"}, texts("", ""))

	col, _ := Describe(tbl).Column("blank")
	assert.Equal(t, dataset.ColumnEmpty, col.Kind)
	require.Len(t, col.Stats, 1)
	assert.Equal(t, domainstats.StatCount, col.Stats[0].Name)
}

func TestCorrelation_PerfectlyCorrelated(t *testing.T) {
	tbl := table(t, []string{"a", "b", "c", "label"},
		numbers([]float64{1, 2, 3, 4, 5}),
		numbers([]float64{2, 4, 6, 8, 10}),
		numbers([]float64{5, 4, 3, 2, 1}),
		texts("p", "q", "r", "s", "t"),
	)

	m, err := Correlation(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, m.Columns)

	ab, _ := m.At("a", "b")
	ac, _ := m.At("a", "c")
	aa, _ := m.At("a", "a")
	ba, _ := m.At("b", "a")
	assert.InDelta(t, 1.0, ab, 1e-12)
	assert.InDelta(t, -1.0, ac, 1e-12)
	assert.InDelta(t, 1.0, aa, 1e-12)
	assert.Equal(t, ab, ba)

	_, ok := m.At("a", "label")
	assert.False(t, ok)
}

func TestCorrelation_PairwiseComplete(t *testing.T) {
	nan := math.NaN()
	tbl := table(t, []string{"a", "b"},
		numbers([]float64{1, 2, nan, 4, 5}),
		numbers([]float64{1, 2, 100, 4, 5}),
	)

	m, err := Correlation(tbl)
	require.NoError(t, err)
	ab, _ := m.At("a", "b")
	assert.InDelta(t, 1.0, ab, 1e-12)
}

func TestCorrelation_ConstantColumnIsNaN(t *testing.T) {
	tbl := table(t, []string{"a", "k"}, numbers([]float64{1, 2, 3}), numbers([]float64{4, 4, 4}))

	m, err := Correlation(tbl)
	require.NoError(t, err)
	ak, _ := m.At("a", "k")
	assert.True(t, math.IsNaN(ak))
}

func TestCorrelation_NeedsTwoNumericColumns(t *testing.T) {
	tbl := table(t, []string{"a", "label"}, numbers([]float64{1, 2}), texts("x", "y"))

	_, err := Correlation(tbl)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}

func TestTTest_DifferentMeans(t *testing.T) {
	gen := testkit.NewGenerator(42)
	tbl := table(t, []string{"a", "b"},
		numbers(gen.Normal(100, 10, 2)),
		numbers(gen.Normal(100, 20, 2)),
	)

	res, err := TTest(tbl, "a", "b", true)
	require.NoError(t, err)

	assert.Equal(t, 100, res.NA)
	assert.Equal(t, 100, res.NB)
	assert.Less(t, res.TStatistic, 0.0)
	assert.Less(t, res.PValue, 0.001)
	assert.Equal(t, 198.0, res.DegreesOfFreedom)
	assert.True(t, res.EqualVariance)
}

func TestTTest_WelchDegreesOfFreedom(t *testing.T) {
	gen := testkit.NewGenerator(7)
	tbl := table(t, []string{"a", "b"},
		numbers(gen.Normal(60, 0, 1)),
		numbers(append(gen.Normal(40, 0, 8), make([]float64, 20)...)),
	)

	res, err := TTest(tbl, "a", "b", false)
	require.NoError(t, err)
	assert.False(t, res.EqualVariance)
	assert.Less(t, res.DegreesOfFreedom, 118.0)
	assert.Greater(t, res.DegreesOfFreedom, 0.0)
}

func TestTTest_SameDistributionIsNotSignificant(t *testing.T) {
	xs := make([]float64, 50)
	for i := range xs {
		xs[i] = float64(i % 10)
	}
	tbl := table(t, []string{"a", "b"}, numbers(xs), numbers(xs))

	res, err := TTest(tbl, "a", "b", true)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.TStatistic, 1e-12)
	assert.InDelta(t, 1.0, res.PValue, 1e-6)
}

func TestTTest_DropsMissingPerColumn(t *testing.T) {
	nan := math.NaN()
	tbl := table(t, []string{"a", "b"},
		numbers([]float64{1, 2, 3, nan, nan}),
		numbers([]float64{4, 5, 6, 7, nan}),
	)

	res, err := TTest(tbl, "a", "b", true)
	require.NoError(t, err)
	assert.Equal(t, 3, res.NA)
	assert.Equal(t, 4, res.NB)
	assert.Equal(t, 2.0, res.MeanA)
	assert.Equal(t, 5.5, res.MeanB)
}

func TestTTest_Errors(t *testing.T) {
	tbl := table(t, []string{"a", "b", "city"},
		numbers([]float64{1, 2, 3}),
		numbers([]float64{1, math.NaN(), math.NaN()}),
		texts("x", "y", "z"),
	)

	_, err := TTest(tbl, "a", "nope", true)
	assert.True(t, errors.Is(err, core.ErrInvalidColumn))

	_, err = TTest(tbl, "a", "city", true)
	assert.True(t, errors.Is(err, core.ErrNonNumericColumn))

	_, err = TTest(tbl, "a", "b", true)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}

func TestRegress_ExactLine(t *testing.T) {
	xs, ys := testkit.NewGenerator(1).Linear(50, 2, 1, 0)
	tbl := table(t, []string{"x", "y"}, numbers(xs), numbers(ys))

	res, err := Regress(tbl, "x", "y")
	require.NoError(t, err)

	assert.Equal(t, 50, res.N)
	assert.Zero(t, res.DroppedRows)
	require.Len(t, res.Coefficients, 2)
	assert.Equal(t, "const", res.Intercept().Name)
	assert.Equal(t, "x", res.Slope().Name)
	assert.InDelta(t, 1.0, res.Intercept().Estimate, 1e-9)
	assert.InDelta(t, 2.0, res.Slope().Estimate, 1e-9)
	assert.InDelta(t, 1.0, res.RSquared, 1e-12)
}

func TestRegress_NoisyLine(t *testing.T) {
	xs, ys := testkit.NewGenerator(3).Linear(200, 3, 5, 1)
	tbl := table(t, []string{"x", "y"}, numbers(xs), numbers(ys))

	res, err := Regress(tbl, "x", "y")
	require.NoError(t, err)

	slope := res.Slope()
	assert.InDelta(t, 3.0, slope.Estimate, 0.05)
	assert.Greater(t, slope.StdError, 0.0)
	assert.InDelta(t, slope.Estimate/slope.StdError, slope.TValue, 1e-9)
	assert.Less(t, slope.PValue, 1e-6)
	assert.Greater(t, res.RSquared, 0.99)
	assert.Less(t, res.AdjRSquared, res.RSquared)
	assert.Less(t, res.FPValue, 1e-6)
	assert.InDelta(t, slope.TValue*slope.TValue, res.FStatistic, res.FStatistic*1e-9)
	assert.InDelta(t, 1.0, res.ResidualStd, 0.2)
}

func TestRegress_PairedRows(t *testing.T) {
	nan := math.NaN()
	tbl := table(t, []string{"x", "y"},
		numbers([]float64{1, 2, nan, 4, 5, 6}),
		numbers([]float64{3, 5, 7, nan, 11, 13}),
	)

	res, err := Regress(tbl, "x", "y")
	require.NoError(t, err)
	assert.Equal(t, 4, res.N)
	assert.Equal(t, 2, res.DroppedRows)
	assert.InDelta(t, 2.0, res.Slope().Estimate, 1e-9)
	assert.InDelta(t, 1.0, res.Intercept().Estimate, 1e-9)
}

func TestRegress_Errors(t *testing.T) {
	nan := math.NaN()
	tbl := table(t, []string{"x", "y", "k", "city"},
		numbers([]float64{1, 2, 3}),
		numbers([]float64{1, nan, 3}),
		numbers([]float64{2, 2, 2}),
		texts("a", "b", "c"),
	)

	_, err := Regress(tbl, "x", "missing")
	assert.True(t, errors.Is(err, core.ErrInvalidColumn))

	_, err = Regress(tbl, "city", "x")
	assert.True(t, errors.Is(err, core.ErrNonNumericColumn))

	_, err = Regress(tbl, "x", "y")
	assert.True(t, errors.Is(err, core.ErrInsufficientData))

	_, err = Regress(tbl, "k", "x")
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}

func TestExportSummary(t *testing.T) {
	tbl := table(t, []string{"age", "city", "one"},
		numbers([]float64{20, 30, 40}),
		texts("Oslo", "Oslo", "Rome"),
		numbers([]float64{5, math.NaN(), math.NaN()}),
	)
	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, os.WriteFile(path, []byte("stale content"), 0o644))

	require.NoError(t, ExportSummary(Describe(tbl), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(data))

	assert.True(t, strings.HasPrefix(string(data), "{\n    \"age\": {\n        \"count\": 3,"))
	assert.NotContains(t, string(data), "stale")

	assert.Equal(t, 30.0, gjson.GetBytes(data, "age.mean").Float())
	assert.Equal(t, 40.0, gjson.GetBytes(data, "age.max").Float())
	assert.Equal(t, "Oslo", gjson.GetBytes(data, "city.top").String())
	assert.Equal(t, gjson.String, gjson.GetBytes(data, "city.top").Type)
	assert.Equal(t, int64(2), gjson.GetBytes(data, "city.freq").Int())
	assert.Equal(t, gjson.Null, gjson.GetBytes(data, "one.std").Type)
	assert.False(t, gjson.GetBytes(data, "city.mean").Exists())

	var keys []string
	gjson.ParseBytes(data).ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	assert.Equal(t, []string{"age", "city", "one"}, keys)
}

func TestLoadSummary_RoundTrip(t *testing.T) {
	tbl := table(t, []string{"age", "city"},
		numbers([]float64{20, 30, 40}),
		texts("Oslo", "Oslo", "Rome"),
	)
	want := Describe(tbl)
	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, ExportSummary(want, path))

	got, err := LoadSummary(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSummary_RejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadSummary(path)
	assert.Error(t, err)
}

func TestExportSummary_UnwritablePath(t *testing.T) {
	err := ExportSummary(domainstats.Summary{}, filepath.Join(t.TempDir(), "missing", "dir", "out.json"))
	assert.Error(t, err)
}
