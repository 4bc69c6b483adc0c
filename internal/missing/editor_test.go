package missing

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"goexplore/adapters/console"
	"goexplore/domain/core"
	"goexplore/domain/dataset"
	domainstats "goexplore/domain/stats"
	"goexplore/internal"
	"goexplore/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	na  = dataset.Missing()
	num = dataset.Number
	txt = dataset.Text
)

// ageCity is the three-row table age=[25, NA, 40], city=[Oslo, Rome, NA]
func ageCity(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.NewTable([]string{"age", "city"}, [][]dataset.Value{
		{num(25), txt("Oslo")},
		{na, txt("Rome")},
		{num(40), na},
	})
	require.NoError(t, err)
	return tbl
}

func TestSummarize(t *testing.T) {
	summary := Summarize(ageCity(t))

	require.Len(t, summary.Columns, 2)
	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 1, summary.Columns[0].Missing)
	assert.Equal(t, 33.33, summary.Columns[0].Percent)
	assert.Equal(t, 2, summary.Total())
}

func TestSummarize_EmptyTable(t *testing.T) {
	tbl, err := dataset.NewTable([]string{"a"}, nil)
	require.NoError(t, err)

	summary := Summarize(tbl)
	assert.Equal(t, 0.0, summary.Columns[0].Percent)
}

func TestDropRows(t *testing.T) {
	tbl := ageCity(t)

	assert.Equal(t, 2, DropRows(tbl))
	assert.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, []dataset.Value{num(25), txt("Oslo")}, tbl.Row(0))
	assert.Zero(t, tbl.MissingCount())

	assert.Equal(t, 0, DropRows(tbl))
	assert.Equal(t, 1, tbl.NumRows())
}

func TestDropColumns(t *testing.T) {
	tbl, err := dataset.NewTable([]string{"a", "b", "c"}, [][]dataset.Value{
		{num(1), na, txt("x")},
		{num(2), num(3), txt("y")},
	})
	require.NoError(t, err)

	removed := DropColumns(tbl)
	assert.Equal(t, []string{"b"}, removed)
	assert.Equal(t, []string{"a", "c"}, tbl.ColumnNames())
	assert.Equal(t, 2, tbl.NumRows())
}

func TestFillConstant(t *testing.T) {
	tbl := ageCity(t)

	assert.Equal(t, 2, FillConstant(tbl, "0"))
	assert.Zero(t, tbl.MissingCount())

	age, _ := tbl.Column("age")
	city, _ := tbl.Column("city")
	assert.Equal(t, num(0), age.Values[1])
	assert.Equal(t, num(0), city.Values[2])
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want dataset.Value
	}{
		{"0", num(0)},
		{" 2.5 ", num(2.5)},
		{"-1e3", num(-1000)},
		{"unknown", txt("unknown")},
		{"NaN", txt("NaN")},
		{"nan", txt("nan")},
		{"inf", txt("inf")},
		{"-Inf", txt("-Inf")},
		{"NA", txt("NA")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLiteral(tt.in), tt.in)
	}
}

func TestFillConstant_NonFiniteLiteralStaysText(t *testing.T) {
	tbl := ageCity(t)

	assert.Equal(t, 2, FillConstant(tbl, "NaN"))
	assert.Zero(t, tbl.MissingCount())

	age, _ := tbl.Column("age")
	assert.Equal(t, txt("NaN"), age.Values[1])
	assert.Equal(t, dataset.ColumnCategorical, age.Kind())

	col := analysis.DescribeColumn(age)
	count, _ := col.Get(domainstats.StatCount)
	top, _ := col.Get(domainstats.StatTop)
	assert.Equal(t, 3.0, count.Num)
	assert.Equal(t, "25", top.Text)
	_, hasMean := col.Get(domainstats.StatMean)
	assert.False(t, hasMean)
}

func TestFillConstant_TextLiteral(t *testing.T) {
	tbl := ageCity(t)

	FillConstant(tbl, "unknown")

	age, _ := tbl.Column("age")
	assert.Equal(t, txt("unknown"), age.Values[1])
	assert.Equal(t, dataset.ColumnCategorical, age.Kind())
}

func TestParseMethod(t *testing.T) {
	for _, s := range []string{"mean", "MEDIAN", " Mode "} {
		_, err := ParseMethod(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseMethod("average")
	assert.True(t, errors.Is(err, core.ErrInvalidMethod))
}

func TestFillStatistic_MeanSkipsNonNumeric(t *testing.T) {
	tbl := ageCity(t)

	report, err := FillStatistic(tbl, MethodMean)
	require.NoError(t, err)

	require.Len(t, report.Filled, 1)
	assert.Equal(t, "age", report.Filled[0].Column)
	assert.Equal(t, num(32.5), report.Filled[0].Value)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "city", report.Skipped[0].Column)
	assert.True(t, errors.Is(report.Skipped[0].Err, core.ErrNonNumericColumn))

	city, _ := tbl.Column("city")
	assert.Equal(t, 1, city.MissingCount())
}

func TestFillStatistic_Median(t *testing.T) {
	tbl, err := dataset.NewTable([]string{"x"}, [][]dataset.Value{{num(1)}, {num(10)}, {na}, {num(2)}})
	require.NoError(t, err)

	_, err = FillStatistic(tbl, MethodMedian)
	require.NoError(t, err)

	x, _ := tbl.Column("x")
	assert.Equal(t, num(2), x.Values[2])
}

func TestFillStatistic_ModeTieBreaksToSmallest(t *testing.T) {
	tbl, err := dataset.NewTable([]string{"n", "s"}, [][]dataset.Value{
		{num(3), txt("b")},
		{num(3), txt("b")},
		{num(1), txt("a")},
		{num(1), txt("a")},
		{na, na},
	})
	require.NoError(t, err)

	report, err := FillStatistic(tbl, MethodMode)
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)

	n, _ := tbl.Column("n")
	s, _ := tbl.Column("s")
	assert.Equal(t, num(1), n.Values[4])
	assert.Equal(t, txt("a"), s.Values[4])
}

func TestFillStatistic_ModeAllUnique(t *testing.T) {
	tbl, err := dataset.NewTable([]string{"n"}, [][]dataset.Value{{num(7)}, {num(5)}, {num(9)}, {na}})
	require.NoError(t, err)

	_, err = FillStatistic(tbl, MethodMode)
	require.NoError(t, err)

	n, _ := tbl.Column("n")
	assert.Equal(t, num(5), n.Values[3])
}

func TestFillStatistic_ModeSingleWinner(t *testing.T) {
	tbl, err := dataset.NewTable([]string{"n"}, [][]dataset.Value{{num(2)}, {num(9)}, {num(9)}, {num(1)}, {na}})
	require.NoError(t, err)

	_, err = FillStatistic(tbl, MethodMode)
	require.NoError(t, err)

	n, _ := tbl.Column("n")
	assert.Equal(t, num(9), n.Values[4])
}

func TestFillStatistic_AllMissingColumnSkipped(t *testing.T) {
	tbl, err := dataset.NewTable([]string{"a", "b"}, [][]dataset.Value{{na, num(1)}, {na, na}})
	require.NoError(t, err)

	report, err := FillStatistic(tbl, MethodMode)
	require.NoError(t, err)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "a", report.Skipped[0].Column)
	assert.True(t, errors.Is(report.Skipped[0].Err, core.ErrInsufficientData))

	b, _ := tbl.Column("b")
	assert.Zero(t, b.MissingCount())
}

func TestFillStatistic_InvalidMethodMutatesNothing(t *testing.T) {
	tbl := ageCity(t)
	before := tbl.Clone()

	_, err := FillStatistic(tbl, Method("average"))
	assert.True(t, errors.Is(err, core.ErrInvalidMethod))
	assert.Equal(t, before, tbl)
}

func runEditor(t *testing.T, tbl *dataset.Table, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	term := console.NewTerminal(strings.NewReader(input), &out, console.WithoutColor())
	logger := internal.NewLogger(internal.LogLevelError, io.Discard)
	err := NewEditor(term, logger).Run(tbl)
	return out.String(), err
}

func TestEditor_DropRows(t *testing.T) {
	tbl := ageCity(t)

	out, err := runEditor(t, tbl, "2\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Rows with missing values have been dropped.")
	assert.Equal(t, 1, tbl.NumRows())
}

func TestEditor_RepromptsInvalidChoice(t *testing.T) {
	tbl := ageCity(t)

	out, err := runEditor(t, tbl, "9\n6\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid choice. Please select from ['1', '2', '3', '4', '5', '6'].")
	assert.Contains(t, out, "Returning to the main menu.")
	assert.Equal(t, 3, tbl.NumRows())
}

func TestEditor_Summary(t *testing.T) {
	out, err := runEditor(t, ageCity(t), "1\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Missing Data Summary:")
	assert.Contains(t, out, "33.33")
}

func TestEditor_FillConstant(t *testing.T) {
	tbl := ageCity(t)

	out, err := runEditor(t, tbl, "4\n0\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Missing values have been filled with the specified value.")
	assert.Zero(t, tbl.MissingCount())
}

func TestEditor_FillStatisticInvalidMethod(t *testing.T) {
	tbl := ageCity(t)

	out, err := runEditor(t, tbl, "5\naverage\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid method. Returning to the menu.")
	assert.NotContains(t, out, "have been filled")
	assert.Equal(t, 2, tbl.MissingCount())
}

func TestEditor_FillStatisticReportsSkips(t *testing.T) {
	tbl := ageCity(t)

	out, err := runEditor(t, tbl, "5\nMEAN\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Column 'city' skipped")
	assert.Contains(t, out, "Missing values have been filled using the mean method.")
	assert.Equal(t, 1, tbl.MissingCount())
}

func TestEditor_EOF(t *testing.T) {
	_, err := runEditor(t, ageCity(t), "")
	assert.Equal(t, io.EOF, err)
}
