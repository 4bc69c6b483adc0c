package report

import (
	"bytes"
	"math"
	"testing"

	"goexplore/domain/dataset"
	"goexplore/domain/stats"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_Info(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Info(stats.TableInfo{
		Rows:    3,
		Columns: 2,
		Fields: []stats.FieldInfo{
			{Name: "age", Kind: dataset.ColumnNumeric, NonNull: 2},
			{Name: "city", Kind: dataset.ColumnCategorical, NonNull: 3},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "3 entries, 2 columns")
	assert.Contains(t, out, "age")
	assert.Contains(t, out, "2 non-null")
	assert.Contains(t, out, "categorical")
}

func TestPrinter_SummaryRowsFollowStatistics(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Summary(stats.Summary{Columns: []stats.ColumnSummary{
		{Column: "x", Kind: dataset.ColumnNumeric, Stats: []stats.Stat{
			{Name: stats.StatCount, Value: stats.Num(2)},
			{Name: stats.StatMean, Value: stats.Num(1.5)},
			{Name: stats.StatStd, Value: stats.Num(math.NaN())},
		}},
		{Column: "city", Kind: dataset.ColumnCategorical, Stats: []stats.Stat{
			{Name: stats.StatCount, Value: stats.Num(2)},
			{Name: stats.StatTop, Value: stats.Str("Oslo")},
		}},
	}})

	out := buf.String()
	assert.Contains(t, out, "Oslo")
	assert.Contains(t, out, "1.5")
	assert.Contains(t, out, "NaN")
	assert.NotContains(t, out, "75%")
}

func TestPrinter_MissingShowsTwoDecimals(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Missing(stats.MissingSummary{Rows: 3, Columns: []stats.MissingColumn{
		{Column: "age", Missing: 1, Percent: 33.33},
		{Column: "city", Missing: 0, Percent: 0},
	}})

	out := buf.String()
	assert.Contains(t, out, "33.33")
	assert.Contains(t, out, "0.00")
}

func TestPrinter_RegressionListsCoefficients(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Regression(stats.RegressionResult{
		Independent: "x",
		Dependent:   "y",
		N:           10,
		DroppedRows: 2,
		Coefficients: []stats.Coefficient{
			{Name: "const", Estimate: 1},
			{Name: "x", Estimate: 2},
		},
		RSquared: 1,
	})

	out := buf.String()
	assert.Contains(t, out, "Dep. Variable: y")
	assert.Contains(t, out, "2 incomplete rows dropped")
	assert.Contains(t, out, "const")
	assert.Contains(t, out, "2.0000")
}

func TestPrinter_TTestNamesVariant(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).TTest(stats.TTestResult{ColumnA: "a", ColumnB: "b", TStatistic: -2.5, PValue: 0.01})
	assert.Contains(t, buf.String(), "Welch")
	assert.Contains(t, buf.String(), "T-Statistic: -2.500000")
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "NaN", formatFloat(math.NaN(), 2))
	assert.Equal(t, "inf", formatFloat(math.Inf(1), 2))
	assert.Equal(t, "0.50", formatFloat(0.5, 2))
}
