package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"goexplore/domain/stats"

	"github.com/olekukonko/tablewriter"
)

// describeOrder is the row order of the descriptive summary table
var describeOrder = []string{
	stats.StatCount,
	stats.StatUnique,
	stats.StatTop,
	stats.StatFreq,
	stats.StatMean,
	stats.StatStd,
	stats.StatMin,
	stats.StatQ25,
	stats.StatMedian,
	stats.StatQ75,
	stats.StatMax,
}

// Printer renders analysis results as console tables
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(p.w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}

// Info prints the table shape and a row per column with its kind and non-null count
func (p *Printer) Info(info stats.TableInfo) {
	fmt.Fprintln(p.w, "Basic Dataset Information:")
	fmt.Fprintf(p.w, "%d entries, %d columns\n", info.Rows, info.Columns)

	table := p.newTable("#", "Column", "Non-Null Count", "Kind")
	for i, f := range info.Fields {
		table.Append([]string{
			strconv.Itoa(i),
			f.Name,
			fmt.Sprintf("%d non-null", f.NonNull),
			string(f.Kind),
		})
	}
	table.Render()
}

// Summary prints descriptive statistics with one column per table column
// and one row per statistic that any column reports.
func (p *Printer) Summary(s stats.Summary) {
	fmt.Fprintln(p.w, "Summary Statistics:")
	if len(s.Columns) == 0 {
		fmt.Fprintln(p.w, "(no columns)")
		return
	}

	header := []string{""}
	for _, c := range s.Columns {
		header = append(header, c.Column)
	}
	table := p.newTable(header...)

	for _, name := range describeOrder {
		row := []string{name}
		used := false
		for _, c := range s.Columns {
			v, ok := c.Get(name)
			if !ok {
				row = append(row, "NaN")
				continue
			}
			used = true
			row = append(row, v.String())
		}
		if used {
			table.Append(row)
		}
	}
	table.Render()
}

// Missing prints per-column missing counts and percentages
func (p *Printer) Missing(m stats.MissingSummary) {
	fmt.Fprintln(p.w, "Missing Data Summary:")
	table := p.newTable("Column", "Missing", "Percent")
	for _, c := range m.Columns {
		table.Append([]string{c.Column, strconv.Itoa(c.Missing), strconv.FormatFloat(c.Percent, 'f', 2, 64)})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(m.Total()), ""})
	table.Render()
}

// Correlation prints the coefficient matrix with two decimals
func (p *Printer) Correlation(m stats.CorrelationMatrix) {
	fmt.Fprintln(p.w, "Correlation Matrix:")
	table := p.newTable(append([]string{""}, m.Columns...)...)
	for i, name := range m.Columns {
		row := []string{name}
		for j := range m.Columns {
			row = append(row, formatFloat(m.Values[i][j], 2))
		}
		table.Append(row)
	}
	table.Render()
}

// TTest prints a two-sample t-test result
func (p *Printer) TTest(r stats.TTestResult) {
	kind := "Student"
	if !r.EqualVariance {
		kind = "Welch"
	}
	fmt.Fprintf(p.w, "T-Test Results (%s):\n", kind)

	table := p.newTable("", r.ColumnA, r.ColumnB)
	table.Append([]string{"n", strconv.Itoa(r.NA), strconv.Itoa(r.NB)})
	table.Append([]string{"mean", formatFloat(r.MeanA, 4), formatFloat(r.MeanB, 4)})
	table.Render()

	fmt.Fprintf(p.w, "T-Statistic: %s\n", formatFloat(r.TStatistic, 6))
	fmt.Fprintf(p.w, "Degrees of Freedom: %s\n", formatFloat(r.DegreesOfFreedom, 2))
	fmt.Fprintf(p.w, "P-Value: %s\n", formatFloat(r.PValue, 6))
}

// Regression prints an OLS summary: fit statistics then the coefficient table
func (p *Printer) Regression(r stats.RegressionResult) {
	fmt.Fprintln(p.w, "Regression Analysis Results:")
	fmt.Fprintf(p.w, "Dep. Variable: %s\n", r.Dependent)
	fmt.Fprintf(p.w, "No. Observations: %d", r.N)
	if r.DroppedRows > 0 {
		fmt.Fprintf(p.w, " (%d incomplete rows dropped)", r.DroppedRows)
	}
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "R-squared: %s    Adj. R-squared: %s\n", formatFloat(r.RSquared, 4), formatFloat(r.AdjRSquared, 4))
	fmt.Fprintf(p.w, "F-statistic: %s    Prob (F-statistic): %s\n", formatFloat(r.FStatistic, 4), formatFloat(r.FPValue, 4))
	fmt.Fprintf(p.w, "Residual Std. Error: %s\n", formatFloat(r.ResidualStd, 4))

	table := p.newTable("", "coef", "std err", "t", "P>|t|")
	for _, c := range r.Coefficients {
		table.Append([]string{
			c.Name,
			formatFloat(c.Estimate, 4),
			formatFloat(c.StdError, 4),
			formatFloat(c.TValue, 3),
			formatFloat(c.PValue, 3),
		})
	}
	table.Render()
}

func formatFloat(f float64, prec int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', prec, 64)
}
