package stats

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"goexplore/domain/dataset"
)

// Statistic names, in the order they are reported
const (
	StatCount  = "count"
	StatMean   = "mean"
	StatStd    = "std"
	StatMin    = "min"
	StatQ25    = "25%"
	StatMedian = "50%"
	StatQ75    = "75%"
	StatMax    = "max"
	StatUnique = "unique"
	StatTop    = "top"
	StatFreq   = "freq"
)

// StatValue is either a number or, for "top", a text value
type StatValue struct {
	Num    float64
	Text   string
	IsText bool
}

// Num wraps a numeric statistic
func Num(f float64) StatValue { return StatValue{Num: f} }

// Str wraps a text statistic
func Str(s string) StatValue { return StatValue{Text: s, IsText: true} }

func (v StatValue) String() string {
	if v.IsText {
		return v.Text
	}
	if math.IsNaN(v.Num) {
		return "NaN"
	}
	return strconv.FormatFloat(v.Num, 'g', 6, 64)
}

// MarshalJSON writes numbers as JSON numbers and non-finite numbers as null
func (v StatValue) MarshalJSON() ([]byte, error) {
	if v.IsText {
		return json.Marshal(v.Text)
	}
	if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v.Num, 'g', -1, 64)), nil
}

// Stat is one named statistic
type Stat struct {
	Name  string
	Value StatValue
}

// ColumnSummary holds the type-appropriate statistics of one column
type ColumnSummary struct {
	Column string
	Kind   dataset.ColumnKind
	Stats  []Stat
}

// Get looks a statistic up by name
func (c ColumnSummary) Get(name string) (StatValue, bool) {
	for _, s := range c.Stats {
		if s.Name == name {
			return s.Value, true
		}
	}
	return StatValue{}, false
}

// Summary maps column name to statistics, preserving table column order
type Summary struct {
	Columns []ColumnSummary
}

// Column looks a column summary up by name
func (s Summary) Column(name string) (ColumnSummary, bool) {
	for _, c := range s.Columns {
		if c.Column == name {
			return c, true
		}
	}
	return ColumnSummary{}, false
}

// MarshalJSON writes {"column": {"stat": value, ...}, ...} in column and statistic order
func (s Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range s.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col.Column)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteByte('{')
		for j, st := range col.Stats {
			if j > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(st.Name)
			if err != nil {
				return nil, err
			}
			value, err := st.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MissingColumn is the missing-cell tally of one column
type MissingColumn struct {
	Column  string
	Missing int
	Percent float64 // rounded to two decimals
}

// MissingSummary lists missing-cell tallies in column order
type MissingSummary struct {
	Rows    int
	Columns []MissingColumn
}

// Total returns the number of missing cells in the table
func (m MissingSummary) Total() int {
	total := 0
	for _, c := range m.Columns {
		total += c.Missing
	}
	return total
}

// CorrelationMatrix holds pairwise Pearson coefficients over numeric columns
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// At returns the coefficient for a pair of columns
func (m CorrelationMatrix) At(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, name := range m.Columns {
		if name == a {
			i = k
		}
		if name == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return m.Values[i][j], true
}

// TTestResult reports an independent two-sample t-test
type TTestResult struct {
	ColumnA          string  `json:"column_a"`
	ColumnB          string  `json:"column_b"`
	NA               int     `json:"n_a"`
	NB               int     `json:"n_b"`
	MeanA            float64 `json:"mean_a"`
	MeanB            float64 `json:"mean_b"`
	TStatistic       float64 `json:"t_statistic"`
	DegreesOfFreedom float64 `json:"degrees_of_freedom"`
	PValue           float64 `json:"p_value"`
	EqualVariance    bool    `json:"equal_variance"`
}

// Coefficient is one fitted OLS parameter
type Coefficient struct {
	Name     string  `json:"name"`
	Estimate float64 `json:"estimate"`
	StdError float64 `json:"std_error"`
	TValue   float64 `json:"t_value"`
	PValue   float64 `json:"p_value"`
}

// RegressionResult reports a simple OLS fit with an intercept
type RegressionResult struct {
	Independent  string        `json:"independent"`
	Dependent    string        `json:"dependent"`
	N            int           `json:"n"`
	DroppedRows  int           `json:"dropped_rows"`
	Coefficients []Coefficient `json:"coefficients"` // const first, then slope
	RSquared     float64       `json:"r_squared"`
	AdjRSquared  float64       `json:"adj_r_squared"`
	FStatistic   float64       `json:"f_statistic"`
	FPValue      float64       `json:"f_p_value"`
	ResidualStd  float64       `json:"residual_std"`
}

// Intercept returns the constant term
func (r RegressionResult) Intercept() Coefficient { return r.Coefficients[0] }

// Slope returns the coefficient of the independent variable
func (r RegressionResult) Slope() Coefficient { return r.Coefficients[1] }

// FieldInfo describes one column of a table
type FieldInfo struct {
	Name    string
	Kind    dataset.ColumnKind
	NonNull int
}

// TableInfo is the shape of a table: its size and per-column kind and non-null count
type TableInfo struct {
	Rows    int
	Columns int
	Fields  []FieldInfo
}
