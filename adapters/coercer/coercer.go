package coercer

import (
	"math"
	"strconv"
	"strings"

	"goexplore/domain/dataset"
)

// DefaultNAMarkers are the cell texts read as missing, matching common spreadsheet exports
var DefaultNAMarkers = []string{
	"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan", "null", "NULL", "None", "#N/A", "#NA", "<NA>",
}

// TypeCoercer turns raw cell text into typed table values
type TypeCoercer struct {
	config CoercionConfig
	na     map[string]bool
}

// CoercionConfig defines the coercion thresholds and rules
type CoercionConfig struct {
	NAMarkers        []string `json:"na_markers"`
	NumericThreshold float64  `json:"numeric_threshold"` // share of present cells that must parse as numbers
	LenientNumbers   bool     `json:"lenient_numbers"`   // accept currency, thousands separators, (neg)
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NAMarkers:        DefaultNAMarkers,
		NumericThreshold: 1.0, // a single text cell keeps the whole column textual
		LenientNumbers:   false,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	na := make(map[string]bool, len(config.NAMarkers))
	for _, m := range config.NAMarkers {
		na[m] = true
	}
	return &TypeCoercer{config: config, na: na}
}

// IsMissing reports whether the raw text marks an absent value
func (c *TypeCoercer) IsMissing(raw string) bool {
	return c.na[strings.TrimSpace(raw)]
}

// CoerceValue converts a single cell on its own, without column context
func (c *TypeCoercer) CoerceValue(raw string) dataset.Value {
	s := strings.TrimSpace(raw)
	if c.na[s] {
		return dataset.Missing()
	}
	if f, ok := c.tryParseNumeric(s); ok {
		return dataset.Number(f)
	}
	return dataset.Text(s)
}

// CoerceColumn converts one column of raw cells. The column becomes numeric when
// the numeric share of present cells reaches the threshold; cells that then fail
// to parse are read as missing. Otherwise every present cell is kept as text.
func (c *TypeCoercer) CoerceColumn(raw []string) []dataset.Value {
	analysis := c.AnalyzeTypeDistribution(raw)
	out := make([]dataset.Value, len(raw))

	numeric := analysis.ValidCount > 0 && analysis.NumericRatio >= c.config.NumericThreshold
	for i, cell := range raw {
		s := strings.TrimSpace(cell)
		if c.na[s] {
			out[i] = dataset.Missing()
			continue
		}
		if numeric {
			if f, ok := c.tryParseNumeric(s); ok {
				out[i] = dataset.Number(f)
			} else {
				out[i] = dataset.Missing()
			}
			continue
		}
		out[i] = dataset.Text(s)
	}
	return out
}

// AnalyzeTypeDistribution counts how many present cells parse as numbers
func (c *TypeCoercer) AnalyzeTypeDistribution(values []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(values)}

	for _, v := range values {
		s := strings.TrimSpace(v)
		if c.na[s] {
			continue
		}
		analysis.ValidCount++
		if _, ok := c.tryParseNumeric(s); ok {
			analysis.NumericCount++
		}
	}

	if analysis.ValidCount > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(analysis.ValidCount)
	}
	analysis.RecommendedKind = dataset.ColumnEmpty
	switch {
	case analysis.ValidCount == 0:
	case analysis.NumericRatio >= c.config.NumericThreshold:
		analysis.RecommendedKind = dataset.ColumnNumeric
	default:
		analysis.RecommendedKind = dataset.ColumnCategorical
	}

	return analysis
}

// tryParseNumeric parses plain floats; in lenient mode it also accepts
// currency symbols, thousands separators and (123) negatives.
func (c *TypeCoercer) tryParseNumeric(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}

	if !c.config.LenientNumbers {
		val, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
			return 0, false
		}
		return val, true
	}

	cleanVal := s
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY", "%"} {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}
	cleanVal = strings.TrimSpace(cleanVal)

	hasComma := strings.Contains(cleanVal, ",")
	hasPeriod := strings.Contains(cleanVal, ".")
	hasSpace := strings.Contains(cleanVal, " ")

	// 1.234,56 and 1 234,56 use the comma as decimal separator
	if hasComma && (hasPeriod || hasSpace) {
		commaIdx := strings.LastIndex(cleanVal, ",")
		if commaIdx > strings.LastIndex(cleanVal, ".") {
			cleanVal = strings.ReplaceAll(cleanVal, ".", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		} else {
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		}
	} else {
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		cleanVal = strings.ReplaceAll(cleanVal, " ", "")
	}

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount      int                `json:"total_count"`
	ValidCount      int                `json:"valid_count"`
	NumericCount    int                `json:"numeric_count"`
	NumericRatio    float64            `json:"numeric_ratio"`
	RecommendedKind dataset.ColumnKind `json:"recommended_kind"`
}
