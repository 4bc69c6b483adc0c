package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"goexplore/domain/dataset"
	domainstats "goexplore/domain/stats"
	apperrors "goexplore/internal/errors"

	"github.com/tidwall/gjson"
)

// ExportSummary writes summary to path as a JSON object keyed by column name,
// indented with four spaces. An existing file is overwritten.
func ExportSummary(summary domainstats.Summary, path string) error {
	data, err := json.MarshalIndent(summary, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return apperrors.IOError("write summary to", path, err)
	}
	return nil
}

// LoadSummary reads a summary written by ExportSummary, keeping column and statistic order.
// null statistics come back as NaN.
func LoadSummary(path string) (domainstats.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domainstats.Summary{}, fmt.Errorf("failed to read summary: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return domainstats.Summary{}, fmt.Errorf("summary %s is not valid JSON", path)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return domainstats.Summary{}, fmt.Errorf("summary %s is not a JSON object", path)
	}

	var summary domainstats.Summary
	root.ForEach(func(key, value gjson.Result) bool {
		col := domainstats.ColumnSummary{Column: key.String(), Kind: dataset.ColumnEmpty}
		value.ForEach(func(name, v gjson.Result) bool {
			var sv domainstats.StatValue
			switch v.Type {
			case gjson.String:
				sv = domainstats.Str(v.String())
			case gjson.Number:
				sv = domainstats.Num(v.Float())
			default:
				sv = domainstats.Num(math.NaN())
			}
			col.Stats = append(col.Stats, domainstats.Stat{Name: name.String(), Value: sv})

			switch name.String() {
			case domainstats.StatTop, domainstats.StatUnique:
				col.Kind = dataset.ColumnCategorical
			case domainstats.StatMean:
				col.Kind = dataset.ColumnNumeric
			}
			return true
		})
		summary.Columns = append(summary.Columns, col)
		return true
	})
	return summary, nil
}
