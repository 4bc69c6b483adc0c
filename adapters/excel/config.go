package excel

import (
	"goexplore/adapters/coercer"
)

// ReaderConfig holds configuration for reading CSV and Excel sources
type ReaderConfig struct {
	Sheet          string                 `json:"sheet"`         // empty reads the first sheet
	CSVDelimiter   rune                   `json:"csv_delimiter"` // zero means ','
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
}

// DefaultReaderConfig returns sensible defaults for file loading
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}
}
