package dataset

import (
	"strconv"
)

// ValueKind defines the storage type of a single cell
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindNumber
	KindText
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "missing"
	}
}

// Value is one table cell. The zero Value is missing.
type Value struct {
	Kind ValueKind
	Num  float64
	Text string
}

// Missing returns a missing cell
func Missing() Value { return Value{} }

// Number returns a numeric cell
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Text returns a text cell
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// IsMissing reports whether the cell is absent
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// String formats the cell for display; missing cells render as NaN.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindText:
		return v.Text
	default:
		return "NaN"
	}
}

// ColumnKind is derived from the cells a column currently holds
type ColumnKind string

const (
	ColumnNumeric     ColumnKind = "numeric"
	ColumnCategorical ColumnKind = "categorical"
	ColumnEmpty       ColumnKind = "empty"
)

// Column is a named, ordered sequence of cells
type Column struct {
	Name   string
	Values []Value
}
