package testkit

import (
	"encoding/csv"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/stat/distuv"
)

// WriteCSV writes rows (header first) to name inside a per-test temp dir and returns the path
func WriteCSV(tb testing.TB, name string, rows [][]string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)

	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteXLSX writes rows (header first) to the given sheet of a new workbook and returns the path.
// Cells keep their Go types, so numbers are stored as numbers.
func WriteXLSX(tb testing.TB, name, sheet string, rows [][]interface{}) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			tb.Fatalf("rename sheet: %v", err)
		}
	} else {
		sheet = "Sheet1"
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			tb.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			tb.Fatalf("write row %d: %v", i, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		tb.Fatalf("save %s: %v", path, err)
	}
	return path
}

// Generator produces reproducible synthetic columns
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with a fixed seed
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Normal draws n values from N(mu, sigma) by inverse-transform sampling
func (g *Generator) Normal(n int, mu, sigma float64) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma}
	out := make([]float64, n)
	for i := range out {
		p := g.rng.Float64()
		for p == 0 {
			p = g.rng.Float64()
		}
		out[i] = dist.Quantile(p)
	}
	return out
}

// Linear returns x = 1..n and y = slope*x + intercept plus N(0, noise) jitter
func (g *Generator) Linear(n int, slope, intercept, noise float64) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	var jitter []float64
	if noise > 0 {
		jitter = g.Normal(n, 0, noise)
	}
	for i := range xs {
		xs[i] = float64(i + 1)
		ys[i] = slope*xs[i] + intercept
		if jitter != nil {
			ys[i] += jitter[i]
		}
	}
	return xs, ys
}

// Columns joins equally long columns into CSV rows under header.
// NaN values become empty cells.
func Columns(header []string, columns ...[]float64) [][]string {
	rows := [][]string{header}
	if len(columns) == 0 {
		return rows
	}
	for i := range columns[0] {
		row := make([]string, len(columns))
		for j, c := range columns {
			if math.IsNaN(c[i]) {
				continue
			}
			row[j] = strconv.FormatFloat(c[i], 'g', -1, 64)
		}
		rows = append(rows, row)
	}
	return rows
}
