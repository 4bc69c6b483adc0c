package gonumplot

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"goexplore/domain/chart"
	"goexplore/internal"
	apperrors "goexplore/internal/errors"

	"github.com/pkg/browser"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Config controls where charts go and how big they are
type Config struct {
	Dir    string
	Width  float64 // inches
	Height float64 // inches
	Open   bool    // open each chart with the system viewer
}

// DefaultConfig matches a 10x6 inch figure written under ./charts
func DefaultConfig() Config {
	return Config{Dir: "charts", Width: 10, Height: 6}
}

// Renderer draws chart specifications to PNG files with gonum/plot
type Renderer struct {
	config Config
	logger *internal.Logger
	seq    int
	open   func(path string) error
	now    func() time.Time
}

// NewRenderer creates a renderer; a nil logger uses the default logger
func NewRenderer(cfg Config, logger *internal.Logger) *Renderer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultConfig().Width
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultConfig().Height
	}
	return &Renderer{
		config: cfg,
		logger: logger,
		open:   browser.OpenFile,
		now:    time.Now,
	}
}

// Render draws spec, saves it as a PNG and returns the file path
func (r *Renderer) Render(spec chart.Spec) (string, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	var err error
	switch spec.Kind {
	case chart.KindHistogram:
		err = addHistogram(p, spec)
	case chart.KindScatter:
		err = addScatter(p, spec)
	case chart.KindLine:
		err = addLine(p, spec)
	case chart.KindBoxplot:
		err = addBoxplot(p, spec)
	case chart.KindBar:
		err = addBar(p, spec)
	case chart.KindHeatmap:
		err = addHeatmap(p, spec)
	case chart.KindPie:
		err = addPie(p, spec)
	default:
		err = fmt.Errorf("no renderer for %q charts", spec.Kind)
	}
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.config.Dir, 0o755); err != nil {
		return "", apperrors.IOError("create chart directory", r.config.Dir, err)
	}
	path := filepath.Join(r.config.Dir, r.fileName(spec))

	width, height := vg.Length(r.config.Width)*vg.Inch, vg.Length(r.config.Height)*vg.Inch
	if spec.Kind == chart.KindHeatmap || spec.Kind == chart.KindPie {
		height = width * 0.8
	}
	if err := p.Save(width, height, path); err != nil {
		return "", apperrors.IOError("save chart", path, err)
	}
	r.logger.Info("[PlotRenderer] %s chart saved to %s", spec.Kind, path)

	if r.config.Open {
		if err := r.open(path); err != nil {
			r.logger.Warn("[PlotRenderer] %v", apperrors.ExternalServiceError("chart viewer", err))
		}
	}
	return path, nil
}

func (r *Renderer) fileName(spec chart.Spec) string {
	r.seq++
	return fmt.Sprintf("%s_%s_%03d_%s.png", spec.Kind, r.now().Format("20060102-150405"), r.seq, slug(spec.Title))
}

// slug keeps letters and digits of a title, joined by underscores
func slug(title string) string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})
	s := strings.Join(fields, "_")
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}

func addHistogram(p *plot.Plot, spec chart.Spec) error {
	bins := spec.Bins
	if bins <= 0 {
		bins = sturges(len(spec.Values))
	}
	hist, err := plotter.NewHist(plotter.Values(spec.Values), bins)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	hist.Normalize(1)
	hist.FillColor = plotutil.Color(0)
	p.Add(hist)

	if spec.Overlay != nil && len(spec.Overlay.Points) > 1 {
		line, err := plotter.NewLine(xys(spec.Overlay.Points))
		if err != nil {
			return fmt.Errorf("density overlay: %w", err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = color.RGBA{R: 200, G: 40, B: 40, A: 255}
		p.Add(line)
		p.Legend.Add(spec.Overlay.Label, line)
	}
	return nil
}

// sturges picks ceil(log2 n) + 1 bins
func sturges(n int) int {
	if n < 2 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

func addScatter(p *plot.Plot, spec chart.Spec) error {
	sc, err := plotter.NewScatter(xys(spec.Points))
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	sc.GlyphStyle.Color = plotutil.Color(0)
	sc.GlyphStyle.Radius = vg.Points(3)
	p.Add(sc, plotter.NewGrid())
	return nil
}

func addLine(p *plot.Plot, spec chart.Spec) error {
	line, points, err := plotter.NewLinePoints(xys(spec.Points))
	if err != nil {
		return fmt.Errorf("line: %w", err)
	}
	line.LineStyle.Color = plotutil.Color(0)
	points.GlyphStyle.Color = plotutil.Color(0)
	p.Add(line, points, plotter.NewGrid())
	return nil
}

func addBoxplot(p *plot.Plot, spec chart.Spec) error {
	labels := make([]string, len(spec.Groups))
	for i, g := range spec.Groups {
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), plotter.Values(g.Values))
		if err != nil {
			return fmt.Errorf("boxplot %q: %w", g.Label, err)
		}
		box.FillColor = plotutil.Color(i)
		p.Add(box)
		labels[i] = g.Label
	}
	p.NominalX(labels...)
	return nil
}

func addBar(p *plot.Plot, spec chart.Spec) error {
	bars, err := plotter.NewBarChart(plotter.Values(spec.Values), vg.Points(24))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars, plotter.NewGrid())
	p.NominalX(spec.Labels...)
	return nil
}

func addHeatmap(p *plot.Plot, spec chart.Spec) error {
	if len(spec.Matrix) == 0 || len(spec.Matrix) != len(spec.Labels) {
		return fmt.Errorf("heatmap needs a square matrix matching its labels")
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)

	hm := plotter.NewHeatMap(matrixGrid(spec.Matrix), colors.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 200}
	p.Add(hm)

	labels, err := cellLabels(spec.Matrix)
	if err != nil {
		return err
	}
	p.Add(labels)

	p.NominalX(spec.Labels...)
	p.NominalY(spec.Labels...)
	p.X.Label.Text, p.Y.Label.Text = "", ""
	return nil
}

func addPie(p *plot.Plot, spec chart.Spec) error {
	pie, err := newPieChart(spec.Labels, spec.Values)
	if err != nil {
		return err
	}
	p.HideAxes()
	p.Add(pie)
	pie.addLegend(p)
	return nil
}

func xys(points []chart.Point) plotter.XYs {
	out := make(plotter.XYs, len(points))
	for i, pt := range points {
		out[i].X, out[i].Y = pt.X, pt.Y
	}
	return out
}

// matrixGrid adapts a square row-major matrix to plotter.GridXYZ.
// Row 0 is drawn at the top.
type matrixGrid [][]float64

func (m matrixGrid) Dims() (c, r int)   { return len(m), len(m) }
func (m matrixGrid) Z(c, r int) float64 { return m[len(m)-1-r][c] }
func (m matrixGrid) X(c int) float64    { return float64(c) }
func (m matrixGrid) Y(r int) float64    { return float64(r) }

// cellLabels annotates each heatmap cell with its coefficient
func cellLabels(m [][]float64) (*plotter.Labels, error) {
	n := len(m)
	data := plotter.XYLabels{XYs: make(plotter.XYs, 0, n*n), Labels: make([]string, 0, n*n)}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			data.XYs = append(data.XYs, plotter.XY{X: float64(c), Y: float64(n - 1 - r)})
			data.Labels = append(data.Labels, fmt.Sprintf("%.2f", m[r][c]))
		}
	}
	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, fmt.Errorf("heatmap labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = -0.5
		labels.TextStyle[i].YAlign = -0.5
	}
	return labels, nil
}
