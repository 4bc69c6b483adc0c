package visualize

import (
	"fmt"
	"sort"

	"goexplore/domain/chart"
	"goexplore/domain/core"
	"goexplore/domain/dataset"
	"goexplore/internal"
	"goexplore/internal/analysis"
	"goexplore/ports"

	moremath "github.com/aclements/go-moremath/stats"
	"github.com/montanaflynn/stats"
)

// densityPoints is the number of samples taken along a density overlay
const densityPoints = 200

// Request names a chart type and the columns it draws. ColumnY is optional
// for some chart types; heatmaps use neither column.
type Request struct {
	Kind    string
	ColumnX string
	ColumnY string
}

// Dispatcher turns a request against a table into a chart specification and renders it
type Dispatcher struct {
	renderer ports.ChartRenderer
	bins     int
	logger   *internal.Logger
}

// Option customizes a Dispatcher
type Option func(*Dispatcher)

// WithBins fixes the histogram bin count; zero lets the renderer choose
func WithBins(bins int) Option {
	return func(d *Dispatcher) { d.bins = bins }
}

// WithLogger routes dispatcher diagnostics to logger
func WithLogger(logger *internal.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// NewDispatcher creates a dispatcher drawing through renderer
func NewDispatcher(renderer ports.ChartRenderer, opts ...Option) *Dispatcher {
	d := &Dispatcher{renderer: renderer, logger: internal.DefaultLogger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch validates req against table, builds the chart and returns where the renderer put it
func (d *Dispatcher) Dispatch(table *dataset.Table, req Request) (string, error) {
	spec, err := d.Build(table, req)
	if err != nil {
		return "", err
	}

	d.logger.Debug("[Visualize] rendering %s chart %q", spec.Kind, spec.Title)
	path, err := d.renderer.Render(spec)
	if err != nil {
		return "", fmt.Errorf("failed to render %s chart: %w", spec.Kind, err)
	}
	return path, nil
}

// Build produces the chart specification for req without rendering it
func (d *Dispatcher) Build(table *dataset.Table, req Request) (chart.Spec, error) {
	kind, ok := chart.ParseKind(req.Kind)
	if !ok {
		return chart.Spec{}, core.NewUnsupportedChartError(req.Kind)
	}

	if kind == chart.KindHeatmap {
		return heatmap(table)
	}

	if req.ColumnX == "" {
		return chart.Spec{}, core.NewMissingArgumentError("column_x", string(kind))
	}
	x, ok := table.Column(req.ColumnX)
	if !ok {
		return chart.Spec{}, core.NewInvalidColumnError(req.ColumnX)
	}

	var y *dataset.Column
	if req.ColumnY != "" {
		if y, ok = table.Column(req.ColumnY); !ok {
			return chart.Spec{}, core.NewInvalidColumnError(req.ColumnY)
		}
	}

	switch kind {
	case chart.KindHistogram:
		return d.histogram(x)
	case chart.KindScatter, chart.KindLine:
		if y == nil {
			return chart.Spec{}, core.NewMissingArgumentError("column_y", string(kind))
		}
		return xy(kind, x, y)
	case chart.KindBoxplot:
		return boxplot(x, y)
	case chart.KindBar:
		return bar(x, y)
	case chart.KindPie:
		return pie(x)
	}
	return chart.Spec{}, core.NewUnsupportedChartError(req.Kind)
}

func (d *Dispatcher) histogram(x *dataset.Column) (chart.Spec, error) {
	values, err := numericValues(x)
	if err != nil {
		return chart.Spec{}, err
	}

	return chart.Spec{
		Kind:    chart.KindHistogram,
		Title:   fmt.Sprintf("Histogram of %s", x.Name),
		XLabel:  x.Name,
		YLabel:  "Density",
		Values:  values,
		Bins:    d.bins,
		Overlay: density(values),
	}, nil
}

// density samples a Gaussian kernel density estimate across the range of values.
// It returns nil when the values have no spread.
func density(values []float64) *chart.Curve {
	sample := moremath.Sample{Xs: values}
	if len(values) < 2 || sample.StdDev() == 0 {
		return nil
	}

	kde := &moremath.KDE{Sample: sample}
	lo, hi := sample.Bounds()
	step := (hi - lo) / float64(densityPoints-1)

	curve := &chart.Curve{Label: "KDE", Points: make([]chart.Point, densityPoints)}
	for i := range curve.Points {
		at := lo + float64(i)*step
		curve.Points[i] = chart.Point{X: at, Y: kde.PDF(at)}
	}
	return curve
}

func xy(kind chart.Kind, x, y *dataset.Column) (chart.Spec, error) {
	xs, ys, _, err := dataset.PairedFloats(x, y)
	if err != nil {
		return chart.Spec{}, err
	}
	if len(xs) == 0 {
		return chart.Spec{}, core.NewInsufficientDataError(fmt.Sprintf("no rows with both %s and %s", x.Name, y.Name))
	}

	points := make([]chart.Point, len(xs))
	for i := range xs {
		points[i] = chart.Point{X: xs[i], Y: ys[i]}
	}

	title := fmt.Sprintf("Scatter Plot: %s vs %s", x.Name, y.Name)
	if kind == chart.KindLine {
		sort.SliceStable(points, func(i, j int) bool { return points[i].X < points[j].X })
		title = fmt.Sprintf("Line Plot: %s vs %s", x.Name, y.Name)
	}

	return chart.Spec{Kind: kind, Title: title, XLabel: x.Name, YLabel: y.Name, Points: points}, nil
}

// boxplot draws numeric y grouped by the values of x, or a single box of x
func boxplot(x, y *dataset.Column) (chart.Spec, error) {
	if y == nil {
		values, err := numericValues(x)
		if err != nil {
			return chart.Spec{}, err
		}
		return chart.Spec{
			Kind:   chart.KindBoxplot,
			Title:  fmt.Sprintf("Boxplot of %s", x.Name),
			YLabel: x.Name,
			Groups: []chart.Group{{Label: x.Name, Values: values}},
		}, nil
	}

	if y.Kind() == dataset.ColumnCategorical {
		return chart.Spec{}, core.NewNonNumericColumnError(y.Name)
	}

	labels, byLabel := groupBy(x, y)
	if len(labels) == 0 {
		return chart.Spec{}, core.NewInsufficientDataError(fmt.Sprintf("no rows with both %s and %s", x.Name, y.Name))
	}

	groups := make([]chart.Group, len(labels))
	for i, label := range labels {
		groups[i] = chart.Group{Label: label, Values: byLabel[label]}
	}
	return chart.Spec{
		Kind:   chart.KindBoxplot,
		Title:  fmt.Sprintf("Boxplot: %s vs %s", x.Name, y.Name),
		XLabel: x.Name,
		YLabel: y.Name,
		Groups: groups,
	}, nil
}

// bar draws the mean of numeric y per category of x, or category counts when y is nil
func bar(x, y *dataset.Column) (chart.Spec, error) {
	if y == nil {
		labels, counts := countBy(x)
		if len(labels) == 0 {
			return chart.Spec{}, core.NewInsufficientDataError(fmt.Sprintf("%s has no values", x.Name))
		}
		return chart.Spec{
			Kind:   chart.KindBar,
			Title:  fmt.Sprintf("Bar Chart: %s", x.Name),
			XLabel: x.Name,
			YLabel: "Count",
			Labels: labels,
			Values: counts,
		}, nil
	}

	if y.Kind() == dataset.ColumnCategorical {
		return chart.Spec{}, core.NewNonNumericColumnError(y.Name)
	}

	labels, byLabel := groupBy(x, y)
	if len(labels) == 0 {
		return chart.Spec{}, core.NewInsufficientDataError(fmt.Sprintf("no rows with both %s and %s", x.Name, y.Name))
	}

	heights := make([]float64, len(labels))
	for i, label := range labels {
		heights[i], _ = stats.Mean(byLabel[label])
	}
	return chart.Spec{
		Kind:   chart.KindBar,
		Title:  fmt.Sprintf("Bar Chart: %s vs %s", x.Name, y.Name),
		XLabel: x.Name,
		YLabel: fmt.Sprintf("mean %s", y.Name),
		Labels: labels,
		Values: heights,
	}, nil
}

func pie(x *dataset.Column) (chart.Spec, error) {
	labels, counts := countBy(x)
	if len(labels) == 0 {
		return chart.Spec{}, core.NewInsufficientDataError(fmt.Sprintf("%s has no values", x.Name))
	}
	return chart.Spec{
		Kind:   chart.KindPie,
		Title:  fmt.Sprintf("Pie Chart of %s", x.Name),
		Labels: labels,
		Values: counts,
	}, nil
}

func heatmap(table *dataset.Table) (chart.Spec, error) {
	m, err := analysis.Correlation(table)
	if err != nil {
		return chart.Spec{}, err
	}
	return chart.Spec{
		Kind:   chart.KindHeatmap,
		Title:  "Correlation Matrix",
		Labels: m.Columns,
		Matrix: m.Values,
	}, nil
}

// RenderMatrix draws an already computed correlation matrix as a heatmap
func (d *Dispatcher) RenderMatrix(labels []string, matrix [][]float64) (string, error) {
	spec := chart.Spec{Kind: chart.KindHeatmap, Title: "Correlation Matrix", Labels: labels, Matrix: matrix}
	path, err := d.renderer.Render(spec)
	if err != nil {
		return "", fmt.Errorf("failed to render %s chart: %w", spec.Kind, err)
	}
	return path, nil
}

func numericValues(c *dataset.Column) ([]float64, error) {
	if c.Kind() == dataset.ColumnCategorical {
		return nil, core.NewNonNumericColumnError(c.Name)
	}
	values, err := c.Floats()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, core.NewInsufficientDataError(fmt.Sprintf("%s has no values", c.Name))
	}
	return values, nil
}

// groupBy collects the numeric y values per display value of x, labels in first-seen order
func groupBy(x, y *dataset.Column) ([]string, map[string][]float64) {
	var labels []string
	byLabel := make(map[string][]float64)
	for r := range x.Values {
		xv, yv := x.Values[r], y.Values[r]
		if xv.IsMissing() || yv.Kind != dataset.KindNumber {
			continue
		}
		label := xv.String()
		if _, seen := byLabel[label]; !seen {
			labels = append(labels, label)
		}
		byLabel[label] = append(byLabel[label], yv.Num)
	}
	return labels, byLabel
}

// countBy counts the present values of c, labels in first-seen order
func countBy(c *dataset.Column) ([]string, []float64) {
	var labels []string
	index := make(map[string]int)
	var counts []float64
	for _, v := range c.Values {
		if v.IsMissing() {
			continue
		}
		label := v.String()
		i, seen := index[label]
		if !seen {
			i = len(labels)
			index[label] = i
			labels = append(labels, label)
			counts = append(counts, 0)
		}
		counts[i]++
	}
	return labels, counts
}
