package chart

// Kind is the chart-type tag a visualization request carries
type Kind string

const (
	KindHistogram Kind = "histogram"
	KindScatter   Kind = "scatter"
	KindBoxplot   Kind = "boxplot"
	KindLine      Kind = "line"
	KindBar       Kind = "bar"
	KindHeatmap   Kind = "heatmap"
	KindPie       Kind = "pie"
)

// Kinds lists every supported chart type
var Kinds = []Kind{KindHistogram, KindScatter, KindBoxplot, KindLine, KindBar, KindHeatmap, KindPie}

// ParseKind returns the Kind for s and whether it is supported
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return Kind(s), false
}

// Point is one x/y observation
type Point struct {
	X, Y float64
}

// Group is a labelled set of observations, one box of a boxplot
type Group struct {
	Label  string
	Values []float64
}

// Curve is a sampled function drawn over a chart, such as a density estimate
type Curve struct {
	Label  string
	Points []Point
}

// Spec is everything a renderer needs to draw one chart. Which fields are
// populated depends on Kind.
type Spec struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	Values  []float64 // histogram sample; bar heights; pie slice sizes
	Bins    int       // histogram bin count, zero for automatic
	Overlay *Curve    // histogram density

	Points []Point  // scatter and line
	Groups []Group  // boxplot
	Labels []string // bar and pie categories; heatmap axes

	Matrix [][]float64 // heatmap cells, row-major, len(Labels) square
}
