package gonumplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pieChart draws one wedge per category, clockwise from twelve o'clock
type pieChart struct {
	labels []string
	values []float64
	colors []color.Color
	total  float64
}

func newPieChart(labels []string, values []float64) (*pieChart, error) {
	if len(values) == 0 || len(labels) != len(values) {
		return nil, fmt.Errorf("pie chart needs one label per value")
	}

	pc := &pieChart{labels: labels, values: values, colors: make([]color.Color, len(values))}
	for i, v := range values {
		if v < 0 || math.IsNaN(v) {
			return nil, fmt.Errorf("pie chart value %v for %q is not a count", v, labels[i])
		}
		pc.total += v
		pc.colors[i] = plotutil.Color(i)
	}
	if pc.total == 0 {
		return nil, fmt.Errorf("pie chart has nothing to draw")
	}
	return pc, nil
}

// Plot implements plot.Plotter
func (pc *pieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	center := c.Center()
	radius := min(c.Max.X-c.Min.X, c.Max.Y-c.Min.Y) / 2 * 0.9

	start := math.Pi / 2
	for i, v := range pc.values {
		if v == 0 {
			continue
		}
		sweep := -2 * math.Pi * v / pc.total

		var wedge vg.Path
		wedge.Move(center)
		wedge.Line(vg.Point{
			X: center.X + radius*vg.Length(math.Cos(start)),
			Y: center.Y + radius*vg.Length(math.Sin(start)),
		})
		wedge.Arc(center, radius, start, sweep)
		wedge.Close()

		c.SetColor(pc.colors[i])
		c.Fill(wedge)
		c.SetColor(color.White)
		c.SetLineWidth(vg.Points(1))
		c.Stroke(wedge)

		start += sweep
	}
}

// DataRange implements plot.DataRanger so the hidden axes stay finite
func (pc *pieChart) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0, 1, 0, 1
}

func (pc *pieChart) addLegend(p *plot.Plot) {
	for i, label := range pc.labels {
		share := 100 * pc.values[i] / pc.total
		p.Legend.Add(fmt.Sprintf("%s (%.1f%%)", label, share), wedgeThumb{color: pc.colors[i]})
	}
	p.Legend.Top = true
}

// wedgeThumb is the legend swatch for one wedge
type wedgeThumb struct {
	color color.Color
}

// Thumbnail implements plot.Thumbnailer
func (w wedgeThumb) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(w.color, c.ClipPolygonY(pts))
}
