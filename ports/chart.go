package ports

import (
	"goexplore/domain/chart"
)

// ChartRenderer draws a chart specification onto a chart surface
type ChartRenderer interface {
	// Render draws spec and returns where the chart was written
	Render(spec chart.Spec) (string, error)
}
