/*
NAME
  chart.go

DESCRIPTION
  chart.go renders a per-frame score line chart, letting a CLI user see
  where in a video quality dips rather than only the video-level average.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// FrameSeries is one metric's per-frame Avg score, indexed by frame
// number, for charting.
type FrameSeries struct {
	Name   string
	Values []float64
}

// WriteChart renders one or more per-frame score series to a PNG file at
// path, with frame index on the X axis and score on the Y axis.
func WriteChart(path string, title string, series []FrameSeries) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "score"

	for _, s := range series {
		pts := make(plotter.XYs, len(s.Values))
		for j, v := range s.Values {
			pts[j].X = float64(j)
			pts[j].Y = v
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("building line for %s: %w", s.Name, err)
		}
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
