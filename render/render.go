// Package render draws the heart-rate-vs-speed scatter with the fitted
// two-segment curve and threshold annotations as a PNG image.
package render

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ramptest"
)

// Options controls plot chrome. Zero values select the defaults.
type Options struct {
	// TextSize is the annotation size on the same 1..10 scale the form
	// surface exposes; 0 means the default of 5.
	TextSize float64
	Title    string
	Width    int
	Height   int
}

const (
	defaultTextSize = 5
	defaultWidth    = 900
	defaultHeight   = 600

	// fontPointsPerSize maps the form's text-size scale to font points.
	fontPointsPerSize = 2.2
)

// Plot renders the aggregated observations and the fitted threshold as a
// PNG and returns the encoded bytes.
func Plot(pairs []ramptest.Pair, th *ramptest.Threshold, opts Options) ([]byte, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no observations to plot")
	}
	if th == nil {
		return nil, fmt.Errorf("no fitted threshold to plot")
	}
	if opts.TextSize <= 0 {
		opts.TextSize = defaultTextSize
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	fontSize := opts.TextSize * fontPointsPerSize

	obsX := make([]float64, len(pairs))
	obsY := make([]float64, len(pairs))
	for i, p := range pairs {
		obsX[i] = p.SpeedKPH
		obsY[i] = p.HeartRate
	}

	fitX := make([]float64, len(th.Curve))
	fitY := make([]float64, len(th.Curve))
	for i, p := range th.Curve {
		fitX[i] = p.SpeedKPH
		fitY[i] = p.HeartRate
	}

	minY, maxY := obsY[0], obsY[0]
	for _, v := range obsY[1:] {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	pad := (maxY - minY) * 0.1
	if pad == 0 {
		pad = 5
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Heart rate",
			XValues: obsX,
			YValues: obsY,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    chart.ColorBlue,
			},
		},
		chart.ContinuousSeries{
			Name:    "Two-segment fit",
			XValues: fitX,
			YValues: fitY,
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: chart.ColorRed,
			},
		},
		chart.ContinuousSeries{
			Name:    "Threshold",
			XValues: []float64{th.SpeedKPH, th.SpeedKPH},
			YValues: []float64{minY - pad, maxY + pad},
			Style: chart.Style{
				StrokeWidth:     1,
				StrokeColor:     chart.ColorAlternateGray,
				StrokeDashArray: []float64{5, 5},
			},
		},
		chart.AnnotationSeries{
			Annotations: []chart.Value2{
				{XValue: th.SpeedKPH, YValue: maxY + pad, Label: th.Labels.Speed},
				{XValue: th.SpeedKPH, YValue: maxY + pad*0.4, Label: th.Labels.Pace},
				{XValue: th.SpeedKPH, YValue: th.HeartRateBPM, Label: th.Labels.HeartRate},
			},
			Style: chart.Style{
				FontSize:    fontSize,
				FontColor:   drawing.ColorBlack,
				StrokeColor: chart.ColorAlternateGray,
			},
		},
	}

	ch := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		XAxis:  chart.XAxis{Name: "Speed (km/h)"},
		YAxis: chart.YAxis{
			Name:  "Heart rate (bpm)",
			Range: &chart.ContinuousRange{Min: minY - pad, Max: maxY + pad*1.6},
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render plot: %w", err)
	}
	return buf.Bytes(), nil
}
