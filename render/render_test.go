package render

import (
	"bytes"
	"image/png"
	"testing"

	"ramptest"
)

func fittedFixture(t *testing.T) ([]ramptest.Pair, *ramptest.Threshold) {
	t.Helper()
	pairs := make([]ramptest.Pair, 0, 9)
	for v := 6.0; v <= 14; v++ {
		hr := 80 + 8*v
		if v > 10 {
			hr = 160 + 4*(v-10)
		}
		pairs = append(pairs, ramptest.Pair{SpeedKPH: v, HeartRate: hr})
	}
	th, err := ramptest.FitThreshold(pairs, nil)
	if err != nil {
		t.Fatalf("FitThreshold() error: %v", err)
	}
	return pairs, th
}

func TestPlotProducesPNG(t *testing.T) {
	pairs, th := fittedFixture(t)

	data, err := Plot(pairs, th, Options{Title: "Ramp test"})
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != defaultWidth || bounds.Dy() != defaultHeight {
		t.Fatalf("image is %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), defaultWidth, defaultHeight)
	}
}

func TestPlotCustomSize(t *testing.T) {
	pairs, th := fittedFixture(t)

	data, err := Plot(pairs, th, Options{Width: 400, Height: 300, TextSize: 8})
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 300 {
		t.Fatalf("image is %dx%d, want 400x300", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPlotRequiresData(t *testing.T) {
	if _, err := Plot(nil, nil, Options{}); err == nil {
		t.Fatalf("Plot() accepted empty input")
	}
}
