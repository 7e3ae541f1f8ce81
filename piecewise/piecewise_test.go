package piecewise

import (
	"errors"
	"math"
	"testing"
)

func bilinear(x []float64, breakX, slopeL, interceptL, slopeR float64) []float64 {
	yAtBreak := slopeL*breakX + interceptL
	y := make([]float64, len(x))
	for i, v := range x {
		if v <= breakX {
			y[i] = slopeL*v + interceptL
		} else {
			y[i] = yAtBreak + slopeR*(v-breakX)
		}
	}
	return y
}

func TestFitRecoversExactBreakpoint(t *testing.T) {
	x := []float64{4, 5, 6, 7, 8, 9, 10, 11, 12}
	y := bilinear(x, 8, 6, 50, 2)

	fit, err := NewLeastSquares().Fit(x, y)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	if math.Abs(fit.BreakX-8) > 1e-6 {
		t.Fatalf("breakpoint = %v, want 8", fit.BreakX)
	}
	if math.Abs(fit.Left.Slope-6) > 1e-6 || math.Abs(fit.Right.Slope-2) > 1e-6 {
		t.Fatalf("slopes = %v / %v, want 6 / 2", fit.Left.Slope, fit.Right.Slope)
	}
	if len(fit.Curve) != len(x) {
		t.Fatalf("curve has %d points, want %d", len(fit.Curve), len(x))
	}
	for i := 1; i < len(fit.Curve); i++ {
		if fit.Curve[i].X < fit.Curve[i-1].X {
			t.Fatalf("curve x values not sorted at %d", i)
		}
	}
	for _, p := range fit.Curve {
		want := bilinear([]float64{p.X}, 8, 6, 50, 2)[0]
		if math.Abs(p.Y-want) > 1e-6 {
			t.Fatalf("curve at x=%v is %v, want %v", p.X, p.Y, want)
		}
	}
}

func TestFitUnsortedInput(t *testing.T) {
	x := []float64{12, 4, 9, 7, 5, 11, 8, 6, 10}
	y := bilinear(x, 8, 6, 50, 2)

	fit, err := NewLeastSquares().Fit(x, y)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	if math.Abs(fit.BreakX-8) > 1e-6 {
		t.Fatalf("breakpoint = %v, want 8", fit.BreakX)
	}
}

func TestFitTooFewLevels(t *testing.T) {
	x := []float64{6, 7, 8, 6, 7, 8}
	y := []float64{120, 130, 145, 121, 131, 144}

	_, err := NewLeastSquares().Fit(x, y)
	var nf *FitNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Fit() error = %v, want FitNotFoundError", err)
	}
}

func TestFitParallelSegments(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 3*v + 10
	}

	_, err := NewLeastSquares().Fit(x, y)
	var nf *FitNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Fit() error = %v, want FitNotFoundError for collinear data", err)
	}
}

func TestFitLengthMismatch(t *testing.T) {
	if _, err := NewLeastSquares().Fit([]float64{1, 2, 3}, []float64{1, 2}); err == nil {
		t.Fatalf("Fit() accepted mismatched vectors")
	}
}

func TestSegmentAt(t *testing.T) {
	s := Segment{Slope: 2, Intercept: 1}
	if got := s.At(3); got != 7 {
		t.Fatalf("At(3) = %v, want 7", got)
	}
}
