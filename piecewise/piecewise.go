// Package piecewise fits a two-segment linear model with an unknown
// breakpoint to (x, y) observations. The break is located by trying every
// split between adjacent distinct x levels, fitting each side by least
// squares, and keeping the split with the smallest total squared error. The
// reported breakpoint is the intersection of the two fitted lines.
package piecewise

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// minDistinctLevels is the smallest number of distinct x values that can
// support two non-degenerate segments.
const minDistinctLevels = 4

// FitNotFoundError reports that no valid two-segment fit exists for the
// data: too few distinct x levels, or no discernible bend.
type FitNotFoundError struct {
	Reason string
}

func (e *FitNotFoundError) Error() string {
	return "no two-segment fit found: " + e.Reason
}

// Point is one sample of the fitted curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is one fitted line, y = Slope*x + Intercept.
type Segment struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At evaluates the segment at x.
func (s Segment) At(x float64) float64 {
	return s.Slope*x + s.Intercept
}

// Fit is a completed two-segment fit. Curve holds the piecewise prediction
// sampled at the input x values, sorted ascending.
type Fit struct {
	BreakX float64 `json:"break_x"`
	Left   Segment `json:"left"`
	Right  Segment `json:"right"`
	Curve  []Point `json:"curve"`
}

// Fitter is the narrow contract the analysis core depends on, so any
// changepoint-regression routine can be substituted.
type Fitter interface {
	Fit(x, y []float64) (*Fit, error)
}

// LeastSquares is the default Fitter.
type LeastSquares struct{}

// NewLeastSquares returns the default exhaustive-split engine.
func NewLeastSquares() *LeastSquares {
	return &LeastSquares{}
}

// Fit implements Fitter.
func (ls *LeastSquares) Fit(x, y []float64) (*Fit, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("x and y length mismatch: %d vs %d", len(x), len(y))
	}

	pts := make([]Point, len(x))
	for i := range x {
		pts[i] = Point{X: x[i], Y: y[i]}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })

	levels := distinctLevels(pts)
	if len(levels) < minDistinctLevels {
		return nil, &FitNotFoundError{
			Reason: fmt.Sprintf("need at least %d distinct x levels, got %d", minDistinctLevels, len(levels)),
		}
	}

	var (
		best    Fit
		bestSSE = math.Inf(1)
		found   bool
	)
	// Each side needs two distinct levels for a defined slope.
	for k := 1; k <= len(levels)-3; k++ {
		cut := levels[k]
		left, right := splitAt(pts, cut)

		lSeg, ok := fitSegment(left)
		if !ok {
			continue
		}
		rSeg, ok := fitSegment(right)
		if !ok {
			continue
		}

		sse := segmentSSE(left, lSeg) + segmentSSE(right, rSeg)
		if sse < bestSSE {
			bestSSE = sse
			best = Fit{Left: lSeg, Right: rSeg}
			found = true
		}
	}
	if !found {
		return nil, &FitNotFoundError{Reason: "no candidate split produced a valid fit"}
	}

	denom := best.Left.Slope - best.Right.Slope
	if math.Abs(denom) < 1e-9 {
		return nil, &FitNotFoundError{Reason: "fitted segments are parallel, no discernible bend"}
	}
	best.BreakX = (best.Right.Intercept - best.Left.Intercept) / denom

	xs := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
	}
	if best.BreakX < floats.Min(xs) || best.BreakX > floats.Max(xs) {
		return nil, &FitNotFoundError{Reason: "breakpoint falls outside the sampled x range"}
	}

	best.Curve = make([]Point, len(pts))
	for i, p := range pts {
		seg := best.Left
		if p.X > best.BreakX {
			seg = best.Right
		}
		best.Curve[i] = Point{X: p.X, Y: seg.At(p.X)}
	}
	return &best, nil
}

func distinctLevels(pts []Point) []float64 {
	levels := make([]float64, 0, len(pts))
	for _, p := range pts {
		if len(levels) == 0 || p.X != levels[len(levels)-1] {
			levels = append(levels, p.X)
		}
	}
	return levels
}

// splitAt partitions sorted points into x <= cut and x > cut.
func splitAt(pts []Point, cut float64) (left, right []Point) {
	i := sort.Search(len(pts), func(i int) bool { return pts[i].X > cut })
	return pts[:i], pts[i:]
}

func fitSegment(pts []Point) (Segment, bool) {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) || math.IsInf(alpha, 0) || math.IsInf(beta, 0) {
		return Segment{}, false
	}
	return Segment{Slope: beta, Intercept: alpha}, true
}

func segmentSSE(pts []Point, seg Segment) float64 {
	sse := 0.0
	for _, p := range pts {
		d := p.Y - seg.At(p.X)
		sse += d * d
	}
	return sse
}
