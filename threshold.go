package ramptest

import (
	"fmt"
	"math"

	"ramptest/piecewise"
)

// Threshold is the fitted deflection point of the heart-rate-vs-speed
// curve, interpreted as the anaerobic threshold.
type Threshold struct {
	SpeedKPH     float64         `json:"speed_kph"`
	HeartRateBPM float64         `json:"heart_rate_bpm"`
	PaceMinPerKM float64         `json:"pace_min_per_km"`
	Curve        []Pair          `json:"curve"`
	Labels       ThresholdLabels `json:"labels"`
}

// ThresholdLabels are the annotation strings rendered next to the plot
// marker.
type ThresholdLabels struct {
	Speed     string `json:"speed"`
	Pace      string `json:"pace"`
	HeartRate string `json:"heart_rate"`
}

// FitThreshold runs the two-segment regression over the aggregated pairs
// and derives the threshold speed, pace, and heart rate. A nil engine
// selects the default least-squares fitter. Engine failures are returned
// unchanged, never defaulted.
func FitThreshold(pairs []Pair, engine piecewise.Fitter) (*Threshold, error) {
	if engine == nil {
		engine = piecewise.NewLeastSquares()
	}

	x := make([]float64, len(pairs))
	y := make([]float64, len(pairs))
	for i, p := range pairs {
		x[i] = p.SpeedKPH
		y[i] = p.HeartRate
	}

	fit, err := engine.Fit(x, y)
	if err != nil {
		return nil, err
	}
	if fit.BreakX <= 0 {
		return nil, &piecewise.FitNotFoundError{Reason: "breakpoint speed is not positive"}
	}

	th := &Threshold{
		SpeedKPH:     fit.BreakX,
		PaceMinPerKM: 60 / fit.BreakX,
	}

	// Heart rate at the threshold: the fitted value at the largest sampled
	// speed strictly below the breakpoint.
	th.HeartRateBPM = fit.Curve[0].Y
	th.Curve = make([]Pair, len(fit.Curve))
	for i, p := range fit.Curve {
		th.Curve[i] = Pair{SpeedKPH: p.X, HeartRate: p.Y}
		if p.X < fit.BreakX {
			th.HeartRateBPM = p.Y
		}
	}

	th.Labels = ThresholdLabels{
		Speed:     fmt.Sprintf("Threshold speed: %.1f km/h", th.SpeedKPH),
		Pace:      fmt.Sprintf("Pace: %s min/km", formatPace(th.PaceMinPerKM)),
		HeartRate: fmt.Sprintf("Heart rate: %.0f bpm", th.HeartRateBPM),
	}
	return th, nil
}

// formatPace renders decimal minutes per kilometer as m:ss.
func formatPace(pace float64) string {
	totalSeconds := int(math.Round(pace * 60))
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}
