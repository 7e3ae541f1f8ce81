package ramptest

import (
	"fmt"
	"math"
	"sort"

	"ramptest/fitload"
)

// stepEpsilon guards the floor against floating-point truncation exactly at
// a step boundary.
const stepEpsilon = 1e-3

// PrepareOptions controls trimming and step-speed reconstruction. Speeds are
// km/h, times are minutes.
type PrepareOptions struct {
	StartMinutes    float64
	EndMinutes      float64
	SpeedMinKPH     float64
	SpeedStepKPH    float64
	TimeStepMinutes float64
	UseDeviceSpeed  bool
}

// DefaultPrepareOptions matches a common treadmill ramp protocol: 6 km/h
// start, +1 km/h every 90 seconds.
func DefaultPrepareOptions() PrepareOptions {
	return PrepareOptions{
		StartMinutes:    0,
		EndMinutes:      1000,
		SpeedMinKPH:     6,
		SpeedStepKPH:    1,
		TimeStepMinutes: 1.5,
		UseDeviceSpeed:  false,
	}
}

// Row is one prepared sample: elapsed minutes since the first retained
// sample, heart rate, and the resolved treadmill speed.
type Row struct {
	Minutes   float64 `json:"minutes"`
	HeartRate float64 `json:"heart_rate_bpm"`
	SpeedKPH  float64 `json:"speed_kph"`
}

// Prepared is the trimmed, speed-resolved table plus the effective window
// end after clamping to the data (informational, for UI defaults).
type Prepared struct {
	Rows       []Row
	EndMinutes float64
}

// Prepare sorts samples by time, trims them to the requested window,
// re-zeros elapsed minutes at the first retained sample, and resolves a
// speed for every row: either reconstructed from the step protocol or taken
// from the device. Rows without heart rate, and rows without a resolvable
// speed, are dropped. The input is never mutated.
func Prepare(samples []fitload.Sample, opts PrepareOptions) (*Prepared, error) {
	if opts.TimeStepMinutes <= 0 && !opts.UseDeviceSpeed {
		return nil, fmt.Errorf("time step must be positive, got %v", opts.TimeStepMinutes)
	}

	sorted := append([]fitload.Sample(nil), samples...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	type candidate struct {
		minutes   float64
		heartRate float64
		speed     *float64
	}

	var (
		cands        []candidate
		hadHeartRate bool
	)
	for _, s := range sorted {
		if s.HeartRate == nil || !isFinite(*s.HeartRate) {
			continue
		}
		hadHeartRate = true
		cands = append(cands, candidate{
			minutes:   s.Time.Sub(sorted[0].Time).Minutes(),
			heartRate: *s.HeartRate,
			speed:     s.SpeedKPH,
		})
	}
	if len(sorted) > 0 && !hadHeartRate {
		return nil, &MissingColumnError{Column: "heart_rate"}
	}

	var minMinutes, maxMinutes float64
	if len(cands) > 0 {
		minMinutes = cands[0].minutes
		maxMinutes = cands[len(cands)-1].minutes
	}

	retained := cands[:0:0]
	for _, c := range cands {
		if c.minutes < opts.StartMinutes || c.minutes > opts.EndMinutes {
			continue
		}
		retained = append(retained, c)
	}
	if len(retained) == 0 {
		return nil, &EmptyWindowError{
			StartMinutes: opts.StartMinutes,
			EndMinutes:   opts.EndMinutes,
			MinMinutes:   minMinutes,
			MaxMinutes:   maxMinutes,
		}
	}

	// Re-zero after trimming so StartMinutes=0 always corresponds to the
	// first retained sample.
	zero := retained[0].minutes

	rows := make([]Row, 0, len(retained))
	for _, c := range retained {
		m := c.minutes - zero
		var speed float64
		if opts.UseDeviceSpeed {
			if c.speed == nil || !isFinite(*c.speed) {
				continue
			}
			speed = *c.speed
		} else {
			speed = math.Floor((m+stepEpsilon)/opts.TimeStepMinutes)*opts.SpeedStepKPH + opts.SpeedMinKPH
		}
		rows = append(rows, Row{Minutes: m, HeartRate: c.heartRate, SpeedKPH: speed})
	}
	if len(rows) == 0 {
		return nil, &MissingColumnError{Column: "speed"}
	}

	end := opts.EndMinutes
	if last := rows[len(rows)-1].Minutes; last < end {
		end = last
	}

	return &Prepared{Rows: rows, EndMinutes: end}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
