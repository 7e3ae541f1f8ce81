package ramptest

import (
	"fmt"

	"ramptest/piecewise"
)

// MissingColumnError reports that the loaded activity data lacks a column
// the requested analysis needs.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q missing from activity data", e.Column)
}

// EmptyWindowError reports that the trim window excludes every sample. It
// carries the valid minute range of the data so a caller can correct the
// window.
type EmptyWindowError struct {
	StartMinutes float64
	EndMinutes   float64
	MinMinutes   float64
	MaxMinutes   float64
}

func (e *EmptyWindowError) Error() string {
	return fmt.Sprintf(
		"window %.2f..%.2f min excludes every sample (data spans %.2f..%.2f min)",
		e.StartMinutes, e.EndMinutes, e.MinMinutes, e.MaxMinutes,
	)
}

// FitNotFoundError is the regression engine failure, surfaced to callers
// unchanged.
type FitNotFoundError = piecewise.FitNotFoundError
