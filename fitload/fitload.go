// Package fitload decodes activity FIT files into the ordered sample table
// the analysis core consumes.
package fitload

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/tormoder/fit"
)

const mpsToKPH = 3.6

// Sample is one timestamped record from the activity file. Nil pointers
// mark fields the device did not report.
type Sample struct {
	Time       time.Time
	HeartRate  *float64
	SpeedKPH   *float64
	CadenceRPM *float64
}

// ReadFile decodes an activity FIT file from disk.
func ReadFile(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open FIT file: %w", err)
	}
	return ReadBytes(data)
}

// ReadBytes decodes an activity FIT stream from memory.
func ReadBytes(data []byte) ([]Sample, error) {
	decoded, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}
	samples := SamplesFromRecords(activity.Records)
	if len(samples) == 0 {
		return nil, fmt.Errorf("activity file has no usable record samples")
	}
	return samples, nil
}

// SamplesFromRecords converts decoded record messages into samples,
// dropping records without a valid timestamp. Device speed is converted
// from m/s to km/h.
func SamplesFromRecords(records []*fit.RecordMsg) []Sample {
	samples := make([]Sample, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		ts := rec.Timestamp
		if ts.IsZero() || fit.IsBaseTime(ts) {
			continue
		}
		samples = append(samples, Sample{
			Time:       ts,
			HeartRate:  extractHeartRate(rec),
			SpeedKPH:   extractSpeedKPH(rec),
			CadenceRPM: extractCadence(rec),
		})
	}
	return samples
}

func extractHeartRate(rec *fit.RecordMsg) *float64 {
	if rec.HeartRate == math.MaxUint8 {
		return nil
	}
	return floatPtr(float64(rec.HeartRate))
}

func extractSpeedKPH(rec *fit.RecordMsg) *float64 {
	speed := rec.GetEnhancedSpeedScaled()
	if isFinite(speed) && speed >= 0 {
		return floatPtr(speed * mpsToKPH)
	}
	speed = rec.GetSpeedScaled()
	if isFinite(speed) && speed >= 0 {
		return floatPtr(speed * mpsToKPH)
	}
	return nil
}

func extractCadence(rec *fit.RecordMsg) *float64 {
	cad256 := rec.GetCadence256Scaled()
	if isFinite(cad256) && cad256 > 0 {
		return floatPtr(cad256)
	}
	if rec.Cadence == math.MaxUint8 {
		return nil
	}
	return floatPtr(float64(rec.Cadence))
}

func floatPtr(v float64) *float64 {
	return &v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
