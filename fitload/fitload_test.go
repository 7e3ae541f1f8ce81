package fitload

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tormoder/fit"
)

func TestSamplesFromRecords(t *testing.T) {
	ts := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)

	withAll := fit.NewRecordMsg()
	withAll.Timestamp = ts
	withAll.HeartRate = 130
	withAll.Speed = 2778 // 2.778 m/s
	withAll.Cadence = 170

	noHR := fit.NewRecordMsg()
	noHR.Timestamp = ts.Add(time.Second)

	noTime := fit.NewRecordMsg()
	noTime.HeartRate = 140

	samples := SamplesFromRecords([]*fit.RecordMsg{withAll, noHR, nil, noTime})
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}

	s := samples[0]
	if !s.Time.Equal(ts) {
		t.Fatalf("sample time = %v, want %v", s.Time, ts)
	}
	if s.HeartRate == nil || *s.HeartRate != 130 {
		t.Fatalf("heart rate = %v, want 130", s.HeartRate)
	}
	if s.SpeedKPH == nil || math.Abs(*s.SpeedKPH-2.778*3.6) > 1e-9 {
		t.Fatalf("speed = %v, want %v km/h", s.SpeedKPH, 2.778*3.6)
	}
	if s.CadenceRPM == nil || *s.CadenceRPM != 170 {
		t.Fatalf("cadence = %v, want 170", s.CadenceRPM)
	}

	if samples[1].HeartRate != nil {
		t.Fatalf("expected nil heart rate for record with invalid value")
	}
	if samples[1].SpeedKPH != nil {
		t.Fatalf("expected nil speed for record with invalid value")
	}
}

func TestReadBytesRejectsGarbage(t *testing.T) {
	if _, err := ReadBytes([]byte("not a fit file")); err == nil {
		t.Fatalf("ReadBytes() accepted garbage input")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.fit")); err == nil {
		t.Fatalf("ReadFile() accepted a missing path")
	}
}

func TestReadFileFixture(t *testing.T) {
	path := filepath.Join("testdata", "ramp_test.fit")
	if _, err := os.Stat(path); err != nil {
		t.Skipf("sample fit file not found at %s", path)
	}

	samples, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(samples) == 0 {
		t.Fatalf("expected samples from fixture")
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Time.Before(samples[i-1].Time) {
			// Device files can interleave, but flag gross disorder.
			t.Logf("out of order timestamps at %d", i)
			break
		}
	}
}
