package ramptest

import (
	"fmt"
	"math"
	"strings"
)

// BuildTestSummary turns the prepared table and fitted threshold into a
// short human-readable report.
func BuildTestSummary(rows []Row, pairs []Pair, th *Threshold) string {
	var b strings.Builder

	b.WriteString("Treadmill ramp test\n")
	if len(rows) > 0 {
		first, last := rows[0], rows[len(rows)-1]
		fmt.Fprintf(
			&b,
			"Window: %s analyzed | %d samples | %d speed steps\n",
			formatMinutes(last.Minutes-first.Minutes),
			len(rows),
			distinctSpeedCount(rows),
		)
		minHR, maxHR := heartRateRange(rows)
		fmt.Fprintf(
			&b,
			"Heart rate %.0f-%.0f bpm over %.1f-%.1f km/h\n",
			minHR, maxHR, first.SpeedKPH, last.SpeedKPH,
		)
	}
	fmt.Fprintf(&b, "Fitted on %d (speed, heart rate) points\n", len(pairs))

	if th != nil {
		b.WriteByte('\n')
		b.WriteString(th.Labels.Speed)
		b.WriteByte('\n')
		b.WriteString(th.Labels.Pace)
		b.WriteByte('\n')
		b.WriteString(th.Labels.HeartRate)
		b.WriteByte('\n')
	}

	return strings.TrimSpace(b.String())
}

func distinctSpeedCount(rows []Row) int {
	seen := make(map[float64]struct{}, 16)
	for _, r := range rows {
		seen[r.SpeedKPH] = struct{}{}
	}
	return len(seen)
}

func heartRateRange(rows []Row) (min, max float64) {
	min, max = rows[0].HeartRate, rows[0].HeartRate
	for _, r := range rows[1:] {
		if r.HeartRate < min {
			min = r.HeartRate
		}
		if r.HeartRate > max {
			max = r.HeartRate
		}
	}
	return min, max
}

func formatMinutes(minutes float64) string {
	s := int(math.Round(minutes * 60))
	m := s / 60
	sec := s % 60
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, sec)
	}
	return fmt.Sprintf("%ds", sec)
}
