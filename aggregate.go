package ramptest

// trailingWindow is how many of each step's final heart-rate readings enter
// the per-step average. Heart rate stabilizes near the end of a step, so the
// trailing readings estimate the steady-state response better than the whole
// step.
const trailingWindow = 5

// Pair is one (speed, heart rate) observation handed to the fitter.
type Pair struct {
	SpeedKPH  float64 `json:"speed_kph"`
	HeartRate float64 `json:"heart_rate_bpm"`
}

// Aggregate collapses prepared rows into fitter input. With allData set,
// every row passes through unchanged. Otherwise rows are grouped by exact
// speed and each group is reduced to the mean of its last trailingWindow
// heart-rate readings (all of them when the group is smaller), one pair per
// distinct speed in order of first appearance.
func Aggregate(rows []Row, allData bool) []Pair {
	if allData {
		pairs := make([]Pair, 0, len(rows))
		for _, r := range rows {
			pairs = append(pairs, Pair{SpeedKPH: r.SpeedKPH, HeartRate: r.HeartRate})
		}
		return pairs
	}

	order := make([]float64, 0, 16)
	groups := make(map[float64][]float64, 16)
	for _, r := range rows {
		if _, seen := groups[r.SpeedKPH]; !seen {
			order = append(order, r.SpeedKPH)
		}
		groups[r.SpeedKPH] = append(groups[r.SpeedKPH], r.HeartRate)
	}

	pairs := make([]Pair, 0, len(order))
	for _, speed := range order {
		hr := groups[speed]
		if len(hr) > trailingWindow {
			hr = hr[len(hr)-trailingWindow:]
		}
		sum := 0.0
		for _, v := range hr {
			sum += v
		}
		pairs = append(pairs, Pair{SpeedKPH: speed, HeartRate: sum / float64(len(hr))})
	}
	return pairs
}
