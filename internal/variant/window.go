package variant

import "math"

// toleranceFraction is the default spread around a baseline length.
const toleranceFraction = 0.05

// calibratedWindows holds hand-measured windows for the standard baselines
// used across the stock variant catalog. The plain ±5% floor/ceil derivation
// does not reproduce these exact edges, so they are pinned here.
var calibratedWindows = map[int]CharRange{
	30:  {Baseline: 30, Min: 27, Max: 32},
	120: {Baseline: 120, Min: 113, Max: 128},
	240: {Baseline: 240, Min: 228, Max: 252},
}

// deriveWindow computes the [min,max] window for a baseline, honoring
// explicit overrides from the raw document. Derivation happens once at spec
// load, never at request time.
func deriveWindow(raw rawCharRange) CharRange {
	r := CharRange{Baseline: raw.Baseline}

	if cal, ok := calibratedWindows[raw.Baseline]; ok {
		r.Min, r.Max = cal.Min, cal.Max
	} else {
		r.Min = int(math.Floor(float64(raw.Baseline) * (1 - toleranceFraction)))
		r.Max = int(math.Ceil(float64(raw.Baseline) * (1 + toleranceFraction)))
	}

	if raw.Min != nil {
		r.Min = *raw.Min
	}
	if raw.Max != nil {
		r.Max = *raw.Max
	}
	return r
}
