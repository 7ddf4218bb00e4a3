package models

// Feature weight names accepted on the wire.
const (
	WeightQualifying = "quali"
	WeightPace       = "pace"
	WeightTire       = "tire"
	WeightWeather    = "weather"
	WeightStrategy   = "strategy"
)

// Baseline values applied when a weight is missing from the request.
const (
	DefaultQualifyingWeight = 0.7
	DefaultPaceWeight       = 0.6
	DefaultTireWeight       = 0.45
	DefaultWeatherWeight    = 0.3
	DefaultStrategyWeight   = 0.5
)

// FeatureWeights holds the tunable feature weights for a prediction run.
// Values are expected in [0, 1] but the prediction core uses them as plain
// multipliers and never rejects out-of-range values; clamping is the
// caller's responsibility.
type FeatureWeights struct {
	Qualifying float64 `json:"quali"`
	Pace       float64 `json:"pace"`
	Tire       float64 `json:"tire"`
	Weather    float64 `json:"weather"`
	Strategy   float64 `json:"strategy"`
}

// DefaultWeights returns the baseline weight set.
func DefaultWeights() FeatureWeights {
	return FeatureWeights{
		Qualifying: DefaultQualifyingWeight,
		Pace:       DefaultPaceWeight,
		Tire:       DefaultTireWeight,
		Weather:    DefaultWeatherWeight,
		Strategy:   DefaultStrategyWeight,
	}
}

// WeightsFromMap builds FeatureWeights from a wire-format map. Missing
// names take their baseline defaults; unrecognized names are ignored.
func WeightsFromMap(values map[string]float64) FeatureWeights {
	return DefaultWeights().Overlay(values)
}

// Overlay returns a copy of w with the named weights replaced by the map's
// values. Missing names keep w's values; unrecognized names are ignored.
func (w FeatureWeights) Overlay(values map[string]float64) FeatureWeights {
	if values == nil {
		return w
	}
	if v, ok := values[WeightQualifying]; ok {
		w.Qualifying = v
	}
	if v, ok := values[WeightPace]; ok {
		w.Pace = v
	}
	if v, ok := values[WeightTire]; ok {
		w.Tire = v
	}
	if v, ok := values[WeightWeather]; ok {
		w.Weather = v
	}
	if v, ok := values[WeightStrategy]; ok {
		w.Strategy = v
	}
	return w
}

// Clamped returns a copy with every weight clamped into [0, 1]. Clamping
// is optional: the prediction core accepts out-of-range values as plain
// multipliers, so callers clamp only when they want the documented range
// enforced on untrusted input.
func (w FeatureWeights) Clamped() FeatureWeights {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return FeatureWeights{
		Qualifying: clamp(w.Qualifying),
		Pace:       clamp(w.Pace),
		Tire:       clamp(w.Tire),
		Weather:    clamp(w.Weather),
		Strategy:   clamp(w.Strategy),
	}
}
