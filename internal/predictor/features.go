package predictor

// Defaults applied when a driver code is missing from a ratings table.
const (
	defaultDriverRating = 0.5
	defaultTeamRating   = 0.5
	defaultSkillBonus   = -0.2
)

// defaultTireStrategy is the placeholder tire-strategy feature until
// per-race strategy data is wired in.
const defaultTireStrategy = 1.0

// Ratings holds the static driver and team reference tables consumed by
// the model backend. They are injected at construction and never mutated.
type Ratings struct {
	Driver map[string]float64
	Team   map[string]float64
	Skill  map[string]float64
}

// DriverRating returns the driver's rating, or the documented default for
// unknown codes.
func (r Ratings) DriverRating(code string) float64 {
	if v, ok := r.Driver[code]; ok {
		return v
	}
	return defaultDriverRating
}

// TeamRating returns the rating of the driver's car, or the default for
// unknown codes.
func (r Ratings) TeamRating(code string) float64 {
	if v, ok := r.Team[code]; ok {
		return v
	}
	return defaultTeamRating
}

// SkillBonus returns the driver's fallback skill bonus. Unknown codes get
// a slight penalty.
func (r Ratings) SkillBonus(code string) float64 {
	if v, ok := r.Skill[code]; ok {
		return v
	}
	return defaultSkillBonus
}

// DefaultRatings returns the built-in reference tables, derived from 2024
// season performance.
func DefaultRatings() Ratings {
	return Ratings{
		Driver: map[string]float64{
			"VER": 0.95, "HAM": 0.90, "LEC": 0.88, "RUS": 0.82, "SAI": 0.80,
			"NOR": 0.78, "PIA": 0.76, "ALO": 0.72, "GAS": 0.65, "OCO": 0.63,
			"TSU": 0.60, "HUL": 0.58, "ALB": 0.54, "STR": 0.46,
		},
		Team: map[string]float64{
			"VER": 0.92, "TSU": 0.92,
			"LEC": 0.85, "HAM": 0.85,
			"RUS": 0.78, "ANT": 0.78,
			"NOR": 0.82, "PIA": 0.82,
			"ALO": 0.62, "STR": 0.62,
			"GAS": 0.60, "COL": 0.60,
			"OCO": 0.55, "BEA": 0.55,
			"HAD": 0.58, "LAW": 0.58,
			"HUL": 0.48, "BOR": 0.48,
			"ALB": 0.52, "SAI": 0.52,
		},
		Skill: map[string]float64{
			"VER": 0.3, "HAM": 0.2, "LEC": 0.1, "NOR": 0.1, "SAI": 0.0,
			"RUS": 0.0, "PIA": -0.1, "ALO": 0.1, "GAS": -0.1,
		},
	}
}

// Conditions carries the race-day inputs that enter the feature vector.
type Conditions struct {
	Dry        bool
	TrackTempC float64
}

// BuildFeatureVector assembles the fixed six-element feature vector fed to
// the classifier: qualifying position, driver rating, team rating, dry
// flag, track temperature and tire strategy.
func BuildFeatureVector(qualifyingPosition int, code string, ratings Ratings, cond Conditions) []float64 {
	dry := 0.0
	if cond.Dry {
		dry = 1.0
	}
	return []float64{
		float64(qualifyingPosition),
		ratings.DriverRating(code),
		ratings.TeamRating(code),
		dry,
		cond.TrackTempC,
		defaultTireStrategy,
	}
}
