package application

import loadcalc "circuit-load/internal/loadcalc/domain"

// FormOptions are the choices and draft defaults offered to callers building
// new-circuit forms. They do not restrict what CreateCircuit accepts.
type FormOptions struct {
	Voltages              []float64 `json:"voltages"`
	BreakerRatings        []float64 `json:"breaker_ratings"`
	DefaultVoltage        float64   `json:"default_voltage"`
	DefaultBreakerRating  float64   `json:"default_breaker_rating"`
	SafeLoadFactorPercent float64   `json:"safe_load_factor_percent"`
}

// DefaultFormOptions returns the residential defaults.
func DefaultFormOptions() FormOptions {
	return FormOptions{
		Voltages:              append([]float64(nil), loadcalc.StandardVoltages...),
		BreakerRatings:        append([]float64(nil), loadcalc.StandardBreakerRatings...),
		DefaultVoltage:        120,
		DefaultBreakerRating:  15,
		SafeLoadFactorPercent: loadcalc.SafeLoadFactor * 100,
	}
}
