package loadcalc

var (
	// StandardVoltages are typical residential line voltages.
	StandardVoltages = []float64{120, 240}
	// StandardBreakerRatings are common residential breaker sizes in amps.
	StandardBreakerRatings = []float64{15, 20, 30, 40, 50}
)

// IsStandardVoltage reports whether v is one of StandardVoltages.
func IsStandardVoltage(v float64) bool {
	return contains(StandardVoltages, v)
}

// IsStandardBreakerRating reports whether a is one of StandardBreakerRatings.
func IsStandardBreakerRating(a float64) bool {
	return contains(StandardBreakerRatings, a)
}

func contains(values []float64, v float64) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
