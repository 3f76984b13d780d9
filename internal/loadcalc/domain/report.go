package loadcalc

import "math"

// SafeLoadFactor is the NEC continuous-load ceiling as a fraction of the breaker rating.
const SafeLoadFactor = 0.8

// Status classifies a circuit's aggregate load.
type Status string

const (
	StatusSafe       Status = "safe"
	StatusNearLimit  Status = "near_limit"
	StatusOverloaded Status = "overloaded"
)

// LoadReport is the set of derived metrics and safety classification for a circuit.
// Values are full precision; rounding is left to the caller.
type LoadReport struct {
	CircuitID         CircuitID    `json:"circuit_id"`
	TotalWatts        float64      `json:"total_watts"`
	TotalAmps         float64      `json:"total_amps"`
	MaxAmps           float64      `json:"max_amps"`
	SafeMaxAmps       float64      `json:"safe_max_amps"`
	UsagePercent      float64      `json:"usage_percent"`
	AvailableAmps     float64      `json:"available_amps"`
	AvailableWatts    float64      `json:"available_watts"`
	MaxCapacityWatts  float64      `json:"max_capacity_watts"`
	SafeCapacityWatts float64      `json:"safe_capacity_watts"`
	IsOverloaded      bool         `json:"is_overloaded"`
	IsNearLimit       bool         `json:"is_near_limit"`
	IsSafe            bool         `json:"is_safe"`
	Status            Status       `json:"status"`
	Devices           []DeviceLoad `json:"devices"`
}

// DeviceLoad is a per-device informational figure; it does not feed classification.
type DeviceLoad struct {
	DeviceID         DeviceID `json:"device_id"`
	Name             string   `json:"name"`
	Watts            float64  `json:"watts"`
	Amps             float64  `json:"amps"`
	PercentOfMaxAmps float64  `json:"percent_of_max_amps"`
}

// finite reports whether every figure in the report is a finite number.
func (r LoadReport) finite() bool {
	values := []float64{
		r.TotalWatts, r.TotalAmps, r.MaxAmps, r.SafeMaxAmps, r.UsagePercent,
		r.AvailableAmps, r.AvailableWatts, r.MaxCapacityWatts, r.SafeCapacityWatts,
	}
	for _, device := range r.Devices {
		values = append(values, device.Amps, device.PercentOfMaxAmps)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
