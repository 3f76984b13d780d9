package loadcalc

import (
	"fmt"
	"math"
	"strings"
)

// DeviceID identifies a device within its circuit.
type DeviceID string

// Device is an electrical load drawing a fixed wattage.
type Device struct {
	ID    DeviceID `json:"id"`
	Name  string   `json:"name"`
	Watts float64  `json:"watts"`
}

// NewDevice builds a validated device.
func NewDevice(id DeviceID, name string, watts float64) (Device, error) {
	device := Device{ID: id, Name: strings.TrimSpace(name), Watts: watts}
	if err := device.Validate(); err != nil {
		return Device{}, err
	}
	return device, nil
}

// Validate checks device invariants.
func (d Device) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: empty device id", ErrInvalidInput)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: empty device name", ErrInvalidInput)
	}
	if !positive(d.Watts) {
		return fmt.Errorf("%w: device watts must be positive, got %v", ErrInvalidInput, d.Watts)
	}
	return nil
}

// positive rejects zero, negatives, NaN and infinities.
func positive(value float64) bool {
	return value > 0 && !math.IsInf(value, 1)
}
