package loadcalc

import (
	"fmt"
	"strings"
)

// CircuitID identifies a circuit within a panel.
type CircuitID string

// Circuit is a named electrical branch hosting zero or more devices.
// A circuit exclusively owns its devices; insertion order is preserved.
type Circuit struct {
	ID            CircuitID `json:"id"`
	Name          string    `json:"name"`
	Voltage       float64   `json:"voltage"`
	BreakerRating float64   `json:"breaker_rating"`
	Devices       []Device  `json:"devices"`
}

// NewCircuit builds a validated circuit with an empty device list.
func NewCircuit(id CircuitID, name string, voltage, breakerRating float64) (*Circuit, error) {
	circuit := &Circuit{
		ID:            id,
		Name:          strings.TrimSpace(name),
		Voltage:       voltage,
		BreakerRating: breakerRating,
		Devices:       []Device{},
	}
	if err := circuit.Validate(); err != nil {
		return nil, err
	}
	return circuit, nil
}

// Validate checks circuit invariants, including those of every device.
func (c *Circuit) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil circuit", ErrInvalidInput)
	}
	if c.ID == "" {
		return fmt.Errorf("%w: empty circuit id", ErrInvalidInput)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: empty circuit name", ErrInvalidInput)
	}
	if !positive(c.Voltage) {
		return fmt.Errorf("%w: voltage must be positive, got %v", ErrInvalidInput, c.Voltage)
	}
	if !positive(c.BreakerRating) {
		return fmt.Errorf("%w: breaker rating must be positive, got %v", ErrInvalidInput, c.BreakerRating)
	}
	seen := make(map[DeviceID]struct{}, len(c.Devices))
	for _, device := range c.Devices {
		if err := device.Validate(); err != nil {
			return err
		}
		if _, ok := seen[device.ID]; ok {
			return fmt.Errorf("%w: device %s", ErrDuplicateID, device.ID)
		}
		seen[device.ID] = struct{}{}
	}
	if !Evaluate(*c).finite() {
		return fmt.Errorf("%w: circuit %s load is not representable", ErrInvalidInput, c.ID)
	}
	return nil
}

// AddDevice appends a device, keeping device ids unique.
func (c *Circuit) AddDevice(device Device) error {
	if err := device.Validate(); err != nil {
		return err
	}
	if c.deviceIndex(device.ID) >= 0 {
		return fmt.Errorf("%w: device %s", ErrDuplicateID, device.ID)
	}
	candidate := c.Clone()
	candidate.Devices = append(candidate.Devices, device)
	if !Evaluate(*candidate).finite() {
		return fmt.Errorf("%w: device %s overflows circuit %s load", ErrInvalidInput, device.ID, c.ID)
	}
	c.Devices = candidate.Devices
	return nil
}

// RemoveDevice removes the device with the given id, wherever it sits.
func (c *Circuit) RemoveDevice(id DeviceID) error {
	idx := c.deviceIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: device %s", ErrNotFound, id)
	}
	devices := make([]Device, 0, len(c.Devices)-1)
	devices = append(devices, c.Devices[:idx]...)
	devices = append(devices, c.Devices[idx+1:]...)
	c.Devices = devices
	return nil
}

// Device returns the device with the given id.
func (c *Circuit) Device(id DeviceID) (Device, bool) {
	idx := c.deviceIndex(id)
	if idx < 0 {
		return Device{}, false
	}
	return c.Devices[idx], true
}

// Clone returns a detached deep copy.
func (c *Circuit) Clone() *Circuit {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Devices = append(make([]Device, 0, len(c.Devices)), c.Devices...)
	return &clone
}

func (c *Circuit) deviceIndex(id DeviceID) int {
	for i, device := range c.Devices {
		if device.ID == id {
			return i
		}
	}
	return -1
}
