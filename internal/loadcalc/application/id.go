package application

import (
	"github.com/google/uuid"

	loadcalc "circuit-load/internal/loadcalc/domain"
)

// IDGenerator assigns identifiers to new circuits and devices.
type IDGenerator interface {
	NewCircuitID() loadcalc.CircuitID
	NewDeviceID() loadcalc.DeviceID
}

// UUIDGenerator issues random UUIDv4 identifiers.
type UUIDGenerator struct{}

// NewCircuitID returns a fresh circuit id.
func (UUIDGenerator) NewCircuitID() loadcalc.CircuitID {
	return loadcalc.CircuitID(uuid.NewString())
}

// NewDeviceID returns a fresh device id.
func (UUIDGenerator) NewDeviceID() loadcalc.DeviceID {
	return loadcalc.DeviceID(uuid.NewString())
}
