package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	loadcalc "circuit-load/internal/loadcalc/domain"
	"circuit-load/internal/observability/metrics"
)

// Service is the load model: it owns the circuit collection and applies CRUD
// mutations one at a time. A failed call leaves the collection untouched.
type Service struct {
	mu     sync.Mutex
	repo   loadcalc.Repository
	ids    IDGenerator
	logger *log.Logger
}

// Option configures the service.
type Option func(*Service)

// WithIDGenerator overrides the default UUID generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Service) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs a load model service.
func NewService(repo loadcalc.Repository, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, errors.New("loadcalc service: nil repository")
	}
	s := &Service{repo: repo, ids: UUIDGenerator{}, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CircuitReport pairs a circuit snapshot with its evaluation.
type CircuitReport struct {
	Circuit loadcalc.Circuit    `json:"circuit"`
	Report  loadcalc.LoadReport `json:"report"`
}

// CreateCircuit validates the input and appends a new circuit with no devices.
// The new circuit is not selected; selection stays with the caller.
func (s *Service) CreateCircuit(ctx context.Context, name string, voltage, breakerRating float64) (loadcalc.Circuit, error) {
	in := CircuitInput{Name: name, Voltage: voltage, BreakerRating: breakerRating}
	if err := in.Normalize(); err != nil {
		metrics.IncMutation(metrics.OpCreateCircuit, metrics.ResultError)
		return loadcalc.Circuit{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	circuit, err := loadcalc.NewCircuit(s.ids.NewCircuitID(), in.Name, in.Voltage, in.BreakerRating)
	if err != nil {
		metrics.IncMutation(metrics.OpCreateCircuit, metrics.ResultError)
		return loadcalc.Circuit{}, err
	}
	if err := s.repo.Insert(ctx, circuit); err != nil {
		metrics.IncMutation(metrics.OpCreateCircuit, metrics.ResultError)
		return loadcalc.Circuit{}, err
	}
	metrics.IncMutation(metrics.OpCreateCircuit, metrics.ResultSuccess)
	if !loadcalc.IsStandardVoltage(circuit.Voltage) || !loadcalc.IsStandardBreakerRating(circuit.BreakerRating) {
		s.logger.Printf("circuit created with non-standard rating: id=%s voltage=%v breaker=%v", circuit.ID, circuit.Voltage, circuit.BreakerRating)
	} else {
		s.logger.Printf("circuit created: id=%s name=%q", circuit.ID, circuit.Name)
	}
	return *circuit.Clone(), nil
}

// RemoveCircuit deletes a circuit and its devices. It returns the index the circuit
// occupied so the caller can re-derive its selection.
func (s *Service) RemoveCircuit(ctx context.Context, id loadcalc.CircuitID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.repo.Delete(ctx, id)
	if err != nil {
		metrics.IncMutation(metrics.OpRemoveCircuit, metrics.ResultError)
		return -1, err
	}
	metrics.IncMutation(metrics.OpRemoveCircuit, metrics.ResultSuccess)
	s.logger.Printf("circuit removed: id=%s index=%d", id, idx)
	return idx, nil
}

// AddDevice appends a device to the circuit's device list.
func (s *Service) AddDevice(ctx context.Context, circuitID loadcalc.CircuitID, name string, watts float64) (loadcalc.Device, error) {
	in := DeviceInput{Name: name, Watts: watts}
	if err := in.Normalize(); err != nil {
		metrics.IncMutation(metrics.OpAddDevice, metrics.ResultError)
		return loadcalc.Device{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	circuit, err := s.repo.Get(ctx, circuitID)
	if err != nil {
		metrics.IncMutation(metrics.OpAddDevice, metrics.ResultError)
		return loadcalc.Device{}, err
	}
	device, err := loadcalc.NewDevice(s.ids.NewDeviceID(), in.Name, in.Watts)
	if err != nil {
		metrics.IncMutation(metrics.OpAddDevice, metrics.ResultError)
		return loadcalc.Device{}, err
	}
	if err := circuit.AddDevice(device); err != nil {
		metrics.IncMutation(metrics.OpAddDevice, metrics.ResultError)
		return loadcalc.Device{}, err
	}
	if err := s.repo.Update(ctx, circuit); err != nil {
		metrics.IncMutation(metrics.OpAddDevice, metrics.ResultError)
		return loadcalc.Device{}, err
	}
	metrics.IncMutation(metrics.OpAddDevice, metrics.ResultSuccess)
	s.logger.Printf("device added: circuit=%s device=%s watts=%v", circuitID, device.ID, device.Watts)
	return device, nil
}

// RemoveDevice removes a device from a circuit by id.
func (s *Service) RemoveDevice(ctx context.Context, circuitID loadcalc.CircuitID, deviceID loadcalc.DeviceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	circuit, err := s.repo.Get(ctx, circuitID)
	if err != nil {
		metrics.IncMutation(metrics.OpRemoveDevice, metrics.ResultError)
		return err
	}
	if err := circuit.RemoveDevice(deviceID); err != nil {
		metrics.IncMutation(metrics.OpRemoveDevice, metrics.ResultError)
		return err
	}
	if err := s.repo.Update(ctx, circuit); err != nil {
		metrics.IncMutation(metrics.OpRemoveDevice, metrics.ResultError)
		return err
	}
	metrics.IncMutation(metrics.OpRemoveDevice, metrics.ResultSuccess)
	s.logger.Printf("device removed: circuit=%s device=%s", circuitID, deviceID)
	return nil
}

// Circuits returns every circuit in insertion order.
func (s *Service) Circuits(ctx context.Context) ([]loadcalc.Circuit, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]loadcalc.Circuit, 0, len(list))
	for _, circuit := range list {
		result = append(result, *circuit)
	}
	return result, nil
}

// Circuit returns a single circuit.
func (s *Service) Circuit(ctx context.Context, id loadcalc.CircuitID) (loadcalc.Circuit, error) {
	circuit, err := s.repo.Get(ctx, id)
	if err != nil {
		return loadcalc.Circuit{}, err
	}
	return *circuit, nil
}

// Evaluate loads a circuit and derives its load report.
func (s *Service) Evaluate(ctx context.Context, id loadcalc.CircuitID) (CircuitReport, error) {
	circuit, err := s.Circuit(ctx, id)
	if err != nil {
		return CircuitReport{}, err
	}
	return evaluate(circuit), nil
}

// Reports evaluates every circuit in insertion order.
func (s *Service) Reports(ctx context.Context) ([]CircuitReport, error) {
	circuits, err := s.Circuits(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]CircuitReport, 0, len(circuits))
	for _, circuit := range circuits {
		reports = append(reports, evaluate(circuit))
	}
	return reports, nil
}

// SeedCircuit is a circuit with devices loaded at startup.
type SeedCircuit struct {
	Name          string
	Voltage       float64
	BreakerRating float64
	Devices       []DeviceInput
}

// Seed creates circuits and devices through the regular CRUD path.
func (s *Service) Seed(ctx context.Context, seeds []SeedCircuit) error {
	for _, seed := range seeds {
		circuit, err := s.CreateCircuit(ctx, seed.Name, seed.Voltage, seed.BreakerRating)
		if err != nil {
			return fmt.Errorf("seed circuit %q: %w", seed.Name, err)
		}
		for _, device := range seed.Devices {
			if _, err := s.AddDevice(ctx, circuit.ID, device.Name, device.Watts); err != nil {
				return fmt.Errorf("seed device %q on %q: %w", device.Name, seed.Name, err)
			}
		}
	}
	return nil
}

func evaluate(circuit loadcalc.Circuit) CircuitReport {
	report := loadcalc.Evaluate(circuit)
	metrics.IncEvaluation(string(report.Status))
	return CircuitReport{Circuit: circuit, Report: report}
}
