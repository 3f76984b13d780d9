package memory

import (
	"context"
	"fmt"
	"sync"

	loadcalc "circuit-load/internal/loadcalc/domain"
)

// CircuitRepository is an in-memory, insertion-ordered circuit store.
// Reads and writes exchange clones so callers never share device slices with the store.
type CircuitRepository struct {
	mu    sync.RWMutex
	order []loadcalc.CircuitID
	data  map[loadcalc.CircuitID]*loadcalc.Circuit
}

// NewCircuitRepository constructs a repository.
func NewCircuitRepository() *CircuitRepository {
	return &CircuitRepository{data: make(map[loadcalc.CircuitID]*loadcalc.Circuit)}
}

// List returns all circuits in insertion order.
func (r *CircuitRepository) List(ctx context.Context) ([]*loadcalc.Circuit, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*loadcalc.Circuit, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.data[id].Clone())
	}
	return result, nil
}

// Get loads a circuit by id.
func (r *CircuitRepository) Get(ctx context.Context, id loadcalc.CircuitID) (*loadcalc.Circuit, error) {
	_ = ctx
	r.mu.RLock()
	circuit := r.data[id]
	r.mu.RUnlock()
	if circuit == nil {
		return nil, fmt.Errorf("%w: circuit %s", loadcalc.ErrNotFound, id)
	}
	return circuit.Clone(), nil
}

// Insert appends a new circuit.
func (r *CircuitRepository) Insert(ctx context.Context, circuit *loadcalc.Circuit) error {
	_ = ctx
	if err := circuit.Validate(); err != nil {
		return err
	}
	stored := circuit.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[stored.ID]; ok {
		return fmt.Errorf("%w: circuit %s", loadcalc.ErrDuplicateID, stored.ID)
	}
	r.data[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return nil
}

// Update overwrites an existing circuit, keeping its position.
func (r *CircuitRepository) Update(ctx context.Context, circuit *loadcalc.Circuit) error {
	_ = ctx
	if err := circuit.Validate(); err != nil {
		return err
	}
	stored := circuit.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[stored.ID]; !ok {
		return fmt.Errorf("%w: circuit %s", loadcalc.ErrNotFound, stored.ID)
	}
	r.data[stored.ID] = stored
	return nil
}

// Delete removes a circuit and returns the index it occupied. A circuit
// missing from the order index is reported as an error and left in place.
func (r *CircuitRepository) Delete(ctx context.Context, id loadcalc.CircuitID) (int, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return -1, fmt.Errorf("%w: circuit %s", loadcalc.ErrNotFound, id)
	}
	idx := -1
	for i, existing := range r.order {
		if existing == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return -1, fmt.Errorf("memory: circuit %s missing from order index", id)
	}
	delete(r.data, id)
	r.order = append(r.order[:idx:idx], r.order[idx+1:]...)
	return idx, nil
}

// Counts returns the number of circuits and devices held.
func (r *CircuitRepository) Counts() (circuits, devices int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, circuit := range r.data {
		devices += len(circuit.Devices)
	}
	return len(r.data), devices
}
