package loadcalc

import "context"

// Repository stores a panel's circuits in insertion order.
type Repository interface {
	List(ctx context.Context) ([]*Circuit, error)
	Get(ctx context.Context, id CircuitID) (*Circuit, error)
	Insert(ctx context.Context, circuit *Circuit) error
	Update(ctx context.Context, circuit *Circuit) error
	Delete(ctx context.Context, id CircuitID) (int, error)
}
