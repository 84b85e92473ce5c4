package transactor

import "context"

// Transactor runs fn inside a single unit of work. Stores resolve the active
// transaction from the context they receive.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Passthrough calls fn directly. Used by in-memory stores and tests.
type Passthrough struct{}

func (Passthrough) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
