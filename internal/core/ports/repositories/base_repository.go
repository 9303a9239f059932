package repositories

import "context"

// TransactionManager runs a unit of work atomically: either every write inside
// fn is kept or none is.
type TransactionManager interface {
	// RunInTx executes fn and discards all of its writes if it returns an error.
	// Callers are responsible for serializing concurrent units of work.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
