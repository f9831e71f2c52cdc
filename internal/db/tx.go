package db

import "context"

type txKey struct{}

// Transactor runs a unit of work atomically. Repositories find the open
// transaction through Conn, so services never handle a Querier directly.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type transactor struct {
	db DB
}

// NewTransactor returns a Transactor backed by d.
func NewTransactor(d DB) Transactor {
	return &transactor{db: d}
}

// InTx joins a transaction already carried by ctx instead of nesting.
func (t *transactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(Querier); ok {
		return fn(ctx)
	}
	return t.db.WithTx(ctx, func(q Querier) error {
		return fn(context.WithValue(ctx, txKey{}, q))
	})
}

// Conn returns the transaction carried by ctx, falling back to d.
func Conn(ctx context.Context, d DB) Querier {
	if q, ok := ctx.Value(txKey{}).(Querier); ok {
		return q
	}
	return d
}
