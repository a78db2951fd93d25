// Package repokit holds the seams repos are written against
package repokit

import (
	"context"

	"unirank/internal/platform/store"
)

type (
	// Queryer is the read and write surface repos run against, pool or tx bound
	Queryer = store.RowQuerier

	// TxRunner opens transactions
	TxRunner = store.TxRunner
)

// Binder binds a domain repo to a Queryer, so the same repo code runs on the pool or inside a tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// Dialect reports the sql flavour behind q so repos can pick their DDL
func Dialect(q Queryer) store.Dialect { return store.DialectOf(q) }

// BeginHook runs first inside a transaction on the tx bound Queryer
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns a TxRunner whose transactions run hooks, in order, before fn
// a failing hook aborts the tx without calling fn
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hooked{TxRunner: inner, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

func (h hooked) Dialect() store.Dialect { return store.DialectOf(h.TxRunner) }
