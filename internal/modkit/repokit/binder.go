package repokit

import "context"

// Binder hands out a repo bound to one Queryer, the pool or an open tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// MustBind binds b to q. A nil q is a wiring bug and panics
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind to nil Queryer")
	}
	return b.Bind(q)
}

// InTx runs fn with a repo bound to a fresh transaction of tx. Begin hooks
// installed with WithBeginHooks run before fn sees the repo
func InTx[T any](ctx context.Context, tx TxRunner, b Binder[T], fn func(T) error) error {
	return WithTx(ctx, tx, func(q Queryer) error { return fn(MustBind(b, q)) })
}
