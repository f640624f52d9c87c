package domain

import "context"

// Transactor runs fn as one all-or-nothing unit against the store.
// Repositories called with the ctx passed to fn participate in the same transaction.
// fn's error (or a panic) rolls the unit back; a nil return commits it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
