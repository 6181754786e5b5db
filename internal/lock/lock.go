// Package lock provides the per-key serialization points used around
// capacity admission and identifier minting.
package lock

import "context"

// Locker serializes callers that share a key. The returned unlock func is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Noop performs no serialization.
type Noop struct{}

func (Noop) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}
