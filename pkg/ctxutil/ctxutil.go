package ctxutil

import (
	"context"
	"time"
)

type cancelKey struct{}

// CancelContext returns a cancelable context. It can be cancelled
// with Cancel.
func CancelContext(ctx context.Context) context.Context {
	return withCancel(context.WithCancel(ctx))
}

// TimeoutContext returns a context cancelled after the given duration
// or by Cancel.
func TimeoutContext(ctx context.Context, duration time.Duration) context.Context {
	return withCancel(context.WithTimeout(ctx, duration))
}

func withCancel(ctx context.Context, cancel context.CancelFunc) context.Context {
	return context.WithValue(ctx, cancelKey{}, cancel)
}

// Cancel cancels a context created by this package. It must not be
// called for other contexts.
func Cancel(ctx context.Context) {
	ctx.Value(cancelKey{}).(context.CancelFunc)()
}
