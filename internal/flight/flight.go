// Package flight collapses concurrent executions that share a cache key
// into a single backend call.
package flight

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Group coordinates per-key execution so that at most one call for a given
// key is in flight at a time. Callers that arrive while an execution is
// running attach to it and receive the same outcome, success or failure,
// without triggering a second execution. Once the execution completes the
// key is released, so a later call starts fresh; failures are never latched.
//
// The zero value is ready to use. Keys in different Group instances are
// independent.
type Group[T any] struct {
	sf singleflight.Group
}

// Do runs fn for key, or attaches to an in-flight execution of the same key.
// The boolean reports whether the result was shared with other callers.
//
// fn receives a context detached from ctx's cancellation: cancelling one
// waiter must not abort work the remaining waiters depend on. A caller whose
// ctx is cancelled stops waiting and returns ctx.Err(); the execution keeps
// running and resolves for everyone still attached.
func (g *Group[T]) Do(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, bool, error) {
	detached := context.WithoutCancel(ctx)
	ch := g.sf.DoChan(key, func() (any, error) {
		return fn(detached)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Shared, res.Err
		}
		// Only fn's return value flows through this group, so the assertion
		// can only miss when fn returned an untyped nil; zero T is the
		// right answer in that case.
		value, _ := res.Val.(T)
		return value, res.Shared, nil
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}
