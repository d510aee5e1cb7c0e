package proxy

import "context"

type forceRefreshContextKey struct{}

// WithForceRefresh marks the context so that cacheable requests skip the
// cache lookup and execute against the backend, refreshing the stored entry.
// Administrative use; the cache write still honors the request's TTL.
func WithForceRefresh(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, forceRefreshContextKey{}, true)
}

func forceRefreshFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	refresh, ok := ctx.Value(forceRefreshContextKey{}).(bool)
	return ok && refresh
}
