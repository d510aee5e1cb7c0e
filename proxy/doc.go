// Package proxy implements the query orchestrator of the Snowflake proxy.
//
// # Overview
//
// The Proxy sits between callers and a warehouse Executor and adds optional
// result caching with stampede protection. It owns no connection logic and
// no rendering logic; those live behind the Executor interface and the
// render package respectively.
//
// # Request Pipeline
//
// Every request moves through the same stages:
//
//  1. Validate: empty or whitespace-only query text fails with
//     ErrEmptyQuery before any cache or backend interaction.
//  2. Cache check: only when the request carries a CacheTTL. A hit returns
//     immediately with FromCache=true and the original execution time.
//  3. Execute: cache misses run under single-flight coordination, so N
//     concurrent identical requests cost exactly one backend execution and
//     all N callers receive the same result (or the same error).
//  4. Cache write: successful executions are stored with the request's TTL.
//     Failures are never cached.
//
// Requests without a CacheTTL skip stages 2 and 4 entirely: they pay no
// caching overhead and always observe live data.
//
// # Basic Usage
//
//	store, err := cache.NewMemoryStore(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	p := proxy.New(executor, store, proxy.WithLogger(logger))
//
//	envelope, err := p.Execute(ctx, proxy.Request{
//		Query:      "SELECT region, SUM(amount) FROM sales GROUP BY region",
//		Parameters: map[string]any{},
//		CacheTTL:   5 * time.Minute,
//	})
//
// # Cancellation
//
// A caller's context cancellation is honored while waiting, but it never
// aborts a shared in-flight execution: the execution completes for the
// remaining waiters and the cancelled caller simply stops waiting. Uncached
// requests pass the caller's context through to the executor unmodified.
//
// # Error Handling
//
// Backend errors propagate to callers unchanged; the proxy performs no
// retries and never falls back to stale data on failure. Staleness is only
// ever delivered through an explicit, successful cache hit. Cache backend
// problems degrade to miss behaviour without surfacing errors.
//
// # See Also
//
// For key derivation and store backends, see the cache package. For
// container wiring, see pkg/di.
package proxy
