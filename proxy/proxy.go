package proxy

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/davenforce/SnowflakeProxy/cache"
	"github.com/davenforce/SnowflakeProxy/internal/flight"
	"github.com/davenforce/SnowflakeProxy/table"
)

// ErrEmptyQuery is returned when a request's query text is empty or
// whitespace-only. Invalid requests touch neither the cache nor the backend.
var ErrEmptyQuery = errors.New("proxy: query must not be empty")

// Executor runs a parameterized query against the warehouse backend and
// returns its tabular result. Executor failures are treated as opaque and
// non-retryable by the proxy; retry policy, if any, belongs to the executor.
type Executor interface {
	ExecuteQuery(ctx context.Context, query string, parameters map[string]any) (*table.Table, error)
}

// Request is one caller-supplied unit of work.
type Request struct {
	// Query is the SQL text to execute. Must be non-empty.
	Query string

	// Parameters maps bind names to scalar values (string, number, bool).
	// Insertion order is irrelevant to caching.
	Parameters map[string]any

	// CacheTTL caches the result for the given duration. Zero (or negative)
	// disables caching for this request entirely: no lookup, no write,
	// always live data.
	CacheTTL time.Duration
}

// Envelope is the uniform response returned to callers.
type Envelope struct {
	// Data is the tabular result. Shared with the cache entry on hits;
	// treat it as read-only.
	Data *table.Table

	// FromCache is true iff this response was served from a cache hit.
	FromCache bool

	// ExecutedAt is when the backend execution that produced Data
	// completed. On cache hits this is the original execution time, so
	// callers can compute staleness.
	ExecutedAt time.Time
}

// Proxy is the request orchestrator: it validates requests, consults the
// cache, collapses concurrent identical misses into one backend execution,
// and populates the cache on the way out.
type Proxy struct {
	executor Executor
	store    cache.Store
	flights  flight.Group[*cache.Result]
	metrics  *Metrics
	log      *zap.Logger
}

// Option configures a Proxy.
type Option func(*Proxy)

// WithLogger attaches a structured logger. Defaults to a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Proxy) {
		if log != nil {
			p.log = log
		}
	}
}

// WithMetrics attaches Prometheus metrics. Defaults to no instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(p *Proxy) {
		p.metrics = m
	}
}

// New creates a Proxy over the given executor and store. The store is an
// explicitly constructed dependency by design; the proxy never reaches for
// ambient cache state.
func New(executor Executor, store cache.Store, opts ...Option) *Proxy {
	p := &Proxy{
		executor: executor,
		store:    store,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Execute runs one request through the validate → cache → execute → store
// pipeline and returns its envelope.
//
// Requests without a CacheTTL bypass the cache entirely and always see live
// data. Requests with a TTL are served from the cache when a live entry
// exists; otherwise the backend execution runs under single-flight
// coordination, so concurrent identical misses cost one execution, and the
// result (never a failure) is written back with the request's TTL. When
// concurrent misses carry different TTLs the execution that writes last
// wins; the cache is a best-effort optimization, not a correctness layer.
//
// Backend failures propagate to the caller unchanged and are never cached.
func (p *Proxy) Execute(ctx context.Context, req Request) (*Envelope, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}

	if req.CacheTTL <= 0 {
		p.metrics.bypass()
		result, err := p.executeBackend(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Envelope{Data: result.Data, ExecutedAt: result.ExecutedAt}, nil
	}

	key := cache.ComputeKey(req.Query, req.Parameters)

	if !forceRefreshFromContext(ctx) {
		if cached, ok := p.store.Get(key); ok {
			p.metrics.hit()
			p.log.Debug("cache hit", zap.String("key", key))
			return &Envelope{Data: cached.Data, FromCache: true, ExecutedAt: cached.ExecutedAt}, nil
		}
	}
	p.metrics.miss()

	result, shared, err := p.flights.Do(ctx, key, func(ctx context.Context) (*cache.Result, error) {
		res, err := p.executeBackend(ctx, req)
		if err != nil {
			return nil, err
		}
		p.store.Set(key, res, req.CacheTTL)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		p.metrics.collapsed()
	}

	return &Envelope{Data: result.Data, ExecutedAt: result.ExecutedAt}, nil
}

func (p *Proxy) executeBackend(ctx context.Context, req Request) (*cache.Result, error) {
	start := time.Now()
	data, err := p.executor.ExecuteQuery(ctx, req.Query, req.Parameters)
	if err != nil {
		p.metrics.backendError()
		p.log.Error("backend execution failed",
			zap.String("query", req.Query),
			zap.Error(err))
		return nil, err
	}

	executedAt := time.Now()
	p.log.Debug("query executed",
		zap.String("query", req.Query),
		zap.Int("rows", data.NumRows()),
		zap.Duration("took", executedAt.Sub(start)))

	return &cache.Result{Data: data, ExecutedAt: executedAt}, nil
}
