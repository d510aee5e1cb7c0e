package di

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/davenforce/SnowflakeProxy/cache"
	"github.com/davenforce/SnowflakeProxy/proxy"
	"github.com/davenforce/SnowflakeProxy/render"
	"github.com/davenforce/SnowflakeProxy/table"
)

// countingExecutor returns a fixed result set and records how often the
// backend was actually hit, so tests can observe caching behavior through
// the fully wired container.
type countingExecutor struct {
	mu    sync.Mutex
	calls int
}

func (e *countingExecutor) ExecuteQuery(ctx context.Context, query string, parameters map[string]any) (*table.Table, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()

	result := table.New(
		table.Column{Name: "region", Type: table.TypeString},
		table.Column{Name: "revenue", Type: table.TypeFloat},
	)
	for _, row := range []table.Row{
		{"emea", 1200.5},
		{"amer", 2400.0},
	} {
		if err := result.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (e *countingExecutor) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func TestIntegration_CacheLifecycle(t *testing.T) {
	executor := &countingExecutor{}
	c, err := NewContainerWithExecutor(testConfig(), executor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	req := proxy.Request{
		Query:      "SELECT region, revenue FROM sales WHERE year = :year",
		Parameters: map[string]any{"year": 2026},
		CacheTTL:   time.Minute,
	}

	first, err := c.Proxy().Execute(ctx, req)
	if err != nil {
		t.Fatalf("first execution failed: %v", err)
	}
	if first.FromCache {
		t.Error("expected the first execution to miss")
	}

	second, err := c.Proxy().Execute(ctx, req)
	if err != nil {
		t.Fatalf("second execution failed: %v", err)
	}
	if !second.FromCache {
		t.Error("expected the second execution to hit the cache")
	}
	if second.Data != first.Data {
		t.Error("expected the hit to return the cached table")
	}
	if executor.callCount() != 1 {
		t.Errorf("expected one backend call, got %d", executor.callCount())
	}

	// Administrative invalidation through the store forces a re-execution.
	c.Store().Remove(cache.ComputeKey(req.Query, req.Parameters))

	third, err := c.Proxy().Execute(ctx, req)
	if err != nil {
		t.Fatalf("third execution failed: %v", err)
	}
	if third.FromCache {
		t.Error("expected a miss after invalidation")
	}
	if executor.callCount() != 2 {
		t.Errorf("expected two backend calls after invalidation, got %d", executor.callCount())
	}
}

func TestIntegration_RenderCachedResult(t *testing.T) {
	c, err := NewContainerWithExecutor(testConfig(), &countingExecutor{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	env, err := c.Proxy().Execute(context.Background(), proxy.Request{
		Query:    "SELECT region, revenue FROM sales",
		CacheTTL: time.Minute,
	})
	if err != nil {
		t.Fatalf("execution failed: %v", err)
	}

	artifact, err := c.Renderer().Render(env.Data, render.Spec{
		Kind:         render.KindBar,
		Title:        "Revenue by region",
		LabelColumn:  "region",
		ValueColumns: []string{"revenue"},
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(artifact, "Revenue by region") {
		t.Error("expected the artifact to carry the chart title")
	}
}

func TestIntegration_MetricsRegistered(t *testing.T) {
	c, err := NewContainerWithExecutor(testConfig(), &countingExecutor{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if _, err := c.Proxy().Execute(context.Background(), proxy.Request{
		Query:    "SELECT 1",
		CacheTTL: time.Minute,
	}); err != nil {
		t.Fatalf("execution failed: %v", err)
	}

	families, err := c.Registry().Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, name := range []string{
		"snowflake_proxy_cache_hits_total",
		"snowflake_proxy_cache_misses_total",
	} {
		if !found[name] {
			t.Errorf("expected metric %s to be registered", name)
		}
	}
}
