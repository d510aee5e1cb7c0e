package di

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/davenforce/SnowflakeProxy/proxy"
)

// TestConcurrentAccess hammers one container from many goroutines mixing
// repeated and distinct requests, to shake out races in the wired stack.
func TestConcurrentAccess(t *testing.T) {
	executor := &countingExecutor{}
	c, err := NewContainerWithExecutor(testConfig(), executor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make(chan error, 200)

	for i := 0; i < 20; i++ {
		for j := 0; j < 10; j++ {
			wg.Add(1)
			go func(worker int) {
				defer wg.Done()
				_, err := c.Proxy().Execute(ctx, proxy.Request{
					Query:    fmt.Sprintf("SELECT region FROM sales WHERE shard = %d", worker%5),
					CacheTTL: time.Minute,
				})
				if err != nil {
					errs <- err
				}
			}(i)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent execution failed: %v", err)
	}

	// Five distinct queries; nearly everything beyond the first execution of
	// each should come from the cache or a shared flight. A few extra
	// executions are possible when a miss races a completing flight.
	if got := executor.callCount(); got < 5 || got > 20 {
		t.Errorf("expected roughly 5 backend calls, got %d", got)
	}
}

func BenchmarkExecute_CacheHit(b *testing.B) {
	c, err := NewContainerWithExecutor(testConfig(), &countingExecutor{})
	if err != nil {
		b.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	req := proxy.Request{Query: "SELECT region, revenue FROM sales", CacheTTL: time.Minute}
	if _, err := c.Proxy().Execute(ctx, req); err != nil {
		b.Fatalf("warm-up failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Proxy().Execute(ctx, req); err != nil {
			b.Fatalf("execution failed: %v", err)
		}
	}
}

func BenchmarkExecute_Bypass(b *testing.B) {
	c, err := NewContainerWithExecutor(testConfig(), &countingExecutor{})
	if err != nil {
		b.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	req := proxy.Request{Query: "SELECT region, revenue FROM sales"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Proxy().Execute(ctx, req); err != nil {
			b.Fatalf("execution failed: %v", err)
		}
	}
}
