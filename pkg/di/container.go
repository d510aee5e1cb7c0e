// Package di wires the proxy's components together from configuration.
package di

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/davenforce/SnowflakeProxy/cache"
	"github.com/davenforce/SnowflakeProxy/config"
	"github.com/davenforce/SnowflakeProxy/proxy"
	"github.com/davenforce/SnowflakeProxy/render"
	"github.com/davenforce/SnowflakeProxy/snowflake"
)

// Container holds the constructed components of one proxy instance. Every
// dependency is built here and passed by handle; nothing reads ambient
// global state.
type Container struct {
	cfg      config.Config
	log      *zap.Logger
	store    cache.Store
	executor proxy.Executor
	proxy    *proxy.Proxy
	renderer render.Renderer
	registry *prometheus.Registry
	db       *sql.DB
}

// NewContainer builds a container whose executor talks to the configured
// Snowflake account. The pool is opened lazily by database/sql, so no
// network traffic happens until the first query.
func NewContainer(cfg config.Config) (*Container, error) {
	if err := cfg.Snowflake.Validate(); err != nil {
		return nil, fmt.Errorf("di: snowflake config: %w", err)
	}

	c, err := newBase(cfg)
	if err != nil {
		return nil, err
	}

	db, err := snowflake.Open(cfg.Snowflake)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("di: open snowflake: %w", err)
	}
	c.db = db
	c.executor = snowflake.NewExecutor(db, c.log.Named("executor"))
	c.buildProxy()
	return c, nil
}

// NewContainerWithExecutor builds a container around a caller-supplied
// executor. Used for alternative backends and in tests.
func NewContainerWithExecutor(cfg config.Config, executor proxy.Executor) (*Container, error) {
	if executor == nil {
		return nil, fmt.Errorf("di: executor must not be nil")
	}

	c, err := newBase(cfg)
	if err != nil {
		return nil, err
	}
	c.executor = executor
	c.buildProxy()
	return c, nil
}

func newBase(cfg config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := buildLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(cfg.Cache)
	if err != nil {
		return nil, err
	}

	return &Container{
		cfg:      cfg,
		log:      log,
		store:    store,
		renderer: render.NewEChartsRenderer(),
		registry: prometheus.NewRegistry(),
	}, nil
}

func (c *Container) buildProxy() {
	c.proxy = proxy.New(c.executor, c.store,
		proxy.WithLogger(c.log.Named("proxy")),
		proxy.WithMetrics(proxy.NewMetrics(c.registry)),
	)
}

// Proxy returns the query orchestrator.
func (c *Container) Proxy() *proxy.Proxy {
	return c.proxy
}

// Store returns the result cache, for administrative invalidation.
func (c *Container) Store() cache.Store {
	return c.store
}

// Renderer returns the chart renderer.
func (c *Container) Renderer() render.Renderer {
	return c.renderer
}

// Logger returns the root logger.
func (c *Container) Logger() *zap.Logger {
	return c.log
}

// Registry returns the metrics registry this container's components report to.
func (c *Container) Registry() *prometheus.Registry {
	return c.registry
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() config.Config {
	return c.cfg
}

// Close releases the connection pool, the store's background resources and
// the logger.
func (c *Container) Close() error {
	var firstErr error
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			firstErr = err
		}
	}
	if closer, ok := c.store.(io.Closer); ok {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	// Sync can legitimately fail on stderr; nothing actionable.
	_ = c.log.Sync()
	return firstErr
}

func buildStore(cfg config.CacheConfig) (cache.Store, error) {
	storeCfg := cfg.StoreConfig()
	switch cfg.Backend {
	case config.BackendSturdyc:
		return cache.NewSturdycStore(storeCfg)
	default:
		return cache.NewMemoryStore(storeCfg)
	}
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("di: log level: %w", err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}
