// Package pg opens the pgxpool the word store runs on, with optional query tracing
package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int
}

// PG is a pool plus the tracer statements report to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int

	poolMut func(*pgxpool.Config)
}

// Option mutates PG during Open
type Option func(*PG)

// WithTracer reports every statement to t
func WithTracer(t QueryTracer) Option { return func(p *PG) { p.Tracer = t } }

// WithPoolConfig lets callers adjust the parsed pool config before connecting
func WithPoolConfig(fn func(*pgxpool.Config)) Option { return func(p *PG) { p.poolMut = fn } }

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and creates the pool. It does not wait for the server
func Open(ctx context.Context, cfg Config, opts ...Option) (*PG, error) {
	p := &PG{SlowMs: cfg.SlowMs}
	for _, o := range opts {
		o(p)
	}

	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if p.poolMut != nil {
		p.poolMut(pcfg)
	}
	if p.Pool, err = newPool(ctx, pcfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Close closes the pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
