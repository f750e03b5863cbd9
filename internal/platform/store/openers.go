package store

import (
	"context"
	"fmt"
	"time"

	chx "profanity/internal/platform/store/ch"
	"profanity/internal/platform/store/pg"

	"github.com/jackc/pgx/v5/pgxpool"
)

// openPG opens the pool, waits for it to answer and wraps it with the sql adapter
func openPG(ctx context.Context, cfg PGConfig, s *Store) (TxRunner, error) {
	var opts []pg.Option
	if cfg.LogSQL {
		opts = append(opts, pg.WithTracer(pg.Tracer(s.Log)))
	}
	if cfg.AppName != "" {
		opts = append(opts, pg.WithPoolConfig(func(pc *pgxpool.Config) {
			pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
		}))
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		SlowMs:   cfg.SlowQueryMs,
	}, opts...)
	if err != nil {
		return nil, err
	}

	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	const (
		pingTimeout    = 3 * time.Second
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx) // pool ping, not traced
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}

func openCH(ctx context.Context, cfg CHConfig) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.URL,
		ClientName: cfg.ClientName,
		ClientTag:  cfg.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
