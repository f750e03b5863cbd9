// Package events ships detection events to ClickHouse in batches
package events

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"profanity/internal/platform/logger"
	"profanity/internal/platform/store"
	"profanity/internal/services/profanity/domain"

	"github.com/google/uuid"
)

// Table is the ClickHouse table events land in
const Table = "profanity_events"

const ddl = `CREATE TABLE IF NOT EXISTS ` + Table + ` (
	id          UUID,
	at          DateTime64(3, 'UTC'),
	op          LowCardinality(String),
	languages   Array(LowCardinality(String)),
	matches     UInt32,
	censor_type LowCardinality(String)
) ENGINE = MergeTree
ORDER BY (op, at)`

const statsQuery = `SELECT op, count(), sum(matches) FROM ` + Table + ` GROUP BY op ORDER BY op`

// Config tunes buffering
type Config struct {
	Buffer     int
	BatchSize  int
	FlushEvery time.Duration
}

func (c Config) withDefaults() Config {
	if c.Buffer <= 0 {
		c.Buffer = 4096
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 500
	}
	if c.FlushEvery <= 0 {
		c.FlushEvery = 2 * time.Second
	}
	return c
}

// Sink implements domain.EventSink. Record never blocks; Run drains the buffer
type Sink struct {
	ch  store.Clickhouse
	cfg Config
	in  chan domain.Event
	log *logger.Logger

	dropped atomic.Int64
	now     func() time.Time
}

// New builds a sink over ch
func New(ch store.Clickhouse, cfg Config) *Sink {
	cfg = cfg.withDefaults()
	return &Sink{
		ch:  ch,
		cfg: cfg,
		in:  make(chan domain.Event, cfg.Buffer),
		log: logger.Named("events"),
		now: time.Now,
	}
}

// EnsureTable creates the events table when missing
func (s *Sink) EnsureTable(ctx context.Context) error {
	return s.ch.Exec(ctx, ddl)
}

// Record implements domain.EventSink. A full buffer drops the event
func (s *Sink) Record(_ context.Context, ev domain.Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.At.IsZero() {
		ev.At = s.now().UTC()
	}
	select {
	case s.in <- ev:
	default:
		if n := s.dropped.Add(1); n == 1 || n%1000 == 0 {
			s.log.Warn().Int64("dropped", n).Msg("event buffer full")
		}
	}
	return nil
}

// Dropped is the number of events lost to a full buffer
func (s *Sink) Dropped() int64 { return s.dropped.Load() }

// Stats totals the stored events per op. Events still buffered are not counted
func (s *Sink) Stats(ctx context.Context) ([]domain.OpStats, error) {
	rows, err := s.ch.Query(ctx, statsQuery)
	if err != nil {
		return nil, fmt.Errorf("events: stats: %w", err)
	}
	defer rows.Close()

	var out []domain.OpStats
	for rows.Next() {
		var (
			op             string
			calls, matches uint64
		)
		if err := rows.Scan(&op, &calls, &matches); err != nil {
			return nil, fmt.Errorf("events: scan stats: %w", err)
		}
		out = append(out, domain.OpStats{Op: domain.Op(op), Calls: calls, Matches: matches})
	}
	return out, rows.Err()
}

// Run flushes batches until ctx is done, then drains what is left
func (s *Sink) Run(ctx context.Context) error {
	t := time.NewTicker(s.cfg.FlushEvery)
	defer t.Stop()

	batch := make([]domain.Event, 0, s.cfg.BatchSize)
	flush := func(fctx context.Context) {
		if len(batch) == 0 {
			return
		}
		if err := s.write(fctx, batch); err != nil {
			s.log.Error().Err(err).Int("events", len(batch)).Msg("flush failed")
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
		drain:
			for {
				select {
				case ev := <-s.in:
					batch = append(batch, ev)
				default:
					break drain
				}
			}
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			flush(dctx)
			cancel()
			return nil
		case ev := <-s.in:
			batch = append(batch, ev)
			if len(batch) >= s.cfg.BatchSize {
				flush(ctx)
			}
		case <-t.C:
			flush(ctx)
		}
	}
}

func (s *Sink) write(ctx context.Context, evs []domain.Event) error {
	rows := make([][]any, 0, len(evs))
	for _, ev := range evs {
		langs := ev.Languages
		if langs == nil {
			langs = []string{}
		}
		rows = append(rows, []any{
			ev.ID,
			ev.At,
			string(ev.Op),
			langs,
			uint32(ev.Matches),
			strings.ToLower(ev.CensorType),
		})
	}
	return s.ch.Insert(ctx, Table, rows)
}
