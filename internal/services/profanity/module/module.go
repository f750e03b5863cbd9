// Package module wires the profanity service into the API
package module

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"sync"

	"profanity/internal/core/dataset"
	"profanity/internal/core/profanity"
	modkit "profanity/internal/modkit"
	"profanity/internal/modkit/httpkit"
	"profanity/internal/platform/logger"
	"profanity/internal/platform/net/middleware"
	str "profanity/internal/platform/strings"
	"profanity/internal/services/profanity/domain"
	"profanity/internal/services/profanity/events"
	profhttp "profanity/internal/services/profanity/http"
	"profanity/internal/services/profanity/repo"
	"profanity/internal/services/profanity/service"
	"profanity/internal/services/profanity/wordfile"
)

// Ports exposed by the profanity module
type Ports struct {
	Service domain.ServicePort
}

// Module implements modkit.Module
type Module struct {
	deps   modkit.Deps
	opts   Options
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc   *service.Service
	words *repo.Words
	sink  *events.Sink

	// workers tracks the watcher and sink goroutines started by Start
	workers sync.WaitGroup
}

// New builds the engine from the embedded dataset, plus the optional overlay,
// and wires whatever stores deps carries
func New(deps modkit.Deps, o Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("profanity"),
		modkit.WithPrefix("/profanity"),
	}, opts...)...)

	data, err := loadDataset(o.DatasetFile)
	if err != nil {
		return nil, err
	}

	m := &Module{
		deps:      deps,
		opts:      o,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}

	var svcOpts []service.Option
	if deps.PG != nil {
		m.words = repo.NewWords(deps.PG)
		svcOpts = append(svcOpts, service.WithStore(m.words))
	}
	if deps.CH != nil && o.Events {
		m.sink = events.New(deps.CH, events.Config{BatchSize: o.EventsBatch, FlushEvery: o.EventsFlush})
		svcOpts = append(svcOpts, service.WithSink(m.sink))
	}
	m.svc = service.New(profanity.New(data, o.Engine), service.Config{CensorType: o.CensorType}, svcOpts...)

	var auth middleware.AuthPort
	if o.AdminToken != "" {
		auth = adminPort(o.AdminToken)
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		profhttp.Register(r, profhttp.Deps{Service: m.svc, Auth: auth})
		external(r)
	}
	return m, nil
}

func loadDataset(overlay string) (dataset.Provider, error) {
	base, err := dataset.Load()
	if err != nil {
		return nil, err
	}
	if overlay == "" {
		return base, nil
	}
	extra, err := dataset.LoadFile(overlay)
	if err != nil {
		return nil, err
	}
	return dataset.Merge(base, extra), nil
}

var errBadToken = errors.New("token mismatch")

func adminPort(token string) *httpkit.Port {
	want := []byte(token)
	return httpkit.NewPortFunc(func(got string) (string, error) {
		if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			return "", errBadToken
		}
		return "admin", nil
	})
}

// Start restores persisted lists, applies the word file and launches the
// background workers. Workers stop when ctx is done
func (m *Module) Start(ctx context.Context) error {
	log := logger.Named("profanity")

	if m.words != nil {
		if err := m.words.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := m.svc.Restore(ctx); err != nil {
			return err
		}
	}

	if m.opts.WordsFile != "" {
		w := wordfile.NewWatcher(m.opts.WordsFile, m.svc, m.opts.WatchDebounce)
		if err := w.Sync(ctx); err != nil {
			return err
		}
		if m.opts.Watch {
			m.workers.Add(1)
			go func() {
				defer m.workers.Done()
				if err := w.Run(ctx); err != nil {
					log.Error().Err(err).Msg("word file watcher stopped")
				}
			}()
		}
	}

	if m.sink != nil {
		if err := m.sink.EnsureTable(ctx); err != nil {
			log.Warn().Err(err).Msg("create events table")
		}
		m.workers.Add(1)
		go func() {
			defer m.workers.Done()
			_ = m.sink.Run(ctx)
		}()
	}
	return nil
}

// Wait blocks until the workers started by Start have exited, which happens
// once Start's ctx is done. The event sink flushes its buffer before returning
func (m *Module) Wait() { m.workers.Wait() }

// Service returns the guarded engine
func (m *Module) Service() *service.Service { return m.svc }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		rr = m.subrouter(rr)
		m.register(rr)
	})
}

// Name implements modkit.Module
func (m *Module) Name() string { return str.MustString(m.name, "profanity") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements modkit.Module
func (m *Module) Ports() any { return Ports{Service: m.svc} }
