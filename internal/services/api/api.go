// Package api composes the HTTP API for the profanity service
package api

import (
	"context"
	"fmt"

	"profanity/internal/platform/config"
	"profanity/internal/platform/logger"
	phttp "profanity/internal/platform/net/http"
	"profanity/internal/platform/net/middleware"
	"profanity/internal/platform/store"

	"profanity/internal/modkit"
	"profanity/internal/modkit/httpkit"
	"profanity/internal/modkit/module"
	"profanity/internal/modkit/swaggerkit"

	metamod "profanity/internal/services/api/meta/module"
	profmod "profanity/internal/services/profanity/module"
)

// Options are the API options
type Options struct {
	// Config is the root config; modules pick their own prefixes
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Stack          httpkit.StackOptions
	// MaxInFlight throttles the profanity routes, 0 disables
	MaxInFlight    int
	EnableSwagger  bool
	EnableProfiler bool
}

// API holds the mounted modules
type API struct {
	mods      []module.Module
	profanity *profmod.Module
}

// Mount builds the modules, starts the ones with boot work and mounts their
// routes under /api/v1. Background workers run until ctx is done
func Mount(ctx context.Context, r phttp.Router, opt Options) (*API, error) {
	log := opt.Logger
	if log == nil {
		log = logger.Get()
	}
	deps := modkit.Deps{Log: log, Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	profOpts := profmod.FromConfig(opt.Config)
	var modOpts []modkit.Option
	if opt.MaxInFlight > 0 {
		modOpts = append(modOpts, modkit.WithMiddlewares(middleware.Throttle(opt.MaxInFlight)))
	}
	prof, err := profmod.New(deps, profOpts, modOpts...)
	if err != nil {
		return nil, fmt.Errorf("api: profanity module: %w", err)
	}

	a := &API{
		mods:      []module.Module{metamod.New(deps), prof},
		profanity: prof,
	}
	for _, m := range a.mods {
		s, ok := m.(modkit.Starter)
		if !ok {
			continue
		}
		if err := s.Start(ctx); err != nil {
			return nil, fmt.Errorf("api: start %s: %w", m.Name(), err)
		}
	}

	// without an admin token the mutation routes are open, and the docs say so
	var docs []swaggerkit.SpecMutator
	if profOpts.AdminToken == "" {
		log.Warn().Msg("CORE_API_ADMIN_TOKEN is unset, list mutations are unauthenticated")
		docs = append(docs, swaggerkit.Open)
	}
	swaggerkit.Mount(r, opt.EnableSwagger, docs...)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		for _, m := range a.mods {
			m.MountRoutes(api)
			log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})
	return a, nil
}

// Wait blocks until module workers have stopped
func (a *API) Wait() { a.profanity.Wait() }
