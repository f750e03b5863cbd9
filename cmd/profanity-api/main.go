// Command profanity-api serves profanity detection and censoring over HTTP
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"profanity/internal/modkit/httpkit"
	"profanity/internal/modkit/repokit"
	"profanity/internal/platform/config"
	"profanity/internal/platform/logger"
	phttp "profanity/internal/platform/net/http"
	"profanity/internal/platform/net/middleware"
	"profanity/internal/platform/store"

	"profanity/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	logger.Init(logger.FromEnv())
	l := logger.Get()

	// PG and CH stay off unless SERVICE_PGSQL_ENABLED / SERVICE_CLICKHOUSE_ENABLED are set
	st, err := store.Open(ctx, store.FromConfig(root, "profanity", "api"), store.WithLogger(l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(ctx, st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// reads CORE_API_PORT and CORE_SHUTDOWN_GRACE
	srv := phttp.NewServer(root.Prefix("CORE_"), func(m *chi.Mux) {
		m.Use(middleware.Heartbeat("/ping"))
	})

	a, err := api.Mount(ctx, srv.Router(), api.Options{
		Config: root,
		Store:  st,
		Logger: l,
		Stack: httpkit.StackOptions{
			CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
			SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", time.Second),
			Timeout:     apiCfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		MaxInFlight:    apiCfg.MayInt("MAX_INFLIGHT", 0),
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api mount failed")
	}

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
	stop()
	a.Wait()
	l.Info().Msg("bye")
}
