// Command locbridge-api serves the export, reconstruction and editing workflows over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"locbridge/internal/modkit"
	"locbridge/internal/platform/config"
	"locbridge/internal/platform/logger"
	phttp "locbridge/internal/platform/net/http"
	"locbridge/internal/platform/net/middleware"

	"locbridge/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	// service-scoped config for HTTP (CORE_API_*)
	apiCfg := config.New().Prefix("CORE_API_")

	// settings from LOCBRIDGE_CONFIG plus LOCBRIDGE_* overrides
	deps, err := modkit.NewDeps()
	if err != nil {
		l.Panic().Err(err).Msg("load settings failed")
	}

	// http server (reads CORE_API_PORT); heartbeat sits outside /api/v1
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(middleware.Heartbeat("/health"))
	})

	api.Mount(srv.Router(), api.Options{Deps: deps})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			l.Panic().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		l.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), time.Duration(apiCfg.MayInt("SHUTDOWN_SECONDS", 10))*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}
