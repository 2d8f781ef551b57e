package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/liquid-staking-hub/internal/api/handlers"
	"github.com/babylonchain/liquid-staking-hub/internal/api/middlewares"
	"github.com/babylonchain/liquid-staking-hub/internal/config"
)

type Server struct {
	httpServer *http.Server
	handlers   *handlers.Handler
}

func New(
	ctx context.Context, cfg *config.Config, services handlers.HubService,
) (*Server, error) {
	r := chi.NewRouter()

	logLevel := zerolog.InfoLevel
	if cfg.Server.LogLevel != "" {
		parsed, err := zerolog.ParseLevel(cfg.Server.LogLevel)
		if err != nil {
			log.Fatal().Err(err).Msg("error while parsing log level")
		}
		logLevel = parsed
	}
	zerolog.SetGlobalLevel(logLevel)

	r.Use(middlewares.CorsMiddleware(cfg))
	r.Use(middlewares.SecurityHeadersMiddleware())
	r.Use(middlewares.TracingMiddleware)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.ContentLengthMiddleware(cfg))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		WriteTimeout: cfg.Server.WriteTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Handler:      r,
	}

	handlers, err := handlers.New(ctx, cfg, services)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up handlers")
	}

	server := &Server{
		httpServer: srv,
		handlers:   handlers,
	}
	server.SetupRoutes(r)
	return server, nil
}

func (a *Server) Start() error {
	log.Info().Msgf("Starting server on %s", a.httpServer.Addr)
	return a.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *Server) Shutdown(ctx context.Context) error {
	return a.httpServer.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (a *Server) Handler() http.Handler {
	return a.httpServer.Handler
}
