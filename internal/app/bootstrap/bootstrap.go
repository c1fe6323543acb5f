package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	ballotengine "galavote/contexts/audience-voting/ballot-engine"
	votingpostgres "galavote/contexts/audience-voting/ballot-engine/adapters/postgres"
	eventservice "galavote/contexts/event-catalog/event-service"
	catalogpostgres "galavote/contexts/event-catalog/event-service/adapters/postgres"
	"galavote/internal/platform/config"
	"galavote/internal/platform/db"
	"galavote/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	catalogRepo := catalogpostgres.NewRepository(pg.DB, logger)
	catalogModule := eventservice.NewModule(eventservice.Dependencies{
		Events:  catalogRepo,
		Billing: catalogpostgres.NewBillingReader(pg.DB, logger),
		Clock:   catalogpostgres.SystemClock{},
		IDGen:   catalogpostgres.UUIDGenerator{},
		Logger:  logger,
	})

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	votingModule := ballotengine.NewModule(ballotengine.Dependencies{
		Ballots: votingRepo,
		Catalog: votingRepo,
		Clock:   votingpostgres.SystemClock{},
		IDGen:   votingpostgres.UUIDGenerator{},
		Logger:  logger,
	})

	server := httpserver.New(catalogModule, votingModule, logger, normalizeAddr(cfg.HTTPPort), cfg.EnableSwagger)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
