package app

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/osero2000/coddee-news-app/internal/config"
	"github.com/osero2000/coddee-news-app/internal/infrastructure/gemini"
	"github.com/osero2000/coddee-news-app/internal/infrastructure/resolver"
	"github.com/osero2000/coddee-news-app/internal/infrastructure/rss"
	"github.com/osero2000/coddee-news-app/internal/infrastructure/storage"
	"github.com/osero2000/coddee-news-app/internal/logging"
	"github.com/osero2000/coddee-news-app/internal/ports"
	"github.com/osero2000/coddee-news-app/internal/server"
	"github.com/osero2000/coddee-news-app/internal/usecase"
)

// Application wires config to adapters, the pipeline and the HTTP trigger.
type Application struct {
	cfg      config.Config
	db       *sql.DB
	store    *storage.PostgresStore
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	store := storage.NewPostgresStore(db)

	var generator ports.TextGenerator
	if cfg.Gemini.APIKey != "" {
		generator = gemini.NewClient(cfg.Gemini)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Fetcher:         rss.NewFetcher(nil),
		Resolver:        resolver.NewRedirectResolver(nil),
		Generator:       generator,
		Store:           store,
		Feeds:           cfg.FeedSpecs(),
		AllowedTags:     cfg.AllowedTags,
		FailureSuffix:   cfg.Pipeline.FailureSuffix,
		FallbackSummary: cfg.Pipeline.FallbackSummary,
		FeedPause:       cfg.Pipeline.FeedPause(),
		Logger:          baseLogger.With("component", "pipeline"),
	})

	return &Application{
		cfg:      cfg,
		db:       db,
		store:    store,
		pipeline: pipeline,
		logger:   baseLogger,
	}, nil
}

// Run prepares storage and serves the HTTP trigger until the listener stops.
func (a *Application) Run(ctx context.Context) error {
	if err := a.store.EnsureSchema(ctx); err != nil {
		return err
	}

	srv := server.New(a.pipeline, a.logger.With("component", "server"))
	a.logger.Info("listening", "addr", a.cfg.Server.Addr)
	return http.ListenAndServe(a.cfg.Server.Addr, srv.Router())
}

// RunOnce performs a single pipeline execution without the HTTP server.
func (a *Application) RunOnce(ctx context.Context) (int, error) {
	if err := a.store.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	return a.pipeline.Run(ctx)
}

// Close releases the database handle.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
