// Package bootstrap assembles the agent service from its components.
package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/pazarglobal/agent/internal/api"
	"github.com/pazarglobal/agent/internal/audit"
	"github.com/pazarglobal/agent/internal/cache"
	"github.com/pazarglobal/agent/internal/category"
	"github.com/pazarglobal/agent/internal/config"
	"github.com/pazarglobal/agent/internal/database"
	"github.com/pazarglobal/agent/internal/drafts"
	"github.com/pazarglobal/agent/internal/engine"
	"github.com/pazarglobal/agent/internal/keywords"
	"github.com/pazarglobal/agent/internal/llm"
	"github.com/pazarglobal/agent/internal/logging"
	"github.com/pazarglobal/agent/internal/metrics"
	"github.com/pazarglobal/agent/internal/publish"
	"github.com/pazarglobal/agent/internal/search"
)

// App holds the assembled service and its closable resources.
type App struct {
	Server *api.Server
	Logger logging.Logger

	db    *sqlx.DB
	redis *redis.Client
}

// New builds the full dependency graph from configuration.
func New(cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.LoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	logger.Info("connecting to postgres",
		logging.String("host", cfg.Database.Host),
		logging.String("database", cfg.Database.DBName))
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return nil, err
	}

	redisClient, err := cache.NewClient(cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, search caching disabled", logging.Error(err))
		redisClient = nil
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	draftRepo := database.NewDraftRepository(db)
	listingRepo := database.NewListingRepository(db)
	profileRepo := database.NewProfileRepository(db)
	auditRepo := database.NewAuditRepository(db)

	recorder := audit.NewRecorder(auditRepo, logger)
	draftSvc := drafts.NewService(draftRepo, logger)
	searchSvc := search.NewService(listingRepo, redisClient, logger)

	chatter := llm.NewClient(cfg.LLM)
	if !chatter.Enabled() {
		logger.Info("llm disabled, deterministic paths only")
	}
	keywordGen := keywords.NewGenerator(chatter, logger)

	publisher := publish.NewPublisher(
		listingRepo, profileRepo, draftSvc,
		keywordGen, category.NormalizeID, recorder, logger,
	)

	eng := engine.New(draftSvc, searchSvc, publisher, profileRepo, chatter, recorder, m, logger)

	handler := api.NewHandler(eng, logger)
	server := api.NewServer(handler, cfg.Server, registry, logger)

	return &App{
		Server: server,
		Logger: logger,
		db:     db,
		redis:  redisClient,
	}, nil
}

// Close releases the app's external connections.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn("redis close failed", logging.Error(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.Logger.Warn("database close failed", logging.Error(err))
	}
	_ = a.Logger.Sync()
}
