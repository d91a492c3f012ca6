package app

import (
	"context"
	"fmt"

	"github.com/GORLEABHILASH/booklovers/internal/data/graph"
	bhttp "github.com/GORLEABHILASH/booklovers/internal/http"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Server   *bhttp.Server
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services
}

func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.NewWithOptions(cfg.Log.Mode, logger.Options{
		Level:    cfg.Log.Level,
		Redact:   cfg.Log.Redact,
		HashSalt: cfg.Log.HashSalt,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	clientset, err := wireClients(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	applied := graph.EnsureSchema(ctx, clientset.Neo4j, log)
	log.Info("Graph schema ensured", "constraints", applied)

	reposet := wireRepos(clientset.Neo4j, log, clientset.Metrics)
	serviceset := wireServices(log, cfg, clientset, reposet)
	handlerset := wireHandlers(log, clientset.Neo4j, serviceset)
	middleware, err := wireMiddleware(log, cfg)
	if err != nil {
		clientset.Close(ctx)
		log.Sync()
		return nil, err
	}

	server := bhttp.NewServer(log, bhttp.ServerConfig{
		Addr:            cfg.Server.Addr(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, routerConfig(log, cfg, clientset, handlerset, middleware))

	return &App{
		Log:      log,
		Server:   server,
		Cfg:      cfg,
		Clients:  clientset,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func routerConfig(log *logger.Logger, cfg Config, clients Clients, handlers Handlers, mw Middleware) bhttp.RouterConfig {
	serviceName := ""
	if cfg.OTel.Enabled {
		serviceName = cfg.OTel.ServiceName
	}
	return bhttp.RouterConfig{
		Log:            log,
		Metrics:        clients.Metrics,
		ServiceName:    serviceName,
		CORSOrigins:    cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		AuthMiddleware: mw.Auth,
		HealthHandler:  handlers.Health,
		BookHandler:    handlers.Book,
		SessionHandler: handlers.Session,
		FeedHandler:    handlers.Feed,
		ShelfHandler:   handlers.Shelf,
		GoalHandler:    handlers.Goal,
		ProfileHandler: handlers.Profile,
	}
}

// Run starts the metrics endpoint and serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Clients.Metrics.StartServer(ctx, a.Log, a.Cfg.Metrics.Addr)
	if a.Clients.Redis != nil {
		a.Clients.Metrics.StartRedisCollector(ctx, a.Log, a.Clients.Redis, a.Cfg.Metrics.ScrapeInterval)
	}
	return a.Server.Run(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close(context.Background())
	if a.Log != nil {
		a.Log.Sync()
	}
}
