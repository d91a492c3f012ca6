package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/GORLEABHILASH/booklovers/internal/clients/redis"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

type Clients struct {
	Neo4j   *neo4jdb.Client
	Redis   *goredis.Client
	Locker  redis.Locker
	Metrics *observability.Metrics

	shutdownOTel func(context.Context) error
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	shutdownOTel := observability.InitOTel(ctx, log, cfg.OTel)
	metrics := observability.NewMetrics(cfg.Metrics)

	// Neo4j
	graphClient, err := neo4jdb.NewFromConfig(ctx, cfg.Neo4j, log)
	if err != nil {
		_ = shutdownOTel(ctx)
		return Clients{}, fmt.Errorf("init neo4j: %w", err)
	}

	// Redis (optional)
	rdb, err := redis.NewClient(ctx, cfg.Redis.Config, log)
	if err != nil {
		_ = graphClient.Close(ctx)
		_ = shutdownOTel(ctx)
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}

	var locker redis.Locker
	if rdb != nil {
		locker, err = redis.NewRedisLocker(log, rdb, cfg.Redis.KeyPrefix, cfg.Redis.LockWait, metrics)
		if err != nil {
			_ = rdb.Close()
			_ = graphClient.Close(ctx)
			_ = shutdownOTel(ctx)
			return Clients{}, fmt.Errorf("init redis locker: %w", err)
		}
	} else {
		log.Warn("REDIS_ADDR not set; using in-process locks")
		locker = redis.NewLocalLocker(cfg.Redis.LockWait, metrics)
	}

	return Clients{
		Neo4j:        graphClient,
		Redis:        rdb,
		Locker:       locker,
		Metrics:      metrics,
		shutdownOTel: shutdownOTel,
	}, nil
}

func (c *Clients) Close(ctx context.Context) {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(ctx)
	}
	if c.shutdownOTel != nil {
		sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = c.shutdownOTel(sctx)
	}
}
