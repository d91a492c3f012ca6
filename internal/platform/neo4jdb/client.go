package neo4jdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

type Config struct {
	URI            string `yaml:"uri" env:"NEO4J_URI" env-default:"neo4j://localhost:7687"`
	User           string `yaml:"user" env:"NEO4J_USER" env-default:"neo4j"`
	Password       string `yaml:"password" env:"NEO4J_PASSWORD"`
	Database       string `yaml:"database" env:"NEO4J_DATABASE"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"NEO4J_TIMEOUT_SECONDS" env-default:"10"`
	MaxPoolSize    int    `yaml:"max_pool_size" env:"NEO4J_MAX_POOL_SIZE" env-default:"50"`
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type Client struct {
	Driver   neo4j.DriverWithContext
	Database string
	log      *logger.Logger
}

// NewFromConfig dials the graph and verifies connectivity before returning.
func NewFromConfig(ctx context.Context, cfg Config, log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, fmt.Errorf("neo4jdb: uri required")
	}
	user := strings.TrimSpace(cfg.User)
	if user == "" {
		user = "neo4j"
	}
	maxPool := cfg.MaxPoolSize
	if maxPool <= 0 {
		maxPool = 50
	}

	auth := neo4j.BasicAuth(user, cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(uri, auth, func(c *neo4j.Config) {
		c.MaxConnectionPoolSize = maxPool
		c.SocketConnectTimeout = cfg.timeout()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}

	vctx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()
	if err := driver.VerifyConnectivity(vctx); err != nil {
		_ = driver.Close(vctx)
		return nil, fmt.Errorf("neo4jdb: verify connectivity: %w", err)
	}

	log.Info("neo4j connected", "uri", uri, "database", cfg.Database, "max_pool", maxPool)
	return &Client{
		Driver:   driver,
		Database: strings.TrimSpace(cfg.Database),
		log:      log.With("client", "Neo4jDB"),
	}, nil
}

// Ping is used by the health check.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return fmt.Errorf("neo4jdb: client closed")
	}
	return c.Driver.VerifyConnectivity(ctx)
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}
