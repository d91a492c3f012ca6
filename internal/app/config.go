package app

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/GORLEABHILASH/booklovers/internal/clients/redis"
	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

type Config struct {
	Server          ServerConfig                `yaml:"server"`
	Log             LogConfig                   `yaml:"log"`
	Neo4j           neo4jdb.Config              `yaml:"neo4j"`
	Redis           RedisConfig                 `yaml:"redis"`
	Auth            AuthConfig                  `yaml:"auth"`
	CORS            CORSConfig                  `yaml:"cors"`
	OTel            observability.OtelConfig    `yaml:"otel"`
	Metrics         observability.MetricsConfig `yaml:"metrics"`
	Recommendations RecommendationConfig        `yaml:"recommendations"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"15s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" env-default:"20s"`
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type LogConfig struct {
	Mode     string `yaml:"mode" env:"LOG_MODE" env-default:"development"`
	Level    string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Redact   bool   `yaml:"redact" env:"LOG_REDACT" env-default:"true"`
	HashSalt string `yaml:"hash_salt" env:"LOG_HASH_SALT"`
}

type RedisConfig struct {
	redis.Config `yaml:",inline"`
	LockTTL      time.Duration `yaml:"lock_ttl" env:"REDIS_LOCK_TTL" env-default:"10s"`
	LockWait     time.Duration `yaml:"lock_wait" env:"REDIS_LOCK_WAIT" env-default:"3s"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
	Issuer    string `yaml:"issuer" env:"JWT_ISSUER"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

type RecommendationConfig struct {
	CandidatePool int `yaml:"candidate_pool" env:"RECS_CANDIDATE_POOL" env-default:"30"`
	Limit         int `yaml:"limit" env:"RECS_LIMIT" env-default:"10"`
}

// LoadConfig reads the YAML file named by CONFIG_PATH (fallback ./config.yaml)
// and overlays environment variables. A missing fallback file is not an error.
func LoadConfig() (Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return Config{}, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout must be >= 0 (got %s)", c.Server.RequestTimeout)
	}
	if strings.TrimSpace(c.Neo4j.URI) == "" {
		return fmt.Errorf("neo4j.uri is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Redis.LockTTL <= 0 {
		return fmt.Errorf("redis.lock_ttl must be > 0 (got %s)", c.Redis.LockTTL)
	}
	if c.Redis.LockWait < 0 {
		return fmt.Errorf("redis.lock_wait must be >= 0 (got %s)", c.Redis.LockWait)
	}
	if err := c.Recommendations.validate(); err != nil {
		return fmt.Errorf("recommendations: %w", err)
	}
	if c.OTel.SampleRatio < 0 || c.OTel.SampleRatio > 1 {
		return fmt.Errorf("otel.sample_ratio must be within [0,1] (got %v)", c.OTel.SampleRatio)
	}
	c.CORS.AllowedOrigins = trimOrigins(c.CORS.AllowedOrigins)
	return nil
}

func (r *RecommendationConfig) validate() error {
	if r.Limit <= 0 || r.Limit > reading.MaxRecommendations {
		return fmt.Errorf("limit must be within 1..%d (got %d)", reading.MaxRecommendations, r.Limit)
	}
	if r.CandidatePool < r.Limit {
		return fmt.Errorf("candidate_pool must be >= limit (got %d < %d)", r.CandidatePool, r.Limit)
	}
	return nil
}

func trimOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
