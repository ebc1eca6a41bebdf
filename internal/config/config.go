package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store backends accepted in APP_STORE.
const (
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

// Config holds the application configuration.
// Values come from environment variables with the prefix "APP", e.g. APP_PORT=8080.
type Config struct {
	ServerPort      int           `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`

	Store         string `envconfig:"STORE" default:"sqlite"`
	DatabasePath  string `envconfig:"DATABASE_PATH" default:"./content.db"`
	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"content_creator"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// RedisURL enables cross-process broadcast fan-out when set.
	RedisURL string `envconfig:"REDIS_URL"`
	// ResyncCron schedules periodic snapshot rebroadcasts; empty disables it.
	ResyncCron string `envconfig:"RESYNC_CRON" default:"@every 5m"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

// Load loads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("APP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Store != StoreSQLite && cfg.Store != StoreMongo {
		return nil, fmt.Errorf("unsupported store %q", cfg.Store)
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}
