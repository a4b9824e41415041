package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultAuctioneerID is the stub auctioneer every request acts as until
// authentication exists.
const DefaultAuctioneerID = "e7d2f6f6-51b0-4f5a-b613-9fb9f78ed524"

type Config struct {
	StoreURL       string `env:"STORE_URL,required,notEmpty"        validate:"url"`
	StoreAccessKey string `env:"STORE_ACCESS_KEY,required,notEmpty"`
	RunMigrations  bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	AuctioneerID string `env:"AUCTIONEER_ID" envDefault:"e7d2f6f6-51b0-4f5a-b613-9fb9f78ed524" validate:"uuid"`

	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL" envDefault:"30s" validate:"min=1s"`
	ReconcileLockTTL  time.Duration `env:"RECONCILE_LOCK_TTL" envDefault:"25s" validate:"min=1s"`
	Timezone          string        `env:"TIMEZONE"           envDefault:"Local"`

	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort uint16 `env:"REDIS_PORT" envDefault:"6379" validate:"min=1000,max=65535"`

	NatsURL string `env:"NATS_URL" validate:"omitempty,url"`

	HttpServerPort uint16 `env:"HTTP_SERVER_PORT" envDefault:"8085" validate:"min=1000,max=65535"`
}

// Location resolves Timezone; date filters and form datetimes are read in it.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	validate := validator.New()
	err = validate.Struct(cfg)
	if err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	if _, err = cfg.Location(); err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}
