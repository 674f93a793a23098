package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const defaultJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port             string        `env:"PORT" envDefault:"8080"`
	Env              string        `env:"ENV" envDefault:"development"`
	DatabaseDSN      string        `env:"DATABASE_DSN" envDefault:"root:password@tcp(127.0.0.1:3306)/pwtool?parseTime=true"`
	JWTSecret        string        `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	JWTExpiry        time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
	GeneratorWorkers int           `env:"GENERATOR_WORKERS" envDefault:"1"`
	RateLimitRPS     float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst   int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load parses the process environment into a Config.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		return Config{}, fmt.Errorf("JWT_SECRET must be set in production environment")
	}
	if cfg.GeneratorWorkers < 1 {
		cfg.GeneratorWorkers = 1
	}

	return cfg, nil
}
