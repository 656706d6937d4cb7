package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramToken string        `envconfig:"TELEGRAM_TOKEN" required:"true"`
	DBDSN         string        `envconfig:"DB_DSN" required:"true"`
	Environment   string        `envconfig:"ENV" default:"development"`
	CCTFile       string        `envconfig:"CCT_FILE" default:"cct.json"`
	MigrationsDir string        `envconfig:"MIGRATIONS_DIR" default:"migrations"`
	StateTTL      time.Duration `envconfig:"STATE_TTL" default:"30m"`
}

func Load() (*Config, error) {
	// .env is optional, environment variables win either way.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process config: %w", err)
	}

	return &cfg, nil
}
