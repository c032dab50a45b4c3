package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	// Upstream storefront REST backend. The gateway refuses to start
	// without a base URL, matching the front-end shim behaviour.
	Storefront struct {
		BaseURL string `env:"STOREFRONT_API_URL,required"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken string  `env:"BOT_TOKEN,required"`
		AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`
	}

	Payments struct {
		// 1 USD ~= 100 Stars, rounded.
		StarsPerUSD int `env:"STARS_PER_USD" envDefault:"100"`
	}
}

func Load() (*Config, error) {
	// .env is optional; in production the variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
