package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	// JWTExpirationMinutes is the access-token lifetime. Tokens are not
	// revocable server-side, so keep this short.
	JWTExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES, default=15"`
	LogLevel             string `env:"LOG_LEVEL, default=info"`
	// LoginRatePerMinute caps login attempts per client IP.
	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE, default=10"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=timetrack_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
