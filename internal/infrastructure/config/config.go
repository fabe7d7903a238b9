package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	ClientURL string `env:"CLIENT_URL, default=http://localhost:5173"`

	Mongo MongoConfig
	Redis RedisConfig
	Seed  SeedConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskboard"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SeedConfig holds up to two admin accounts ensured at startup. A pair with
// either field empty is skipped silently.
type SeedConfig struct {
	FirstAdminEmail     string `env:"FIRST_ADMIN_EMAIL"`
	FirstAdminPassword  string `env:"FIRST_ADMIN_PASSWORD"`
	SecondAdminEmail    string `env:"SECOND_ADMIN_EMAIL"`
	SecondAdminPassword string `env:"SECOND_ADMIN_PASSWORD"`
}

// AdminEmails returns the configured admin allow-list, blanks excluded.
func (c *Config) AdminEmails() []string {
	var emails []string
	for _, e := range []string{c.Seed.FirstAdminEmail, c.Seed.SecondAdminEmail} {
		if e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
