package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`
	DBUser     string `env:"DB_USER" envDefault:"taskflow"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"taskflow"`
	DBName     string `env:"DB_NAME" envDefault:"taskflow"`

	JWTSecret       string        `env:"JWT_SECRET" envDefault:"default-secret-key-change-me-32ch"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`

	OAuthRedirectURI   string `env:"OAUTH_REDIRECT_URI" envDefault:"http://localhost:5173/oauth/redirect"`
	GitHubClientID     string `env:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET"`

	GinMode    string `env:"GIN_MODE" envDefault:"debug"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
