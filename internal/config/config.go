package config

import (
	"errors"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// insecureFallbackSecret keeps local development working without a
// configured JWT_SECRET. Refused in production.
const insecureFallbackSecret = "fallback-secret-key-for-development"

// placeholderClientSecret is the unconfigured value shipped in .env
// templates; seeing it means Google credentials were never set up.
const placeholderClientSecret = "your-google-client-secret"

type Config struct {
	Environment        string   `env:"ENVIRONMENT" envDefault:"development"`
	Port               string   `env:"PORT" envDefault:"7000"`
	DatabaseURL        string   `env:"DATABASE_URL"`
	GoogleClientID     string   `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string   `env:"GOOGLE_CLIENT_SECRET"`
	FrontendURL        string   `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	JWTSecret          string   `env:"JWT_SECRET"`
	CORSOrigins        []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:3001,http://127.0.0.1:3000"`
}

// Load parses the process environment, reading .env first outside
// production. Startup either gets a usable config or an error; there is
// no degraded mode.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if !cfg.IsProduction() {
		_ = godotenv.Load()
		// Reparse so .env values are picked up.
		if err := env.Parse(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		slog.Warn("JWT_SECRET not set, using insecure development fallback")
		cfg.JWTSecret = insecureFallbackSecret
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UseMockIdentityProvider reports whether the synthetic identity
// bypass applies: never in production, only when Google credentials
// are absent or still the template placeholder.
func (c *Config) UseMockIdentityProvider() bool {
	if c.IsProduction() {
		return false
	}
	return c.GoogleClientSecret == "" || c.GoogleClientSecret == placeholderClientSecret
}

// CallbackURL is the redirect URI registered with the provider.
func (c *Config) CallbackURL() string {
	return c.FrontendURL + "/auth/callback"
}
