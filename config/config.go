package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Port the HTTP server listens on
	Port string `env:"PORT" envDefault:"5001"`

	// Path to the sqlite database file
	DatabasePath string `env:"DATABASE_PATH" envDefault:"database/homequest.db"`

	// Origin allowed by CORS (the React frontend)
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	// Secret used to sign access tokens
	JWTSecret string `env:"JWT_SECRET" envDefault:"your-secret-key-change-in-production"`

	// Access token lifetime in hours (7 days)
	AccessTokenTTLHours int `env:"ACCESS_TOKEN_TTL_HOURS" envDefault:"168"`

	// Refresh token lifetime in days
	RefreshTokenTTLDays int `env:"REFRESH_TOKEN_TTL_DAYS" envDefault:"30"`

	// Whether to seed insight and demo-user data on startup
	SeedOnStart bool `env:"SEED_ON_START" envDefault:"true"`

	// Set the refresh cookie's Secure flag (production)
	SecureCookies bool `env:"SECURE_COOKIES" envDefault:"false"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
