package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for huddle. Values come from environment
// variables; secrets never have defaults.
type Config struct {
	Port        string `env:"PORT" env-default:"3000"`
	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecret        string        `env:"JWT_SECRET"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL  time.Duration `env:"REFRESH_TOKEN_TTL" env-default:"168h"`

	// AllowedOriginsStr is a comma-separated list of CORS origins.
	AllowedOriginsStr string `env:"ALLOWED_ORIGINS" env-default:"http://localhost:3000,http://localhost:5173"`

	// AllowResendAfterReject controls whether a rejected contact request
	// can be re-sent. Off by default: a rejected edge blocks new requests
	// between the pair until it is removed.
	AllowResendAfterReject bool `env:"CONTACTS_ALLOW_RESEND_AFTER_REJECT" env-default:"false"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}

	return &cfg, nil
}

// AllowedOrigins returns the parsed CORS origin list.
func (c *Config) AllowedOrigins() []string {
	var origins []string

	for _, origin := range strings.Split(c.AllowedOriginsStr, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
