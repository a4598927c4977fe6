package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const devJWTSecret = "dev-secret-change-me"

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	AccessTokenTTL       time.Duration `env:"ACCESS_TOKEN_TTL,       default=30m"`
	VerificationTokenTTL time.Duration `env:"VERIFICATION_TOKEN_TTL, default=24h"`

	Mongo MongoConfig
	Redis RedisConfig
	Video VideoConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=visitation"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type VideoConfig struct {
	Provider string        `env:"VIDEO_PROVIDER,  default=mock"`
	TokenTTL time.Duration `env:"VIDEO_TOKEN_TTL, default=2h"`

	LiveKitURL       string `env:"LIVEKIT_URL"`
	LiveKitAPIKey    string `env:"LIVEKIT_API_KEY"`
	LiveKitAPISecret string `env:"LIVEKIT_API_SECRET"`

	TwilioAccountSID   string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAPIKeySID    string `env:"TWILIO_API_KEY_SID"`
	TwilioAPIKeySecret string `env:"TWILIO_API_KEY_SECRET"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from an arbitrary lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("config: JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = devJWTSecret
	}
	return &cfg, nil
}
