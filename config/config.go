// config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           int      `env:"PORT" envDefault:"5200"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"postgres"` // postgres | sqlite
	DatabaseURL string `env:"DATABASE_URL"`
	DBLogLevel  string `env:"DB_LOG_LEVEL" envDefault:"warn"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"` // console | json

	Admin AdminConfig
	Auth  AuthConfig
	NATS  NATSConfig
	R2    R2Config

	// Zero disables the scheduled statistics export.
	StatsExportInterval time.Duration `env:"STATS_EXPORT_INTERVAL" envDefault:"0s"`
}

// AdminConfig seeds the first admin account. Registration of coaches and
// players requires an admin, so an empty password leaves the league locked.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL" envDefault:"admin@basketball.league.com"`
	Username string `env:"ADMIN_USERNAME" envDefault:"admin"`
	Password string `env:"ADMIN_PASSWORD"`
}

// AuthConfig switches token validation to a remote auth service when
// ServiceURL is set. Otherwise tokens are issued and checked locally.
type AuthConfig struct {
	ServiceURL   string `env:"AUTH_SERVICE_URL"`
	ServiceToken string `env:"AUTH_SERVICE_TOKEN"`
	BcryptCost   int    `env:"BCRYPT_COST" envDefault:"10"`
}

type NATSConfig struct {
	URL           string `env:"NATS_URL"`
	SubjectPrefix string `env:"NATS_SUBJECT_PREFIX" envDefault:"league.events"`
}

type R2Config struct {
	AccountID       string `env:"CLOUDFLARE_ACCOUNT_ID"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`
	Bucket          string `env:"R2_BUCKET_NAME"`
	CDNBaseURL      string `env:"CDN_BASE_URL"`
}

// Enabled reports whether enough is configured to talk to the bucket.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.Bucket != ""
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL environment variable not set")
		}
	case "sqlite":
		if c.DatabaseURL == "" {
			c.DatabaseURL = "league.db"
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.StatsExportInterval < 0 {
		return errors.New("STATS_EXPORT_INTERVAL must not be negative")
	}
	if c.StatsExportInterval > 0 && !c.R2.Enabled() {
		return errors.New("STATS_EXPORT_INTERVAL requires CLOUDFLARE_ACCOUNT_ID and R2_BUCKET_NAME")
	}
	return nil
}
