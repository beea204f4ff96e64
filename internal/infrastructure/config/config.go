package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const envProduction = "production"

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CORSOrigins are the browser origins allowed to call the API with credentials.
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:5500,http://127.0.0.1:5500,http://localhost:3000"`

	Admin   AdminConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Mail    MailConfig
}

type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME, required"`
	Password string `env:"ADMIN_PASSWORD, required"`
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET, required"`
	TTL    time.Duration `env:"SESSION_TTL,    default=1h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=clinic"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// MailConfig is optional: without EMAIL_USER and EMAIL_PASS bookings are
// stored but no alert is sent.
type MailConfig struct {
	User     string `env:"EMAIL_USER"`
	Password string `env:"EMAIL_PASS"`
	To       string `env:"NOTIFY_TO"`
	Host     string `env:"SMTP_HOST,      default=smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT,      default=587"`
	Workers  int    `env:"NOTIFY_WORKERS, default=2"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l and rejects missing or blank
// required values, so the process refuses to start half-configured.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether cookies must be sent as Secure cross-site cookies.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, envProduction)
}

// MailEnabled reports whether admin notifications can be sent.
func (c *Config) MailEnabled() bool {
	return c.Mail.User != "" && c.Mail.Password != ""
}

func (c *Config) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"MONGO_URI", c.Mongo.URI},
		{"ADMIN_USERNAME", c.Admin.Username},
		{"ADMIN_PASSWORD", c.Admin.Password},
		{"SESSION_SECRET", c.Session.Secret},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	return nil
}
