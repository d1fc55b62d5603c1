package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the gateway configuration, read from the environment.
type Config struct {
	Port     string `env:"PORT,      default=8080"        json:"port"`
	Env      string `env:"ENV,       default=development" json:"env"`
	LogLevel string `env:"LOG_LEVEL, default=info"        json:"logLevel"`

	Backend       BackendConfig       `json:"backend"`
	Socket        SocketConfig        `json:"socket"`
	Session       SessionConfig       `json:"session"`
	Redis         RedisConfig         `json:"redis"`
	Notifications NotificationsConfig `json:"notifications"`
	RateLimit     RateLimitConfig     `json:"rateLimit"`
}

type BackendConfig struct {
	URL              string        `env:"BACKEND_URL,                default=http://localhost:5000/api" json:"url"`
	Timeout          time.Duration `env:"BACKEND_TIMEOUT,            default=15s"                       json:"timeout"`
	HealthPath       string        `env:"BACKEND_HEALTH_PATH,        default=/health"                   json:"healthPath"`
	MaxResponseBytes int64         `env:"BACKEND_MAX_RESPONSE_BYTES, default=10485760"                  json:"maxResponseBytes"`
}

type SocketConfig struct {
	URL              string        `env:"SOCKET_URL,               default=ws://localhost:5000/ws" json:"url"`
	HandshakeTimeout time.Duration `env:"SOCKET_HANDSHAKE_TIMEOUT, default=10s"                   json:"handshakeTimeout"`
	MaxRetries       int           `env:"SOCKET_MAX_RETRIES,       default=5"                     json:"maxRetries"`
	BackoffInitial   time.Duration `env:"SOCKET_BACKOFF_INITIAL,   default=1s"                    json:"backoffInitial"`
	BackoffMax       time.Duration `env:"SOCKET_BACKOFF_MAX,       default=30s"                   json:"backoffMax"`
}

type SessionConfig struct {
	CookieName   string        `env:"SESSION_COOKIE,        default=portal_sid" json:"cookieName"`
	TTL          time.Duration `env:"SESSION_TTL,           default=168h"       json:"ttl"`
	Store        string        `env:"SESSION_STORE,         default=redis"      json:"store"`
	SecureCookie bool          `env:"SESSION_SECURE_COOKIE, default=false"      json:"secureCookie"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379" json:"addr"`
	DB       int    `env:"REDIS_DB,       default=0"              json:"db"`
	Password string `env:"REDIS_PASSWORD"                         json:"-"`
}

type NotificationsConfig struct {
	LogCapacity     int           `env:"NOTIFICATION_LOG_CAPACITY, default=100" json:"logCapacity"`
	ToastTTL        time.Duration `env:"TOAST_TTL,                 default=5s"  json:"toastTTL"`
	DispatchWorkers int           `env:"DISPATCH_WORKERS,          default=8"   json:"dispatchWorkers"`
}

type RateLimitConfig struct {
	LoginPerMinute int `env:"LOGIN_RATE_PER_MINUTE, default=10" json:"loginPerMinute"`
	LoginBurst     int `env:"LOGIN_BURST,           default=5"  json:"loginBurst"`
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadWith reads configuration from l with go-envconfig and checks the
// values that would otherwise fail late, at first use. Commands pass
// envconfig.OsLookuper(); tests pass a MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	switch cfg.Session.Store {
	case "redis", "memory":
	default:
		return nil, fmt.Errorf("config: SESSION_STORE must be redis or memory, got %q", cfg.Session.Store)
	}
	if cfg.Notifications.LogCapacity <= 0 {
		return nil, fmt.Errorf("config: NOTIFICATION_LOG_CAPACITY must be positive")
	}
	return &cfg, nil
}
