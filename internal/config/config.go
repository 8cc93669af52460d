package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Catalog    CatalogConfig
	Workflow   WorkflowConfig
	Log        LogConfig
	Storefront StorefrontConfig
	Client     ClientConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

type CatalogConfig struct {
	CacheTTL time.Duration
}

type WorkflowConfig struct {
	MaxRetryAttempts int
}

type LogConfig struct {
	Level string
}

// StorefrontConfig holds the public settings shown in the storefront footer.
type StorefrontConfig struct {
	SupportEmail string
	Facebook     string
	Instagram    string
	LinkedIn     string
	YouTube      string
}

// ClientConfig configures the storefront client core.
type ClientConfig struct {
	APIBaseURL     string
	StateDir       string
	SyncQueueSize  int
	RequestTimeout time.Duration
}

// Load reads configuration from the optional YAML file at path, then from the
// environment. Environment variables win over file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "coilworks")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "coilworks")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("REDIS_READ_TIMEOUT", "3s")
	v.SetDefault("REDIS_WRITE_TIMEOUT", "3s")
	v.SetDefault("AUTH_JWT_SECRET", "")
	v.SetDefault("AUTH_JWT_ISSUER", "coilworks")
	v.SetDefault("CATALOG_CACHE_TTL", "5m")
	v.SetDefault("WORKFLOW_MAX_RETRY_ATTEMPTS", 3)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SUPPORT_EMAIL", "")
	v.SetDefault("SOCIAL_FACEBOOK", "")
	v.SetDefault("SOCIAL_INSTAGRAM", "")
	v.SetDefault("SOCIAL_LINKEDIN", "")
	v.SetDefault("SOCIAL_YOUTUBE", "")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("STOREFRONT_STATE_DIR", ".coilworks")
	v.SetDefault("CART_SYNC_QUEUE_SIZE", 64)
	v.SetDefault("HTTP_CLIENT_TIMEOUT", "10s")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	durations := map[string]time.Duration{}
	for _, key := range []string{
		"DB_CONN_MAX_LIFETIME",
		"REDIS_DIAL_TIMEOUT",
		"REDIS_READ_TIMEOUT",
		"REDIS_WRITE_TIMEOUT",
		"CATALOG_CACHE_TTL",
		"HTTP_CLIENT_TIMEOUT",
	} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		durations[key] = d
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durations["DB_CONN_MAX_LIFETIME"],
		},
		Redis: RedisConfig{
			Addr:         v.GetString("REDIS_ADDR"),
			Password:     v.GetString("REDIS_PASSWORD"),
			DB:           v.GetInt("REDIS_DB"),
			PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
			DialTimeout:  durations["REDIS_DIAL_TIMEOUT"],
			ReadTimeout:  durations["REDIS_READ_TIMEOUT"],
			WriteTimeout: durations["REDIS_WRITE_TIMEOUT"],
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("AUTH_JWT_SECRET"),
			JWTIssuer: v.GetString("AUTH_JWT_ISSUER"),
		},
		Catalog: CatalogConfig{
			CacheTTL: durations["CATALOG_CACHE_TTL"],
		},
		Workflow: WorkflowConfig{
			MaxRetryAttempts: v.GetInt("WORKFLOW_MAX_RETRY_ATTEMPTS"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Storefront: StorefrontConfig{
			SupportEmail: v.GetString("SUPPORT_EMAIL"),
			Facebook:     v.GetString("SOCIAL_FACEBOOK"),
			Instagram:    v.GetString("SOCIAL_INSTAGRAM"),
			LinkedIn:     v.GetString("SOCIAL_LINKEDIN"),
			YouTube:      v.GetString("SOCIAL_YOUTUBE"),
		},
		Client: ClientConfig{
			APIBaseURL:     strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			StateDir:       v.GetString("STOREFRONT_STATE_DIR"),
			SyncQueueSize:  v.GetInt("CART_SYNC_QUEUE_SIZE"),
			RequestTimeout: durations["HTTP_CLIENT_TIMEOUT"],
		},
	}

	return cfg, nil
}
