package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"pets-api/internal/platform/logger"
)

// StoreKind identifica el backend de persistencia. Se elige una sola vez al arrancar.
type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StorePostgres StoreKind = "postgres"
	StoreSQLite   StoreKind = "sqlite"
	StoreMongo    StoreKind = "mongodb"
	StoreRedis    StoreKind = "redis"
)

var ErrUnknownStore = errors.New("unknown store type")

// ParseStoreKind acepta también los nombres de perfil históricos (in-memory, jpa, mongo).
func ParseStoreKind(s string) (StoreKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory", "in-memory", "":
		return StoreMemory, nil
	case "postgres", "postgresql", "jpa":
		return StorePostgres, nil
	case "sqlite":
		return StoreSQLite, nil
	case "mongodb", "mongo":
		return StoreMongo, nil
	case "redis":
		return StoreRedis, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStore, s)
	}
}

// UnmarshalText permite que env.Parse normalice STORE_TYPE.
func (k *StoreKind) UnmarshalText(b []byte) error {
	parsed, err := ParseStoreKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	AppName   string `env:"APP_NAME" envDefault:"pets-api"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Store StoreKind `env:"STORE_TYPE" envDefault:"memory"`

	// Postgres
	DBDSN string `env:"DB_DSN"`

	// SQLite
	SQLitePath string `env:"SQLITE_PATH" envDefault:"pets.db"`

	// MongoDB
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"petdb"`

	// Redis
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load carga .env si existe y luego parsea el entorno.
func Load() (*Config, error) {
	// Sin .env no es error.
	_ = godotenv.Load()
	return Parse()
}

// Parse lee solo variables de entorno (sin .env). Es lo que usan los tests.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("PORT is empty")
	}
	switch c.Store {
	case StorePostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return errors.New("DB_DSN is required when STORE_TYPE=postgres")
		}
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("SQLITE_PATH is required when STORE_TYPE=sqlite")
		}
	case StoreMongo:
		if strings.TrimSpace(c.MongoURI) == "" || strings.TrimSpace(c.MongoDatabase) == "" {
			return errors.New("MONGO_URI and MONGO_DATABASE are required when STORE_TYPE=mongodb")
		}
	case StoreRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return errors.New("REDIS_URL is required when STORE_TYPE=redis")
		}
	}
	return nil
}

// Addr es la dirección de escucha del server HTTP.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:  logger.ParseLevel(c.LogLevel),
		Format: logger.ParseFormat(c.LogFormat),
		App:    c.AppName,
	}
}
