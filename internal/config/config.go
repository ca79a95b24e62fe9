package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"medication-tracker/internal/platform/logger"
)

// Prefix de todas las variables: MEDS_HTTP_PORT, MEDS_STORE, ...
const Prefix = "MEDS"

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Store: memory | sqlite | postgres
	Store       string `envconfig:"STORE" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"medications.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Zona horaria que define el día calendario. "Local" o un nombre IANA.
	Timezone string `envconfig:"TIMEZONE" default:"Local"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	AppName   string `envconfig:"APP_NAME" default:"medication-tracker"`

	SeedDemo bool `envconfig:"SEED_DEMO" default:"false"`

	// Backup a S3 (o compatible). Sin bucket el comando backup falla.
	BackupBucket   string `envconfig:"BACKUP_BUCKET" default:""`
	BackupPrefix   string `envconfig:"BACKUP_PREFIX" default:"backups/"`
	BackupRegion   string `envconfig:"BACKUP_REGION" default:"us-east-1"`
	BackupEndpoint string `envconfig:"BACKUP_ENDPOINT" default:""`
	BackupDays     int    `envconfig:"BACKUP_DAYS" default:"30"`
}

// New lee la configuración del entorno y la valida.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("%s_SQLITE_PATH is required for store %q", Prefix, c.Store)
		}
	case StorePostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return fmt.Errorf("%s_POSTGRES_DSN is required for store %q", Prefix, c.Store)
		}
	default:
		return fmt.Errorf("unsupported %s_STORE: %s", Prefix, c.Store)
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid %s_HTTP_PORT: %d", Prefix, c.HTTPPort)
	}
	if c.BackupDays < 1 {
		return fmt.Errorf("invalid %s_BACKUP_DAYS: %d", Prefix, c.BackupDays)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resuelve TIMEZONE. Vacío o "Local" es la zona del proceso.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid %s_TIMEZONE %q: %w", Prefix, tz, err)
	}
	return loc, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:  logger.ParseLevel(c.LogLevel),
		Format: logger.ParseFormat(c.LogFormat),
		App:    c.AppName,
	}
}
