package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/yungbote/productflow-backend/internal/data/db"
	"github.com/yungbote/productflow-backend/internal/jobs/cleanup"
	"github.com/yungbote/productflow-backend/internal/platform/filestore"
)

type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	LogMode string `env:"LOG_MODE" envDefault:"development"`

	HTTPAddr         string   `env:"HTTP_ADDR" envDefault:":8080"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`

	DBDriver         string `env:"DB_DRIVER" envDefault:"postgres"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresName     string `env:"POSTGRES_NAME" envDefault:"productflow"`
	SQLitePath       string `env:"SQLITE_PATH" envDefault:"productflow.db"`

	StorageRoot    string `env:"STORAGE_ROOT" envDefault:"./storage"`
	StorageTempDir string `env:"STORAGE_TEMP_DIR" envDefault:"tmp"`

	CleanupWorkers   int `env:"CLEANUP_WORKERS" envDefault:"2"`
	CleanupQueueSize int `env:"CLEANUP_QUEUE_SIZE" envDefault:"128"`
}

// LoadConfig parses the environment. With APP_ENV=local a .env file in the
// working directory is loaded first; variables already set win.
func LoadConfig() (Config, error) {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("APP_ENV")), "local") {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

func (c Config) Database() db.Config {
	return db.Config{
		Driver:           c.DBDriver,
		PostgresHost:     c.PostgresHost,
		PostgresPort:     c.PostgresPort,
		PostgresUser:     c.PostgresUser,
		PostgresPassword: c.PostgresPassword,
		PostgresName:     c.PostgresName,
		SQLitePath:       c.SQLitePath,
	}
}

func (c Config) Storage() filestore.Config {
	return filestore.Config{Root: c.StorageRoot, TempDir: c.StorageTempDir}
}

func (c Config) Cleanup() cleanup.Config {
	return cleanup.Config{Concurrency: c.CleanupWorkers, QueueSize: c.CleanupQueueSize}
}
