// Package db はPostgreSQLへのGORM接続を管理します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	alertentity "tickrtime/internal/feature/alerts/domain/entity"
	authentity "tickrtime/internal/feature/auth/domain/entity"
	symbolentity "tickrtime/internal/feature/symbollist/domain/entity"
	watchlistentity "tickrtime/internal/feature/watchlist/domain/entity"
)

// connectTimeout is how long OpenDB keeps retrying before giving up.
const connectTimeout = 60 * time.Second

// Config holds database connection settings.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string

	// InstanceName is the Cloud SQL instance connection name.
	// When set, the connection goes through the Cloud SQL unix socket.
	InstanceName string

	SSLMode string
}

// LoadConfigFromEnv loads database settings from environment variables.
func LoadConfigFromEnv() Config {
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	return Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		SSLMode:      sslMode,
	}
}

// BuildDSN builds a PostgreSQL DSN from the config.
// InstanceName takes precedence and selects the Cloud SQL unix socket path.
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.InstanceName, cfg.User, cfg.Password, cfg.Name)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Opener abstracts gorm.Open so connection retries can be tested without a database.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry attempts to connect until the timeout elapses, sleeping between attempts.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB connects to PostgreSQL using environment configuration.
// When RUN_MIGRATIONS=true, the schema is auto-migrated on startup.
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()
	dsn := BuildDSN(cfg)

	db, err := ConnectWithRetry(dsn, connectTimeout, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&symbolentity.Symbol{},
			&watchlistentity.WatchlistItem{},
			&alertentity.Alert{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
