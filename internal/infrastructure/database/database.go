package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"bookkeeping-gateway/internal/config"
)

type Database struct {
	DB     *sql.DB
	logger *zap.Logger
}

func NewDatabase(cfg *config.Config, logger *zap.Logger) (*Database, error) {
	// Build PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	db, err := sql.Open(cfg.Database.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connected successfully",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("dbname", cfg.Database.DBName),
	)

	database := New(db, logger)
	if err := database.Migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return database, nil
}

// New wraps an already opened connection
func New(db *sql.DB, logger *zap.Logger) *Database {
	return &Database{
		DB:     db,
		logger: logger,
	}
}

var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "create api_calls table",
		sql: `
	CREATE TABLE IF NOT EXISTS api_calls (
		id SERIAL PRIMARY KEY,
		correlation_id VARCHAR(36) NOT NULL,
		endpoint TEXT NOT NULL,
		method VARCHAR(10) NOT NULL,
		request_body TEXT DEFAULT '',
		response_body TEXT DEFAULT '',
		status_code INTEGER NOT NULL,
		duration_ms BIGINT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`,
	},
	{
		name: "create api_calls created_at index",
		sql: `
	CREATE INDEX IF NOT EXISTS idx_api_calls_created_at ON api_calls(created_at);
	`,
	},
}

func (d *Database) Migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := d.DB.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to %s: %w", m.name, err)
		}
	}

	d.logger.Info("Database migrations completed successfully")
	return nil
}

// Ping checks that the connection is still usable
func (d *Database) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.DB.Close()
}
