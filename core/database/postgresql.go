package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"wedding-invitations/core/config"
	"wedding-invitations/core/constants"
	"wedding-invitations/core/logger"
)

type IDatabase interface {
	ExecContext(ctx context.Context, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	BeginTxx(ctx context.Context) (*sqlx.Tx, error)
}

type Database struct {
	sqlx *sqlx.DB
}

func InitDB(cfg config.DatabaseConfig) (*Database, error) {
	logger.Info("Initializing database...")

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, constants.DatabaseSSLMode)

	sqlxDB, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB := sqlxDB.DB
	sqlDB.SetMaxOpenConns(constants.DatabaseMaxOpenConns)
	sqlDB.SetMaxIdleConns(constants.DatabaseMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(constants.DatabaseConnMaxLifetime) * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &Database{
		sqlx: sqlxDB,
	}

	if err := db.ensureSchema(); err != nil {
		return nil, err
	}

	logger.Info("Database initialized successfully",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)

	return db, nil
}

func (d *Database) ensureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS invitations (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL,
			type TEXT NOT NULL,
			addressed_to TEXT NOT NULL,
			email_address TEXT,
			email_sent BOOLEAN NOT NULL DEFAULT FALSE,
			contact_information TEXT,
			sent_at TIMESTAMPTZ,
			responded_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS invitees (
			id TEXT PRIMARY KEY,
			invitation_id TEXT NOT NULL REFERENCES invitations(id),
			position INT NOT NULL,
			name TEXT,
			status TEXT NOT NULL,
			requires_food BOOLEAN NOT NULL DEFAULT FALSE,
			food_option TEXT,
			dietary_notes TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_invitees_invitation_id ON invitees(invitation_id);
	`
	if _, err := d.sqlx.Exec(schema); err != nil {
		logger.Error("Failed to ensure schema", "error", err)
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

func (d *Database) ExecContext(ctx context.Context, query string, args ...any) error {
	_, err := d.sqlx.ExecContext(ctx, query, args...)
	return err
}

func (d *Database) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.GetContext(ctx, dest, query, args...)
}

func (d *Database) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.SelectContext(ctx, dest, query, args...)
}

func (d *Database) BeginTxx(ctx context.Context) (*sqlx.Tx, error) {
	return d.sqlx.BeginTxx(ctx, nil)
}

