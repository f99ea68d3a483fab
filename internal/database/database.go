package database

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Connect opens a PostgreSQL connection, verifies it, and runs pending
// migrations.
func Connect(dbURL string, logger *slog.Logger) (*sqlx.DB, error) {
	logger.Info("Connecting to PostgreSQL", slog.String("dsn", redactPassword(dbURL)))

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := migrate(db, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Database ready")
	return db, nil
}

// migrate runs the embedded migrations using Goose.
func migrate(db *sqlx.DB, logger *slog.Logger) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	currentVersion, err := goose.GetDBVersion(db.DB)
	if err != nil {
		logger.Warn("Could not determine current schema version", slog.String("error", err.Error()))
		currentVersion = 0
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, err := goose.GetDBVersion(db.DB)
	if err != nil {
		return fmt.Errorf("failed to verify migration version: %w", err)
	}
	logger.Info("Migrations complete", slog.Int64("from", currentVersion), slog.Int64("to", newVersion))
	return nil
}

// redactPassword hides the password portion of a postgres URL for logging.
func redactPassword(dbURL string) string {
	schemeSplit := strings.SplitN(dbURL, "://", 2)
	if len(schemeSplit) != 2 {
		return dbURL
	}
	at := strings.LastIndex(schemeSplit[1], "@")
	if at == -1 {
		return dbURL
	}
	userInfo := schemeSplit[1][:at]
	if colon := strings.Index(userInfo, ":"); colon != -1 {
		userInfo = userInfo[:colon] + ":********"
	}
	return schemeSplit[0] + "://" + userInfo + schemeSplit[1][at:]
}
