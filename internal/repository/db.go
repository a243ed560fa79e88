package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB wraps database/sql with the dialect chosen from the DSN, so SQL
// written with ? placeholders runs on both backends.
type DB struct {
	*sql.DB
	dialect string
	logger  *slog.Logger
}

// Open connects to the store named by the DSN. A postgres:// or
// postgresql:// DSN selects the pgx driver; anything else is treated as a
// SQLite path or URI.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	driver, dialect := "sqlite", "sqlite"
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		driver, dialect = "pgx", "postgres"
	}

	logger.Info("connecting to database", "dialect", dialect)
	sqlDB, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		logger.Error("failed to connect to database", "error", err)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{DB: sqlDB, dialect: dialect, logger: logger}
	if err := db.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("successfully connected to database")
	return db, nil
}

func (db *DB) Dialect() string { return db.dialect }

// rebind converts ? placeholders to $n for postgres. Queries are written
// once, against the sqlite form.
func (db *DB) rebind(query string) string {
	if db.dialect != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id            TEXT PRIMARY KEY,
		source_path   TEXT NOT NULL,
		original_name TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL,
		submitted_at  TEXT NOT NULL,
		completed_at  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS reports (
		id                TEXT PRIMARY KEY,
		document_id       TEXT NOT NULL,
		source_path       TEXT NOT NULL,
		project_name      TEXT NOT NULL DEFAULT '',
		room_count        INTEGER NOT NULL,
		mean_data_quality REAL NOT NULL,
		compliance_rate   REAL NOT NULL,
		extraction_failed INTEGER NOT NULL,
		payload           TEXT NOT NULL,
		processed_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_document_id ON reports (document_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_processed_at ON reports (processed_at)`,
}

func (db *DB) migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.logger.Error("failed to apply schema", "error", err)
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// HealthCheck pings the store; used by the daemon health endpoint.
func (db *DB) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return db.PingContext(ctx)
}

// Close closes the database connection gracefully.
func (db *DB) Close() {
	db.logger.Info("closing database connection")
	if err := db.DB.Close(); err != nil {
		db.logger.Error("failed to close database", "error", err)
	}
}
