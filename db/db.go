package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	DriverPostgres = "pgx"
	DriverDuckDB   = "duckdb"
)

// Open connects to the journal database. DuckDB keeps an embedded file at dsn,
// defaulting to "./data/deposits.db"; pgx expects a Postgres connection string.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverDuckDB:
		if dsn == "" {
			dsn = "./data/deposits.db"
		}
		// Ensure the directory exists
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("a connection string is required for driver %q", driver)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if driver == DriverDuckDB {
		// single writer for the embedded file
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	slog.Info("database connected", "driver", driver)
	return db, nil
}
