package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate brings the journal schema up to date. Postgres is versioned through
// goose; DuckDB runs idempotent statements, so it is safe to call on every start.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	slog.Info("running database migrations", "driver", driver)

	switch driver {
	case DriverPostgres:
		goose.SetBaseFS(migrationFS)
		if err := goose.SetDialect("postgres"); err != nil {
			return fmt.Errorf("setting migration dialect: %w", err)
		}
		if err := goose.UpContext(ctx, db, "migrations"); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	case DriverDuckDB:
		for _, stmt := range duckdbMigrations {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration failed: %w\nstatement: %s", err, stmt)
			}
		}
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	slog.Info("database migrations complete")
	return nil
}

var duckdbMigrations = []string{
	// One row per create attempt, successful or not
	`CREATE TABLE IF NOT EXISTS deposit_submissions (
		id VARCHAR PRIMARY KEY,
		wizard_id VARCHAR NOT NULL,
		mode VARCHAR NOT NULL CHECK(mode IN ('DEAL_REFERENCED', 'AD_HOC')),
		deal_reference VARCHAR,
		funding_account VARCHAR NOT NULL,
		repayment_account VARCHAR NOT NULL,
		currency VARCHAR NOT NULL,
		amount VARCHAR NOT NULL,
		start_date VARCHAR NOT NULL,
		number_of_days INTEGER NOT NULL,
		maturity_instruction VARCHAR NOT NULL,
		reference VARCHAR,
		status VARCHAR NOT NULL,
		error VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_deposit_submissions_created_at ON deposit_submissions(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_deposit_submissions_wizard ON deposit_submissions(wizard_id)`,
}
