// Package journal records every deposit submission attempt.
package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/satheeshds/termdeposit/models"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

func init() {
	sqlx.BindDriver("duckdb", sqlx.QUESTION)
}

const insertSubmission = `INSERT INTO deposit_submissions (
	id, wizard_id, mode, deal_reference, funding_account, repayment_account,
	currency, amount, start_date, number_of_days, maturity_instruction,
	reference, status, error, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const listSubmissions = `SELECT id, wizard_id, mode, deal_reference, funding_account,
	repayment_account, currency, amount, start_date, number_of_days,
	maturity_instruction, reference, status, error, created_at
FROM deposit_submissions
ORDER BY created_at DESC
LIMIT ?`

// Store is the SQL-backed submission journal.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an open database. driver picks the placeholder style.
func NewStore(db *sql.DB, driver string) *Store {
	return &Store{db: sqlx.NewDb(db, driver)}
}

// RecordSubmission appends one attempt.
func (s *Store) RecordSubmission(ctx context.Context, sub models.Submission) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(insertSubmission),
		sub.ID, sub.WizardID, sub.Mode, sub.DealReference, sub.FundingAccountID,
		sub.RepaymentAccountID, sub.Currency, sub.Amount, sub.StartDate,
		sub.NumberOfDays, sub.MaturityInstruction, sub.Reference, sub.Status,
		sub.Error, sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("recording submission %s: %w", sub.ID, err)
	}
	return nil
}

// List returns the most recent attempts first. limit is clamped to
// [1, MaxLimit]; zero or less means DefaultLimit.
func (s *Store) List(ctx context.Context, limit int) ([]models.Submission, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	out := []models.Submission{}
	if err := s.db.SelectContext(ctx, &out, s.db.Rebind(listSubmissions), limit); err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	return out, nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
