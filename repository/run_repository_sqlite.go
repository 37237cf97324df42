package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"card-payoff/domain"
)

// RunRepositorySQLite persists run records to a SQLite database.
type RunRepositorySQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// NewRunRepositorySQLite opens (or creates) the SQLite database and runs migrations.
func NewRunRepositorySQLite(dbPath string) (*RunRepositorySQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &RunRepositorySQLite{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("sqlite run repository opened", "path", dbPath)
	return r, nil
}

func (r *RunRepositorySQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scenario_runs (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id                TEXT NOT NULL,
			scenario_id           TEXT NOT NULL,
			label                 TEXT,
			total_monthly_payment TEXT NOT NULL,
			outcome               TEXT NOT NULL,
			months_to_pay_off     INTEGER NOT NULL,
			total_interest_paid   TEXT NOT NULL,
			total_principal_paid  TEXT NOT NULL,
			created_at            INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scenario_runs_run ON scenario_runs(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scenario_runs_created ON scenario_runs(created_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", stmtPreview(s), err)
		}
	}
	return nil
}

// stmtPreview shortens a SQL statement for error messages.
func stmtPreview(s string) string {
	return s[:min(len(s), 40)]
}

// Save writes all records of a run in one transaction.
func (r *RunRepositorySQLite) Save(ctx context.Context, records []domain.RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		_, err := tx.ExecContext(ctx, `INSERT INTO scenario_runs
			(run_id, scenario_id, label, total_monthly_payment, outcome,
			 months_to_pay_off, total_interest_paid, total_principal_paid, created_at)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			rec.RunID, rec.ScenarioID, rec.Label, rec.TotalMonthlyPayment.String(),
			string(rec.Outcome), rec.MonthsToPayOff,
			rec.TotalInterestPaid.String(), rec.TotalPrincipalPaid.String(),
			rec.CreatedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("insert run %s/%s: %w", rec.RunID, rec.ScenarioID, err)
		}
	}
	return tx.Commit()
}

// List returns up to limit records, newest first. A limit <= 0 returns all.
func (r *RunRepositorySQLite) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `SELECT
			run_id, scenario_id, label, total_monthly_payment, outcome,
			months_to_pay_off, total_interest_paid, total_principal_paid, created_at
		FROM scenario_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	out := []domain.RunRecord{}
	for rows.Next() {
		var (
			rec                          domain.RunRecord
			outcome                      string
			payment, interest, principal string
			createdAt                    int64
		)
		if err := rows.Scan(&rec.RunID, &rec.ScenarioID, &rec.Label, &payment, &outcome,
			&rec.MonthsToPayOff, &interest, &principal, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if rec.TotalMonthlyPayment, err = decimal.NewFromString(payment); err != nil {
			return nil, fmt.Errorf("parse payment %q: %w", payment, err)
		}
		if rec.TotalInterestPaid, err = decimal.NewFromString(interest); err != nil {
			return nil, fmt.Errorf("parse interest %q: %w", interest, err)
		}
		if rec.TotalPrincipalPaid, err = decimal.NewFromString(principal); err != nil {
			return nil, fmt.Errorf("parse principal %q: %w", principal, err)
		}
		rec.Outcome = domain.Outcome(outcome)
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RunRepositorySQLite) Prune(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM scenario_runs WHERE created_at < ?`, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func (r *RunRepositorySQLite) Close() error {
	slog.Info("closing sqlite run repository")
	return r.db.Close()
}
