package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"card-payoff/domain"
)

// RunRepositoryPostgres persists run records to PostgreSQL.
type RunRepositoryPostgres struct {
	db *sql.DB
}

// NewRunRepositoryPostgres connects using a lib/pq DSN, e.g.
// "host=localhost port=5432 user=postgres dbname=cardpayoff sslmode=disable",
// and runs migrations.
func NewRunRepositoryPostgres(dsn string, maxOpenConns int) (*RunRepositoryPostgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	r := &RunRepositoryPostgres{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("postgres run repository opened")
	return r, nil
}

func (r *RunRepositoryPostgres) migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS scenario_runs (
	id                    BIGSERIAL PRIMARY KEY,
	run_id                TEXT NOT NULL,
	scenario_id           TEXT NOT NULL,
	label                 TEXT NOT NULL DEFAULT '',
	total_monthly_payment NUMERIC(20,2) NOT NULL,
	outcome               TEXT NOT NULL,
	months_to_pay_off     INTEGER NOT NULL,
	total_interest_paid   NUMERIC(20,2) NOT NULL,
	total_principal_paid  NUMERIC(20,2) NOT NULL,
	created_at            TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scenario_runs_run ON scenario_runs(run_id);
CREATE INDEX IF NOT EXISTS idx_scenario_runs_created ON scenario_runs(created_at);
`
	_, err := r.db.Exec(schema)
	return err
}

func (r *RunRepositoryPostgres) Save(ctx context.Context, records []domain.RunRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		_, err := tx.ExecContext(ctx, `
INSERT INTO scenario_runs(run_id, scenario_id, label, total_monthly_payment, outcome,
	months_to_pay_off, total_interest_paid, total_principal_paid, created_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			rec.RunID, rec.ScenarioID, rec.Label, rec.TotalMonthlyPayment.String(),
			string(rec.Outcome), rec.MonthsToPayOff,
			rec.TotalInterestPaid.String(), rec.TotalPrincipalPaid.String(),
			rec.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert run %s/%s: %w", rec.RunID, rec.ScenarioID, err)
		}
	}
	return tx.Commit()
}

// List returns up to limit records, newest first. A limit <= 0 returns all.
func (r *RunRepositoryPostgres) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	query := `
SELECT run_id, scenario_id, label, total_monthly_payment::TEXT, outcome,
	months_to_pay_off, total_interest_paid::TEXT, total_principal_paid::TEXT, created_at
FROM scenario_runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
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
		)
		if err := rows.Scan(&rec.RunID, &rec.ScenarioID, &rec.Label, &payment, &outcome,
			&rec.MonthsToPayOff, &interest, &principal, &rec.CreatedAt); err != nil {
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
		rec.CreatedAt = rec.CreatedAt.UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RunRepositoryPostgres) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scenario_runs WHERE created_at < $1`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func (r *RunRepositoryPostgres) Close() error {
	slog.Info("closing postgres run repository")
	return r.db.Close()
}
