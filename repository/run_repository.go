package repository

import (
	"context"
	"time"

	"card-payoff/domain"
)

// RunRepository keeps an audit trail of simulation runs, one record per
// scenario.
type RunRepository interface {
	Save(ctx context.Context, records []domain.RunRecord) error
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)
	// Prune deletes records created before the cutoff and reports how many
	// were removed.
	Prune(ctx context.Context, before time.Time) (int64, error)
	Close() error
}
