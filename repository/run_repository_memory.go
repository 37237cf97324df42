package repository

import (
	"context"
	"sync"
	"time"

	"card-payoff/domain"
)

// RunRepositoryMemory is an in-memory implementation of RunRepository.
type RunRepositoryMemory struct {
	mu   sync.Mutex
	data []domain.RunRecord
}

// NewRunRepositoryMemory creates a new in-memory run repository.
func NewRunRepositoryMemory() *RunRepositoryMemory {
	return &RunRepositoryMemory{
		data: []domain.RunRecord{},
	}
}

// Save appends the records in memory.
func (r *RunRepositoryMemory) Save(_ context.Context, records []domain.RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, records...)
	return nil
}

// List returns up to limit records, newest first. A limit <= 0 returns all.
func (r *RunRepositoryMemory) List(_ context.Context, limit int) ([]domain.RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.data)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.RunRecord, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}

// Prune drops records created before the cutoff.
func (r *RunRepositoryMemory) Prune(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.data[:0]
	for _, rec := range r.data {
		if !rec.CreatedAt.Before(before) {
			kept = append(kept, rec)
		}
	}
	removed := int64(len(r.data) - len(kept))
	r.data = kept
	return removed, nil
}

func (r *RunRepositoryMemory) Close() error { return nil }
