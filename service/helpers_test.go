package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"card-payoff/domain"
	"card-payoff/payoff"
	"card-payoff/repository"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleAccounts() []domain.Account {
	return []domain.Account{
		{ID: "c1", Name: "Store card", Balance: dec("1000"), MonthlyRate: dec("0.015"), MinPaymentFraction: dec("0.02")},
		{ID: "c2", Name: "Travel card", Balance: dec("2000"), MonthlyRate: dec("0.02"), MinPaymentFraction: dec("0.01")},
		{ID: "c3", Name: "Old card", Balance: dec("500"), MonthlyRate: dec("0.01"), MinPaymentFraction: dec("0.03")},
	}
}

func sampleInput(payments ...string) domain.SimulationInput {
	input := domain.SimulationInput{Accounts: sampleAccounts()}
	for _, p := range payments {
		input.Scenarios = append(input.Scenarios, domain.ScenarioRequest{TotalMonthlyPayment: dec(p)})
	}
	return input
}

func newMemoryCache() *repository.MemoryCache {
	return repository.NewMemoryCache(16, time.Hour)
}

// CountingCache wraps a MemoryCache and counts lookups and writes. With
// Corrupt set, every hit returns unreadable data.
type CountingCache struct {
	*repository.MemoryCache
	mu      sync.Mutex
	Gets    int
	Sets    int
	Corrupt bool
}

func NewCountingCache() *CountingCache {
	return &CountingCache{MemoryCache: newMemoryCache()}
}

func (c *CountingCache) Get(ctx context.Context, key string) (string, bool) {
	c.mu.Lock()
	c.Gets++
	corrupt := c.Corrupt
	c.mu.Unlock()

	val, ok := c.MemoryCache.Get(ctx, key)
	if ok && corrupt {
		return "{not json", true
	}
	return val, ok
}

func (c *CountingCache) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	c.Sets++
	c.mu.Unlock()
	return c.MemoryCache.Set(ctx, key, value)
}

type MockRunRepository struct {
	SaveCalled bool
	ForceError bool
	Saved      []domain.RunRecord
}

func (m *MockRunRepository) Save(_ context.Context, records []domain.RunRecord) error {
	m.SaveCalled = true
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, records...)
	return nil
}

func (m *MockRunRepository) List(_ context.Context, limit int) ([]domain.RunRecord, error) {
	if m.ForceError {
		return nil, errors.New("list error")
	}
	if limit > len(m.Saved) {
		limit = len(m.Saved)
	}
	return m.Saved[:limit], nil
}

func (m *MockRunRepository) Prune(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (m *MockRunRepository) Close() error { return nil }

func newTestService(cache repository.CacheRepository, runs repository.RunRepository) *ScenarioService {
	insights := NewInsightService("", "", "", 0)
	return NewScenarioService(
		payoff.NewSimulator(payoff.DefaultPolicy()),
		cache,
		runs,
		NewRecommendationService(insights),
	)
}
