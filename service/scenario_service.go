package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"card-payoff/domain"
	"card-payoff/payoff"
	"card-payoff/repository"
)

type ScenarioService struct {
	simulator   *payoff.Simulator
	cache       repository.CacheRepository
	runs        repository.RunRepository
	recommender *RecommendationService
	now         func() time.Time
}

// NewScenarioService creates a ScenarioService. cache and runs are required;
// use the in-memory implementations when nothing external is configured.
func NewScenarioService(
	simulator *payoff.Simulator,
	cache repository.CacheRepository,
	runs repository.RunRepository,
	recommender *RecommendationService,
) *ScenarioService {
	return &ScenarioService{
		simulator:   simulator,
		cache:       cache,
		runs:        runs,
		recommender: recommender,
		now:         time.Now,
	}
}

// Simulate validates the input, runs every scenario against the accounts
// and recommends one. Identical inputs are served from the cache. Every
// call is recorded in the run repository under a fresh run ID.
func (s *ScenarioService) Simulate(
	ctx context.Context,
	input domain.SimulationInput,
) (domain.SimulationOutput, error) {

	accounts, err := normalizeAccounts(input.Accounts)
	if err != nil {
		return domain.SimulationOutput{}, err
	}
	scenarios, err := normalizeScenarios(input.Scenarios)
	if err != nil {
		return domain.SimulationOutput{}, err
	}
	priority, err := normalizePriority(input.Priority)
	if err != nil {
		return domain.SimulationOutput{}, err
	}
	input = domain.SimulationInput{Accounts: accounts, Scenarios: scenarios, Priority: priority}

	key, err := s.fingerprint(input)
	if err != nil {
		return domain.SimulationOutput{}, fmt.Errorf("fingerprint input: %w", err)
	}

	output, hit := s.cached(ctx, key)
	if !hit {
		output = s.run(ctx, input)

		// Cache errors are not fatal.
		if data, err := json.Marshal(output); err != nil {
			slog.Warn("failed to encode simulation output for cache", "error", err)
		} else if err := s.cache.Set(ctx, key, string(data)); err != nil {
			slog.Warn("failed to cache simulation output", "error", err)
		}
	}

	output.RunID = uuid.NewString()
	s.record(ctx, output)

	slog.Info("simulation complete",
		"run_id", output.RunID,
		"accounts", len(accounts),
		"scenarios", len(scenarios),
		"cache_hit", hit,
	)
	return output, nil
}

// CombinedMinimumPayment validates accounts and returns the smallest
// monthly budget that covers every minimum payment.
func (s *ScenarioService) CombinedMinimumPayment(accounts []domain.Account) (domain.MinimumPaymentResult, error) {
	normalized, err := normalizeAccounts(accounts)
	if err != nil {
		return domain.MinimumPaymentResult{}, err
	}
	return domain.MinimumPaymentResult{
		CombinedMinimumPayment: payoff.CombinedMinimumPayment(normalized, s.simulator.Policy()),
	}, nil
}

// ListRuns returns the most recent run records, newest first.
func (s *ScenarioService) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = DefaultRunListLimit
	}
	if limit > MaxRunListLimit {
		return nil, fmt.Errorf("%w: limit exceeds the maximum of %d", ErrInvalidInput, MaxRunListLimit)
	}
	records, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return records, nil
}

func (s *ScenarioService) run(ctx context.Context, input domain.SimulationInput) domain.SimulationOutput {
	results := s.simulator.RunAll(input.Accounts, input.Scenarios)

	for _, r := range results {
		if !r.PaidOff() {
			slog.Warn("scenario did not pay off within the month limit",
				"scenario", r.ScenarioID,
				"monthly_payment", r.TotalMonthlyPayment.StringFixed(2),
				"months", r.MonthsToPayOff,
			)
		}
	}

	return domain.SimulationOutput{
		Results:                results,
		Recommendation:         s.recommender.Recommend(ctx, results, input.Priority),
		CombinedMinimumPayment: payoff.CombinedMinimumPayment(input.Accounts, s.simulator.Policy()),
	}
}

func (s *ScenarioService) cached(ctx context.Context, key string) (domain.SimulationOutput, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.SimulationOutput{}, false
	}
	var output domain.SimulationOutput
	if err := json.Unmarshal([]byte(raw), &output); err != nil {
		slog.Warn("discarding unreadable cache entry", "key", key, "error", err)
		return domain.SimulationOutput{}, false
	}
	return output, true
}

// record saves the run summary; a failure is logged, not returned.
func (s *ScenarioService) record(ctx context.Context, output domain.SimulationOutput) {
	createdAt := s.now().UTC()
	records := make([]domain.RunRecord, 0, len(output.Results))
	for _, r := range output.Results {
		records = append(records, domain.RunRecord{
			RunID:               output.RunID,
			ScenarioID:          r.ScenarioID,
			Label:               r.Label,
			TotalMonthlyPayment: r.TotalMonthlyPayment,
			Outcome:             r.Outcome,
			MonthsToPayOff:      r.MonthsToPayOff,
			TotalInterestPaid:   r.TotalInterestPaid,
			TotalPrincipalPaid:  r.TotalPrincipalPaid,
			CreatedAt:           createdAt,
		})
	}
	if err := s.runs.Save(ctx, records); err != nil {
		slog.Warn("failed to save simulation run", "run_id", output.RunID, "error", err)
	}
}

// fingerprint hashes the normalized input together with the simulation
// policy, so a policy change never serves stale results.
func (s *ScenarioService) fingerprint(input domain.SimulationInput) (string, error) {
	data, err := json.Marshal(struct {
		Input  domain.SimulationInput `json:"input"`
		Policy payoff.Policy          `json:"policy"`
	}{input, s.simulator.Policy()})
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
