package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"card-payoff/domain"
)

var (
	maxAccountBalance = decimal.NewFromInt(MaxAccountBalance)
	maxMonthlyPayment = decimal.NewFromInt(MaxMonthlyPayment)
	one               = decimal.NewFromInt(1)
)

// normalizeAccounts validates accounts and returns a copy with default IDs
// filled in. Accounts without an ID become card-N, N being the 1-based
// position.
func normalizeAccounts(accounts []domain.Account) ([]domain.Account, error) {
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: no accounts provided", ErrInvalidInput)
	}
	if len(accounts) > MaxAccountsPerRequest {
		return nil, fmt.Errorf("%w: number of accounts exceeds the maximum of %d", ErrInvalidInput, MaxAccountsPerRequest)
	}

	out := make([]domain.Account, len(accounts))
	seen := make(map[string]bool, len(accounts))
	for i, a := range accounts {
		if a.ID == "" {
			a.ID = fmt.Sprintf("card-%d", i+1)
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("%w: duplicate account id %q", ErrInvalidInput, a.ID)
		}
		seen[a.ID] = true

		if a.Balance.IsNegative() {
			return nil, fmt.Errorf("%w: account %q: balance must not be negative", ErrInvalidInput, a.ID)
		}
		if a.Balance.GreaterThan(maxAccountBalance) {
			return nil, fmt.Errorf("%w: account %q: balance exceeds the maximum of %d", ErrInvalidInput, a.ID, MaxAccountBalance)
		}
		if a.MonthlyRate.IsNegative() || a.MonthlyRate.GreaterThan(one) {
			return nil, fmt.Errorf("%w: account %q: monthly rate must be between 0 and 1", ErrInvalidInput, a.ID)
		}
		if a.MinPaymentFraction.IsNegative() || a.MinPaymentFraction.GreaterThan(one) {
			return nil, fmt.Errorf("%w: account %q: minimum payment fraction must be between 0 and 1", ErrInvalidInput, a.ID)
		}
		out[i] = a
	}
	return out, nil
}

// normalizeScenarios validates scenario requests and returns a copy with
// default IDs (scenario-N) and labels ($X.XX/month).
func normalizeScenarios(scenarios []domain.ScenarioRequest) ([]domain.ScenarioRequest, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("%w: no scenarios provided", ErrInvalidInput)
	}
	if len(scenarios) > MaxScenariosPerRequest {
		return nil, fmt.Errorf("%w: number of scenarios exceeds the maximum of %d", ErrInvalidInput, MaxScenariosPerRequest)
	}

	out := make([]domain.ScenarioRequest, len(scenarios))
	seen := make(map[string]bool, len(scenarios))
	for i, sc := range scenarios {
		if sc.ID == "" {
			sc.ID = fmt.Sprintf("scenario-%d", i+1)
		}
		if seen[sc.ID] {
			return nil, fmt.Errorf("%w: duplicate scenario id %q", ErrInvalidInput, sc.ID)
		}
		seen[sc.ID] = true

		if !sc.TotalMonthlyPayment.IsPositive() {
			return nil, fmt.Errorf("%w: scenario %q: total monthly payment must be greater than 0", ErrInvalidInput, sc.ID)
		}
		if sc.TotalMonthlyPayment.GreaterThan(maxMonthlyPayment) {
			return nil, fmt.Errorf("%w: scenario %q: total monthly payment exceeds the maximum of %d", ErrInvalidInput, sc.ID, MaxMonthlyPayment)
		}
		if sc.Label == "" {
			sc.Label = "$" + sc.TotalMonthlyPayment.StringFixed(2) + "/month"
		}
		out[i] = sc
	}
	return out, nil
}

func normalizePriority(p domain.Priority) (domain.Priority, error) {
	switch p {
	case "":
		return domain.PriorityLowestInterest, nil
	case domain.PriorityLowestInterest, domain.PriorityFastestPayoff:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, p)
}
