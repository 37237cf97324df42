package domain

import "github.com/shopspring/decimal"

type Priority string

const (
	PriorityLowestInterest Priority = "lowest_interest"
	PriorityFastestPayoff  Priority = "fastest_payoff"
)

type SimulationInput struct {
	Accounts  []Account         `json:"accounts"`
	Scenarios []ScenarioRequest `json:"scenarios"`
	Priority  Priority          `json:"priority,omitempty"`
}

type Recommendation struct {
	ScenarioID    string          `json:"scenario_id"`
	Priority      Priority        `json:"priority"`
	InterestSaved decimal.Decimal `json:"interest_saved"`
	MonthsSooner  int             `json:"months_sooner"`
	Insight       string          `json:"insight"`
}

type SimulationOutput struct {
	RunID                  string           `json:"run_id"`
	Results                []ScenarioResult `json:"results"`
	Recommendation         *Recommendation  `json:"recommendation,omitempty"`
	CombinedMinimumPayment decimal.Decimal  `json:"combined_minimum_payment"`
}

type MinimumPaymentInput struct {
	Accounts []Account `json:"accounts"`
}

type MinimumPaymentResult struct {
	CombinedMinimumPayment decimal.Decimal `json:"combined_minimum_payment"`
}
