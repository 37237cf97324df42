package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunRecord summarises one scenario of one simulation run for the audit trail.
type RunRecord struct {
	RunID               string          `json:"run_id"`
	ScenarioID          string          `json:"scenario_id"`
	Label               string          `json:"label"`
	TotalMonthlyPayment decimal.Decimal `json:"total_monthly_payment"`
	Outcome             Outcome         `json:"outcome"`
	MonthsToPayOff      int             `json:"months_to_pay_off"`
	TotalInterestPaid   decimal.Decimal `json:"total_interest_paid"`
	TotalPrincipalPaid  decimal.Decimal `json:"total_principal_paid"`
	CreatedAt           time.Time       `json:"created_at"`
}
