package domain

import "github.com/shopspring/decimal"

type Outcome string

const (
	OutcomePaidOff Outcome = "paid_off"
	OutcomeAborted Outcome = "aborted"
)

type ScenarioRequest struct {
	ID                  string          `json:"id,omitempty"`
	Label               string          `json:"label,omitempty"`
	TotalMonthlyPayment decimal.Decimal `json:"total_monthly_payment"`
}

type AccountSnapshot struct {
	AccountID       string          `json:"account_id"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	Payment         decimal.Decimal `json:"payment"`
	Interest        decimal.Decimal `json:"interest"`
	Principal       decimal.Decimal `json:"principal"`
	EndingBalance   decimal.Decimal `json:"ending_balance"`
}

// MonthlyRecord is one month of a scenario's history. Month is 1-based.
type MonthlyRecord struct {
	Month          int               `json:"month"`
	Accounts       []AccountSnapshot `json:"accounts"`
	TotalPayment   decimal.Decimal   `json:"total_payment"`
	TotalInterest  decimal.Decimal   `json:"total_interest"`
	TotalPrincipal decimal.Decimal   `json:"total_principal"`
	EndingBalance  decimal.Decimal   `json:"ending_balance"`
	Warning        string            `json:"warning,omitempty"`
}

type ScenarioResult struct {
	ScenarioID          string          `json:"scenario_id"`
	Label               string          `json:"label"`
	TotalMonthlyPayment decimal.Decimal `json:"total_monthly_payment"`
	Outcome             Outcome         `json:"outcome"`
	MonthsToPayOff      int             `json:"months_to_pay_off"`
	TotalInterestPaid   decimal.Decimal `json:"total_interest_paid"`
	TotalPrincipalPaid  decimal.Decimal `json:"total_principal_paid"`
	MonthlyBreakdown    []MonthlyRecord `json:"monthly_breakdown"`
}

// PaidOff reports whether every balance reached zero within the month bound.
func (r ScenarioResult) PaidOff() bool {
	return r.Outcome == OutcomePaidOff
}
