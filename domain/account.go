package domain

import "github.com/shopspring/decimal"

// Account is one revolving-debt balance taking part in a payoff simulation.
type Account struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name,omitempty"`
	Balance            decimal.Decimal `json:"balance"`
	MonthlyRate        decimal.Decimal `json:"monthly_rate"`
	MinPaymentFraction decimal.Decimal `json:"min_payment_fraction"`
}

// IsSettled reports whether the account has been paid down to zero.
func (a Account) IsSettled() bool {
	return !a.Balance.IsPositive()
}

type PaymentAllocation struct {
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// Settlement is the outcome of applying one payment to one account for one month.
type Settlement struct {
	NewBalance    decimal.Decimal `json:"new_balance"`
	InterestPaid  decimal.Decimal `json:"interest_paid"`
	PrincipalPaid decimal.Decimal `json:"principal_paid"`
}
