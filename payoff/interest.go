package payoff

import (
	"github.com/shopspring/decimal"

	"card-payoff/domain"
)

// Interest returns one month of interest on balance, rounded to cents.
// Zero and negative balances accrue nothing.
func Interest(balance, monthlyRate decimal.Decimal) decimal.Decimal {
	if !balance.IsPositive() {
		return decimal.Zero
	}
	return balance.Mul(monthlyRate).Round(2)
}

// payoffAmount is what clears the account this month: balance plus interest.
func payoffAmount(a domain.Account) decimal.Decimal {
	return a.Balance.Add(Interest(a.Balance, a.MonthlyRate))
}
